package dummy

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/indigo-web/h1frame/internal/unreader"
	"github.com/indigo-web/h1frame/transport"
)

var (
	_ transport.Channel     = new(Client)
	_ transport.Interrupter = new(Client)
)

// Client is a scripted channel. Every read returns the next chunk it was initialised with.
// When chunks are exhausted, it either starts over (default), fails with a given error or
// blocks until interrupted. It also records everything it's been asked for, so it's suitable
// for inspecting the channel discipline of its users.
type Client struct {
	mu          sync.Mutex
	data        [][]byte
	pointer     int
	unreader    unreader.Unreader
	once        bool
	block       bool
	err         error
	unshifts    int
	timeouts    []time.Duration
	written     []byte
	interrupted chan struct{}
	stopped     bool
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:        data,
		err:         io.EOF,
		interrupted: make(chan struct{}),
	}
}

// NewStringClient is a shortcut for NewMockClient with strings as chunks.
func NewStringClient(data ...string) *Client {
	chunks := make([][]byte, len(data))
	for i, chunk := range data {
		chunks[i] = []byte(chunk)
	}

	return NewMockClient(chunks...)
}

func (c *Client) Read(timeout time.Duration) ([]byte, error) {
	c.mu.Lock()
	c.timeouts = append(c.timeouts, timeout)

	if c.stopped {
		c.mu.Unlock()
		return nil, os.ErrDeadlineExceeded
	}

	interrupted := c.interrupted
	data, err := c.unreader.PendingOr(c.next)
	c.mu.Unlock()

	if err == errBlock {
		<-interrupted
		return nil, os.ErrDeadlineExceeded
	}

	return data, err
}

var errBlock = errors.New("dummy: read blocks")

func (c *Client) next() ([]byte, error) {
	if c.pointer >= len(c.data) {
		switch {
		case c.block:
			return nil, errBlock
		case c.once:
			return nil, c.err
		}

		if len(c.data) == 0 {
			return nil, c.err
		}

		c.pointer = 0
	}

	chunk := c.data[c.pointer]
	c.pointer++

	return chunk, nil
}

func (c *Client) Unshift(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unshifts++
	c.unreader.Unread(b)
}

// Interrupt makes the blocked and all the following reads fail with os.ErrDeadlineExceeded,
// until Resume is called.
func (c *Client) Interrupt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped {
		c.stopped = true
		close(c.interrupted)
	}
}

func (c *Client) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		c.stopped = false
		c.interrupted = make(chan struct{})
	}
}

// Interrupted tells whether the client is interrupted at the moment.
func (c *Client) Interrupted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopped
}

// Once makes the client return io.EOF after all the chunks were read, instead of starting over.
func (c *Client) Once() *Client {
	c.once = true
	return c
}

// FailWith makes the client return the error after all the chunks were read.
func (c *Client) FailWith(err error) *Client {
	c.once = true
	c.err = err
	return c
}

// Block makes reads block after all the chunks were read, until the client is interrupted.
func (c *Client) Block() *Client {
	c.block = true
	return c
}

// Unshifts returns how many times Unshift was called.
func (c *Client) Unshifts() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.unshifts
}

// Timeouts returns timeouts every read was called with.
func (c *Client) Timeouts() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Duration(nil), c.timeouts...)
}

// Pending returns the bytes taken back and not read yet.
func (c *Client) Pending() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.unreader.Pending()
}

// Rest drains everything left, pending bytes first, until the chunks are exhausted.
func (c *Client) Rest() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	rest := append([]byte(nil), c.unreader.Pending()...)
	c.unreader.Reset()
	for _, chunk := range c.data[min(c.pointer, len(c.data)):] {
		rest = append(rest, chunk...)
	}

	c.pointer = len(c.data)
	return rest
}

func (c *Client) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *Client) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return string(c.written)
}
