package transport

import (
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/h1frame/internal/timer"
	"github.com/indigo-web/h1frame/internal/unreader"
)

// Client is a Channel backed by a network connection.
type Client interface {
	Channel
	Interrupter
	Write([]byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

var _ Client = new(client)

type client struct {
	conn        net.Conn
	buff        []byte
	unreader    *unreader.Unreader
	interrupted atomic.Bool
}

// NewClient wraps the connection. The buffer is reused for every read, so data returned
// by Read is valid only until the next call.
func NewClient(conn net.Conn, buff []byte) Client {
	return &client{
		conn:     conn,
		buff:     buff,
		unreader: new(unreader.Unreader),
	}
}

// Read returns pending data if there's any, otherwise reads from the connection, setting
// the deadline accordingly to the timeout.
func (c *client) Read(timeout time.Duration) ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		if err := c.conn.SetReadDeadline(timer.Deadline(timeout)); err != nil {
			return nil, err
		}

		// Interrupt might have set its deadline right before ours, overriding it
		if c.interrupted.Load() {
			return nil, os.ErrDeadlineExceeded
		}

		n, err := c.conn.Read(c.buff)
		return c.buff[:n], err
	})
}

// Unshift takes the bytes back, so they're returned by the next Read.
func (c *client) Unshift(b []byte) {
	c.unreader.Unread(b)
}

// Interrupt aborts the current and all the following reads from the connection, until
// Resume is called. Pending data is still served.
func (c *client) Interrupt() {
	c.interrupted.Store(true)
	_ = c.conn.SetReadDeadline(time.Unix(1, 0))
}

// Resume undoes Interrupt. The next Read sets its own deadline anyway.
func (c *client) Resume() {
	c.interrupted.Store(false)
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
