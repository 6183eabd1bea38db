package http1

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/h1frame/config"
	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/transport"
	"github.com/indigo-web/utils/strcomp"
)

type bodyMode uint8

const (
	modeEmpty bodyMode = iota
	modePlain
	modeChunked
	modeTillEOF
)

var _ io.Reader = new(Body)

// Body reads a message body from the channel the message was framed from. Bytes that
// belong to the next message are returned back to the channel.
type Body struct {
	ch       transport.Channel
	timeout  time.Duration
	mode     bodyMode
	left     uint64
	received uint64
	maxSize  uint64
	trailer  bool
	parser   *chunkedbody.Parser
	pending  []byte
	// rest is what the chunked parser left over in the last read. It's consumed before the
	// channel is read again and goes back to the channel once the body ends.
	rest []byte
	// readErr arrived together with data and is delayed until the data is processed.
	readErr error
	// err is sticky: once the body ends or fails, every following call returns it.
	err error
}

// NewRequestBody picks the body length the way RFC 9112 section 6.3 prescribes for requests.
// A request with neither Transfer-Encoding nor Content-Length has no body.
func NewRequestBody(request *http.Request, cfg config.Body, timeout time.Duration) (*Body, error) {
	body := newBody(request.Body, request.Headers, cfg, timeout)

	switch chunked, ok := transferEncoding(request.Headers); {
	case chunked:
		return body.chunked(), nil
	case ok:
		return nil, status.ErrUnsupportedEncoding
	}

	return body.plain(request.Headers)
}

// NewResponseBody is the NewRequestBody counterpart for responses. Unlike a request, a
// response with unknown length lasts until the channel is closed.
func NewResponseBody(response *http.Response, cfg config.Body, timeout time.Duration) (*Body, error) {
	body := newBody(response.Body, response.Headers, cfg, timeout)

	if response.Code.Informational() ||
		response.Code == status.NoContent || response.Code == status.NotModified {
		return body, nil
	}

	switch chunked, ok := transferEncoding(response.Headers); {
	case chunked:
		return body.chunked(), nil
	case ok:
		body.mode = modeTillEOF
		return body, nil
	}

	if !response.Headers.Has(headers.ContentLength) {
		body.mode = modeTillEOF
		return body, nil
	}

	return body.plain(response.Headers)
}

func newBody(ch transport.Channel, hdrs *headers.Headers, cfg config.Body, timeout time.Duration) *Body {
	return &Body{
		ch:      ch,
		timeout: timeout,
		maxSize: cfg.MaxSize,
		trailer: hdrs.Has(headers.Trailer),
	}
}

func (b *Body) chunked() *Body {
	b.mode = modeChunked
	b.parser = chunkedbody.NewParser(chunkedbody.DefaultSettings())
	return b
}

func (b *Body) plain(hdrs *headers.Headers) (*Body, error) {
	length, err := contentLength(hdrs)
	if err != nil {
		return nil, err
	}

	if length > b.maxSize {
		return nil, status.ErrBodyTooLarge
	}

	if length > 0 {
		b.mode = modePlain
		b.left = length
	}

	return b, nil
}

// transferEncoding reports whether the final transfer coding is chunked, and whether any
// transfer coding is present at all.
func transferEncoding(hdrs *headers.Headers) (chunked, ok bool) {
	codings := headers.Tokens(hdrs.Values(headers.TransferEncoding))
	if len(codings) == 0 {
		return false, false
	}

	return strcomp.EqualFold(codings[len(codings)-1], "chunked"), true
}

// contentLength accepts repeated Content-Length values only if they are all the same.
func contentLength(hdrs *headers.Headers) (uint64, error) {
	values := headers.Tokens(hdrs.Values(headers.ContentLength))
	if len(values) == 0 {
		return 0, nil
	}

	for _, value := range values[1:] {
		if value != values[0] {
			return 0, status.ErrBadContentLength
		}
	}

	if !isDigits([]byte(values[0])) {
		return 0, status.ErrBadContentLength
	}

	length, err := strconv.ParseUint(values[0], 10, 64)
	if err != nil {
		return 0, status.ErrBadContentLength
	}

	return length, nil
}

// Retrieve returns the next piece of the body. The piece is valid until the next call. The
// last piece may come together with io.EOF.
func (b *Body) Retrieve() (piece []byte, err error) {
	if b.err != nil {
		return nil, b.err
	}

	switch b.mode {
	case modePlain:
		piece, err = b.readPlain()
	case modeChunked:
		piece, err = b.readChunked()
	case modeTillEOF:
		piece, err = b.readTillEOF()
	default:
		err = io.EOF
	}

	b.err = err
	return piece, err
}

func (b *Body) readPlain() ([]byte, error) {
	data, err := b.read()
	if err != nil {
		return nil, err
	}

	if uint64(len(data)) < b.left {
		b.left -= uint64(len(data))
		return data, nil
	}

	piece, extra := data[:b.left], data[b.left:]
	b.ch.Unshift(extra)
	b.left = 0

	return piece, io.EOF
}

func (b *Body) readChunked() ([]byte, error) {
	data, err := b.read()
	if err != nil {
		return nil, err
	}

	chunk, extra, err := b.parser.Parse(data, b.trailer)
	switch err {
	case nil, io.EOF:
	default:
		return nil, fmt.Errorf("%w: %v", status.ErrBadChunk, err)
	}

	if err := b.account(len(chunk)); err != nil {
		return nil, err
	}

	if err == io.EOF {
		b.ch.Unshift(extra)
	} else {
		b.rest = extra
	}

	return chunk, err
}

func (b *Body) readTillEOF() ([]byte, error) {
	data, err := b.next()
	if err != nil {
		return nil, err
	}

	if err = b.account(len(data)); err != nil {
		return nil, err
	}

	return data, nil
}

// read returns the next chunk from a body whose end is known, so reaching the end of the
// channel before it is an error.
func (b *Body) read() ([]byte, error) {
	data, err := b.next()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}

	return data, err
}

// next returns the parser leftovers first, then reads the channel. Data is never returned
// together with an error.
func (b *Body) next() ([]byte, error) {
	if len(b.rest) > 0 {
		data := b.rest
		b.rest = nil
		return data, nil
	}

	if b.readErr != nil {
		return nil, b.readErr
	}

	data, err := b.ch.Read(b.timeout)
	if err != nil && len(data) > 0 {
		b.readErr, err = err, nil
	}

	return data, err
}

func (b *Body) account(n int) error {
	received := b.received + uint64(n)
	if received < b.received || received > b.maxSize {
		return status.ErrBodyTooLarge
	}

	b.received = received
	return nil
}

// Read implements io.Reader on top of Retrieve.
func (b *Body) Read(p []byte) (n int, err error) {
	for len(b.pending) == 0 {
		if b.err != nil {
			return 0, b.err
		}

		// the error is remembered and returned once the piece is drained
		b.pending, _ = b.Retrieve()
	}

	n = copy(p, b.pending)
	b.pending = b.pending[n:]

	return n, nil
}

// maxPrealloc caps the buffer Bytes allocates up front, as the declared length is
// not backed by any data yet.
const maxPrealloc = 64 << 10

// Bytes reads the whole body.
func (b *Body) Bytes() ([]byte, error) {
	var buff []byte
	if b.mode == modePlain {
		buff = make([]byte, 0, min(b.left, maxPrealloc))
	}

	for {
		piece, err := b.Retrieve()
		buff = append(buff, piece...)
		switch err {
		case nil:
		case io.EOF:
			return buff, nil
		default:
			return nil, err
		}
	}
}

// Discard reads the rest of the body, so the channel is positioned at the next message.
func (b *Body) Discard() error {
	for {
		switch _, err := b.Retrieve(); err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}
