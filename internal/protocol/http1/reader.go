package http1

import (
	"context"
	"time"

	"github.com/indigo-web/h1frame/config"
	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/transport"
)

// Reader frames HTTP/1.x messages coming from a channel. It's stateless apart from the
// config, so a single instance may serve any number of channels concurrently.
type Reader struct {
	cfg *config.Config
}

func NewReader(cfg *config.Config) *Reader {
	return &Reader{cfg: cfg}
}

// ReadRequest reads the request line and the header section. Whatever was read past the
// header section is returned to the channel, on success and on failure alike. So when it
// succeeds, the next read from the channel returns the first bytes of the body.
//
// The timeout applies to every single read. Cancelling the context aborts the read, if the
// channel implements transport.Interrupter, otherwise it's noticed between reads. Either way
// the channel is not left interrupted once ReadRequest returns.
func (r *Reader) ReadRequest(ctx context.Context, ch transport.Channel, timeout time.Duration) (*http.Request, error) {
	s := newSession(ctx, ch, timeout)
	defer s.release()

	line, err := s.startLine(r.cfg.StartLine.MaxLength, status.ErrStartLineTooLarge)
	if err != nil {
		return nil, err
	}

	rl, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	hdrs, err := s.headers(r.cfg.Headers.MaxSize, r.cfg.Headers.Prealloc)
	if err != nil {
		return nil, err
	}

	form, u, err := resolveTarget(rl.Target, hdrs)
	if err != nil {
		return nil, err
	}

	target := rl.Target
	if form == http.OriginForm {
		target = ""
	}

	return &http.Request{
		Method:  rl.Method,
		Target:  target,
		Form:    form,
		URI:     u,
		Proto:   rl.Proto,
		Headers: hdrs,
		Body:    ch,
	}, nil
}

// ReadResponse reads the status line and the header section. Leftover bytes are handled
// exactly the same way as by ReadRequest.
func (r *Reader) ReadResponse(ctx context.Context, ch transport.Channel, timeout time.Duration) (*http.Response, error) {
	s := newSession(ctx, ch, timeout)
	defer s.release()

	line, err := s.startLine(r.cfg.StartLine.MaxLength, status.ErrStatusLineTooLarge)
	if err != nil {
		return nil, err
	}

	sl, err := parseStatusLine(line)
	if err != nil {
		return nil, err
	}

	hdrs, err := s.headers(r.cfg.Headers.MaxSize, r.cfg.Headers.Prealloc)
	if err != nil {
		return nil, err
	}

	return &http.Response{
		Code:    sl.Code,
		Reason:  sl.Reason,
		Proto:   sl.Proto,
		Headers: hdrs,
		Body:    ch,
	}, nil
}
