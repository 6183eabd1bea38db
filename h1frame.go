package h1frame

import (
	"context"
	"fmt"
	"time"

	"github.com/indigo-web/h1frame/config"
	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/internal/protocol/http1"
	"github.com/indigo-web/h1frame/transport"
)

// Body is a message body being read from the channel its message was framed from.
type Body = http1.Body

// Framer reads HTTP/1.x messages off channels. The config is fixed once framing starts.
type Framer struct {
	cfg    *config.Config
	reader *http1.Reader
}

// New returns a new Framer with the default config.
func New() *Framer {
	cfg := config.Default()
	return &Framer{
		cfg:    cfg,
		reader: http1.NewReader(cfg),
	}
}

// Tune replaces the default config. Panics if the config is invalid.
func (f *Framer) Tune(cfg *config.Config) *Framer {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("h1frame: tune: %w", err))
	}

	f.cfg = cfg
	f.reader = http1.NewReader(cfg)
	return f
}

// Config returns the config in use.
func (f *Framer) Config() *config.Config {
	return f.cfg
}

// ReadRequest frames a request. On success, the channel is positioned at the first byte
// of the body. Either way, nothing read from the channel is lost.
//
// Cancelling the context aborts a blocked read of a transport.Interrupter. The channel is
// resumed before ReadRequest returns.
func (f *Framer) ReadRequest(ctx context.Context, ch transport.Channel, timeout time.Duration) (*http.Request, error) {
	return f.reader.ReadRequest(ctx, ch, timeout)
}

// ReadResponse frames a response the same way ReadRequest frames a request.
func (f *Framer) ReadResponse(ctx context.Context, ch transport.Channel, timeout time.Duration) (*http.Response, error) {
	return f.reader.ReadResponse(ctx, ch, timeout)
}

// ParseRequest frames a request that is fully in memory.
func (f *Framer) ParseRequest(raw string) (*http.Request, error) {
	return f.reader.ParseRequest(raw)
}

// ParseResponse frames a response that is fully in memory.
func (f *Framer) ParseResponse(raw string) (*http.Response, error) {
	return f.reader.ParseResponse(raw)
}

// RequestBody prepares the request body for reading.
func (f *Framer) RequestBody(request *http.Request, timeout time.Duration) (*Body, error) {
	return http1.NewRequestBody(request, f.cfg.Body, timeout)
}

// ResponseBody prepares the response body for reading.
func (f *Framer) ResponseBody(response *http.Response, timeout time.Duration) (*Body, error) {
	return http1.NewResponseBody(response, f.cfg.Body, timeout)
}
