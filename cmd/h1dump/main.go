// Command h1dump frames HTTP/1.x messages and prints them as JSON.
//
// Without -listen, a single message is read from stdin:
//
//	h1dump [-response] < message.txt
//
// With -listen, every request on every connection is logged and echoed back as JSON:
//
//	h1dump -listen :8080 -listen :8081
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/indigo-web/h1frame"
	"github.com/indigo-web/h1frame/config"
	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/proto"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/internal/protocol/http1"
	"github.com/indigo-web/h1frame/transport"
	"github.com/indigo-web/utils/strcomp"
)

type addrs []string

func (a *addrs) String() string {
	return strings.Join(*a, ",")
}

func (a *addrs) Set(addr string) error {
	*a = append(*a, addr)
	return nil
}

func main() {
	var (
		listen   addrs
		response = flag.Bool("response", false, "read a response instead of a request")
		verbose  = flag.Bool("v", false, "log debug messages")
		cfg      = config.Default()
	)

	flag.Var(&listen, "listen", "address to serve on, may be repeated")
	flag.IntVar(&cfg.StartLine.MaxLength, "max-start-line", cfg.StartLine.MaxLength, "start line length limit")
	flag.IntVar(&cfg.Headers.MaxSize, "max-header-size", cfg.Headers.MaxSize, "header section size limit")
	flag.Uint64Var(&cfg.Body.MaxSize, "max-body-size", cfg.Body.MaxSize, "body size limit")
	flag.DurationVar(&cfg.NET.ReadTimeout, "timeout", cfg.NET.ReadTimeout, "per-read timeout")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		logger.Error("bad flags", "error", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	d := &dumper{
		framer: h1frame.New().Tune(cfg),
		logger: logger,
	}

	var err error
	if len(listen) > 0 {
		err = d.serve(ctx, listen)
	} else {
		err = d.stdin(ctx, os.Stdin, os.Stdout, *response)
	}

	if err != nil {
		logger.Error("h1dump failed", "error", err)
		os.Exit(1)
	}
}

type dumper struct {
	framer *h1frame.Framer
	logger *slog.Logger
}

// stdin frames a single message from r and writes it to w.
func (d *dumper) stdin(ctx context.Context, r io.Reader, w io.Writer, response bool) error {
	cfg := d.framer.Config()
	ch := transport.NewStream(r, make([]byte, cfg.NET.ReadBufferSize))

	if response {
		resp, err := d.framer.ReadResponse(ctx, ch, cfg.NET.ReadTimeout)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		body, err := d.framer.ResponseBody(resp, cfg.NET.ReadTimeout)
		if err != nil {
			return fmt.Errorf("response body: %w", err)
		}

		data, err := body.Bytes()
		if err != nil {
			return fmt.Errorf("response body: %w", err)
		}

		return writeJSON(w, fromResponse(resp, data))
	}

	req, err := d.framer.ReadRequest(ctx, ch, cfg.NET.ReadTimeout)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	body, err := d.framer.RequestBody(req, cfg.NET.ReadTimeout)
	if err != nil {
		return fmt.Errorf("request body: %w", err)
	}

	data, err := body.Bytes()
	if err != nil {
		return fmt.Errorf("request body: %w", err)
	}

	return writeJSON(w, fromRequest(req, data))
}

// serve listens on every address until the context is done.
func (d *dumper) serve(ctx context.Context, listen []string) error {
	cfg := d.framer.Config()
	supervisor := transport.NewSupervisor()

	for _, addr := range listen {
		if err := supervisor.Add(addr, transport.NewTCP(), func(conn net.Conn) {
			d.handle(ctx, transport.NewClient(conn, make([]byte, cfg.NET.ReadBufferSize)))
		}); err != nil {
			return err
		}

		d.logger.Info("listening", "addr", addr)
	}

	return supervisor.Run(ctx, cfg.NET)
}

// handle serves requests on a single connection until it's closed or anything goes wrong.
func (d *dumper) handle(ctx context.Context, client transport.Client) {
	logger := d.logger.With("remote", client.Remote().String())
	logger.Debug("connected")
	timeout := d.framer.Config().NET.ReadTimeout

	for {
		request, err := d.framer.ReadRequest(ctx, client, timeout)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				logger.Info("bad request", "error", err)
				d.fail(client, err)
			}

			logger.Debug("disconnected")
			return
		}

		body, err := d.framer.RequestBody(request, timeout)
		if err != nil {
			logger.Info("bad request body", "error", err)
			d.fail(client, err)
			return
		}

		data, err := body.Bytes()
		if err != nil {
			logger.Info("bad request body", "error", err)
			d.fail(client, err)
			return
		}

		logger.Info("request", "method", request.Method, "uri", request.URI.String(), "body", len(data))

		var payload bytes.Buffer
		if err = writeJSON(&payload, fromRequest(request, data)); err != nil {
			logger.Error("render", "error", err)
			return
		}

		hdrs := headers.New().Add(headers.ContentType, "application/json")
		if err = d.respond(client, status.OK, hdrs, payload.Bytes()); err != nil {
			logger.Info("write", "error", err)
			return
		}

		if hasToken(request.Headers.Values(headers.Connection), "close") {
			return
		}
	}
}

// fail answers with the status the error maps to and closes the connection afterwards.
func (d *dumper) fail(client transport.Client, err error) {
	code := status.CodeOf(err)
	hdrs := headers.New().
		Add(headers.ContentType, "text/plain").
		Add(headers.Connection, "close")

	_ = d.respond(client, code, hdrs, []byte(err.Error()))
}

func (d *dumper) respond(client transport.Client, code status.Code, hdrs *headers.Headers, body []byte) error {
	hdrs.Add(headers.ContentLength, strconv.Itoa(len(body)))
	buff := http1.AppendResponse(nil, &http.Response{
		Code:    code,
		Reason:  string(status.Text(code)),
		Proto:   proto.HTTP11,
		Headers: hdrs,
	})

	_, err := client.Write(append(buff, body...))
	return err
}

func hasToken(values []string, token string) bool {
	for _, value := range headers.Tokens(values) {
		if strcomp.EqualFold(value, token) {
			return true
		}
	}

	return false
}
