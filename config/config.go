package config

import (
	"fmt"
	"time"
)

type (
	StartLine struct {
		// MaxLength limits the request or status line, including its CRLF. A line that doesn't
		// fit results in status.ErrStartLineTooLarge.
		MaxLength int
	}

	Headers struct {
		// MaxSize limits the header section: every header line with its CRLF, excluding the
		// start line and the terminating empty line.
		MaxSize int
		// Prealloc is the number of distinct header names the map is allocated for.
		Prealloc int
	}

	Body struct {
		// MaxSize is the maximal number of body bytes that can be read, after the transfer
		// coding is removed.
		MaxSize uint64
	}

	NET struct {
		// ReadBufferSize is the size of a buffer a connection is read into.
		ReadBufferSize int
		// ReadTimeout is passed to every single read, therefore it limits not the whole
		// message, but idleness of the peer.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often the Accept() call is interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
	}
)

// Config holds limits and pre-allocations used across the framer.
//
// Always start from Default() and modify it, instead of initializing the config manually:
// zero limits are invalid.
type Config struct {
	StartLine StartLine
	Headers   Headers
	Body      Body
	NET       NET
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		StartLine: StartLine{
			MaxLength: 1024,
		},
		Headers: Headers{
			MaxSize:  16 * 1024,
			Prealloc: 10,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}

// Validate reports the first limit that isn't a positive number.
func (c *Config) Validate() error {
	switch {
	case c.StartLine.MaxLength <= 0:
		return fmt.Errorf("config: StartLine.MaxLength must be positive, got %d", c.StartLine.MaxLength)
	case c.Headers.MaxSize <= 0:
		return fmt.Errorf("config: Headers.MaxSize must be positive, got %d", c.Headers.MaxSize)
	case c.Headers.Prealloc < 0:
		return fmt.Errorf("config: Headers.Prealloc must not be negative, got %d", c.Headers.Prealloc)
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("config: NET.ReadBufferSize must be positive, got %d", c.NET.ReadBufferSize)
	}

	return nil
}
