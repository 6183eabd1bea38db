package transport

import (
	"context"
	"net"

	"github.com/indigo-web/h1frame/config"
)

// Supervisor runs several bound transports at once and brings all of them down as soon as
// either one fails or the context is done.
type Supervisor struct {
	ts []boundTransport
}

func NewSupervisor() *Supervisor {
	return new(Supervisor)
}

// Add binds the transport. If binding fails, all the transports added before are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	if err := transport.Bind(addr); err != nil {
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		cb: cb,
		t:  transport,
	})

	return nil
}

// Run blocks until every transport has stopped and returns the first error, if any. All the
// connections are served out before it returns.
func (s *Supervisor) Run(ctx context.Context, cfg config.NET) error {
	if len(s.ts) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errch := make(chan error, len(s.ts))
	for _, t := range s.ts {
		go func(t boundTransport) {
			err := t.t.Listen(ctx, cfg, t.cb)
			cancel()
			errch <- err
		}(t)
	}

	var firstErr error
	for range s.ts {
		if err := <-errch; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.stop()
	return firstErr
}

func (s *Supervisor) stop() {
	for _, t := range s.ts {
		t.t.Stop()
	}

	for _, t := range s.ts {
		t.t.Wait()
		t.t.Close()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

type boundTransport struct {
	cb func(conn net.Conn)
	t  Transport
}
