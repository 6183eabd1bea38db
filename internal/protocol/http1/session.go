package http1

import (
	"context"
	"time"

	"github.com/indigo-web/h1frame/internal/framebuf"
	"github.com/indigo-web/h1frame/transport"
)

const initialFrameSize = 512

// session is a single framing attempt. It exclusively owns the channel until released.
type session struct {
	ctx     context.Context
	ch      transport.Channel
	timeout time.Duration
	buff    *framebuf.Buffer
	// readErr is an error that arrived together with data. It's delayed until the data is
	// processed and more is requested.
	readErr error
	stop    func() bool
	// interrupted is closed once the context's interrupt has been delivered.
	interrupted chan struct{}
	interrupter transport.Interrupter
}

func newSession(ctx context.Context, ch transport.Channel, timeout time.Duration) *session {
	s := &session{
		ctx:     ctx,
		ch:      ch,
		timeout: timeout,
		buff:    framebuf.New(initialFrameSize),
	}

	if interrupter, ok := ch.(transport.Interrupter); ok && ctx.Done() != nil {
		s.interrupter = interrupter
		s.interrupted = make(chan struct{})
		s.stop = context.AfterFunc(ctx, func() {
			interrupter.Interrupt()
			close(s.interrupted)
		})
	}

	return s
}

// fill reads the next chunk from the channel into the frame buffer.
func (s *session) fill() error {
	if s.readErr != nil {
		return s.readErr
	}

	if err := s.ctx.Err(); err != nil {
		return err
	}

	data, err := s.ch.Read(s.timeout)
	s.buff.Push(data)
	if err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		if len(data) > 0 {
			s.readErr = err
			return nil
		}

		return err
	}

	return nil
}

// release hands everything that was read but not consumed back to the channel. Must be
// called exactly once, on every exit path. An interrupt that has fired is undone, so it
// never outlives the session, even if it came too late to matter.
func (s *session) release() {
	if s.stop != nil && !s.stop() {
		<-s.interrupted
		s.interrupter.Resume()
	}

	s.ch.Unshift(s.buff.Bytes())
}
