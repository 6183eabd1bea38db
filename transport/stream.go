package transport

import (
	"io"
	"time"

	"github.com/indigo-web/h1frame/internal/unreader"
)

// Stream is a Channel over a plain io.Reader, e.g. a file or stdin. Timeouts are ignored,
// as there's no general way to apply them to an arbitrary reader.
type Stream struct {
	r        io.Reader
	buff     []byte
	unreader unreader.Unreader
}

func NewStream(r io.Reader, buff []byte) *Stream {
	return &Stream{
		r:    r,
		buff: buff,
	}
}

func (s *Stream) Read(time.Duration) ([]byte, error) {
	return s.unreader.PendingOr(func() ([]byte, error) {
		n, err := s.r.Read(s.buff)
		return s.buff[:n], err
	})
}

func (s *Stream) Unshift(b []byte) {
	s.unreader.Unread(b)
}
