package transport

import (
	"context"
	"net"
	"time"

	"github.com/indigo-web/h1frame/config"
)

// Channel is a source of bytes arriving in arbitrary chunks. Bytes taken back via Unshift
// must be returned by the following reads before anything else, in the same order.
//
// Read returns io.EOF when no more data will arrive and a timeout error (os.ErrDeadlineExceeded
// for network channels) if no data arrived in time. Non-positive timeout means waiting for as
// long as it takes. The returned slice may be reused by the channel on the next Read.
type Channel interface {
	Read(timeout time.Duration) ([]byte, error)
	Unshift(b []byte)
}

// Interrupter is implemented by channels whose blocked Read can be aborted from another
// goroutine. Once interrupted, reads return a timeout error until Resume is called.
type Interrupter interface {
	Interrupt()
	Resume()
}

// Transport accepts connections and runs the callback for each of them in its own goroutine.
type Transport interface {
	Bind(addr string) error
	Listen(ctx context.Context, cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close()
	Wait()
}
