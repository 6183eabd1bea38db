package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the clock is updated. Read deadlines are set on every
// single channel read, so half a second of imprecision is a fair price for not calling time.Now().
const Resolution = 500 * time.Millisecond

var (
	millis = new(atomic.Int64)
	start  sync.Once
)

func tick() {
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}

// Now returns the coarse current time. The clock is started on the first call.
func Now() time.Time {
	start.Do(tick)
	ms := millis.Load()
	return time.Unix(ms/1000, (ms%1000)*1e6)
}

// Deadline returns the moment the timeout expires at. Non-positive timeouts mean no deadline,
// which is represented by the zero time.
func Deadline(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}

	return Now().Add(timeout)
}
