package http1

import (
	"context"
	"strings"

	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/transport"
)

// ParseRequest frames a request that is already fully in memory. The unparsed remainder,
// normally the body, stays readable from the request's Body.
func (r *Reader) ParseRequest(raw string) (*http.Request, error) {
	return r.ReadRequest(context.Background(), memoryStream(raw), 0)
}

// ParseResponse is the ParseRequest counterpart for responses.
func (r *Reader) ParseResponse(raw string) (*http.Response, error) {
	return r.ReadResponse(context.Background(), memoryStream(raw), 0)
}

func memoryStream(raw string) *transport.Stream {
	return transport.NewStream(strings.NewReader(raw), make([]byte, max(len(raw), 1)))
}
