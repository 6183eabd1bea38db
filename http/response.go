package http

import (
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/proto"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/transport"
)

// Response is a framed HTTP/1.x response, with its body still unread in the Body channel.
type Response struct {
	Code status.Code
	// Reason is the reason phrase. Absent and empty phrases are indistinguishable.
	Reason  string
	Proto   proto.Version
	Headers *headers.Headers
	// Body is the channel the response was read from. It's borrowed, not owned.
	Body transport.Channel
}
