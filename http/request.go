package http

import (
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/proto"
	"github.com/indigo-web/h1frame/http/uri"
	"github.com/indigo-web/h1frame/transport"
)

// TargetForm is the surface syntax the request-target was written in.
type TargetForm uint8

const (
	OriginForm TargetForm = iota + 1
	AbsoluteForm
	AuthorityForm
	AsteriskForm
)

func (f TargetForm) String() string {
	switch f {
	case OriginForm:
		return "origin-form"
	case AbsoluteForm:
		return "absolute-form"
	case AuthorityForm:
		return "authority-form"
	case AsteriskForm:
		return "asterisk-form"
	default:
		return "unknown"
	}
}

// Request is a framed HTTP/1.x request. Its body isn't read yet: it's still in the Body
// channel, starting exactly at its first byte.
type Request struct {
	// Method is the method token exactly as it was sent.
	Method string
	// Target is the raw request-target. It's empty for origin-form requests, as their path is
	// folded into the URI together with the Host header.
	Target string
	// Form tells which form the request-target was written in.
	Form TargetForm
	// URI is the resolved request-target.
	URI   uri.URI
	Proto proto.Version
	// Headers holds header fields in order of their first appearance. Lookup is case-insensitive.
	Headers *headers.Headers
	// Body is the channel the request was read from. It's borrowed, not owned.
	Body transport.Channel
}

// Host returns the host the request is addressed to, as found in its URI.
func (r *Request) Host() string {
	return r.URI.Host()
}
