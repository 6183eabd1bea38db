package status

import (
	"context"
	"errors"
	"os"
)

// HTTPError is an error carrying the status code it's supposed to be answered with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// ErrStatusLineTooLarge is answered with BadGateway, as a response comes from upstream.
var (
	ErrStartLineTooLarge     = NewError(RequestURITooLong, "start line is too large")
	ErrStatusLineTooLarge    = NewError(BadGateway, "status line is too large")
	ErrHeaderSectionTooLarge = NewError(RequestHeaderFieldsTooLarge, "header section is too large")
	ErrMalformedStartLine    = NewError(BadRequest, "malformed start line")
	ErrMalformedHeaderLine   = NewError(BadRequest, "malformed header line")
	ErrMissingHost           = NewError(BadRequest, "missing host")
	ErrBadHost               = NewError(BadRequest, "bad host")

	ErrBadContentLength    = NewError(BadRequest, "bad content length")
	ErrBadChunk            = NewError(BadRequest, "malformed chunk-encoded data")
	ErrUnsupportedEncoding = NewError(NotImplemented, "transfer coding is not supported")
	ErrBodyTooLarge        = NewError(RequestEntityTooLarge, "body is too large")
)

// CodeOf picks a status code to answer a failed request with. Errors without a code of
// their own are considered to be the peer's fault, except timeouts.
func CodeOf(err error) Code {
	var httpErr HTTPError
	switch {
	case err == nil:
		return OK
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return RequestTimeout
	default:
		return BadRequest
	}
}
