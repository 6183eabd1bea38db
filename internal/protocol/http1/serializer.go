package http1

import (
	"strconv"

	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
)

// AppendRequest writes the request line and the header section, as they'd be framed. Header
// names keep their case, values of the same name are written next to each other.
func AppendRequest(buff []byte, request *http.Request) []byte {
	buff = append(buff, request.Method...)
	buff = append(buff, ' ')
	buff = appendTarget(buff, request)
	buff = append(buff, ' ')
	buff = append(buff, request.Proto.Token()...)
	buff = crlf(buff)

	return appendHeaders(buff, request.Headers)
}

// AppendResponse writes the status line and the header section.
func AppendResponse(buff []byte, response *http.Response) []byte {
	buff = append(buff, response.Proto.Token()...)
	buff = append(buff, ' ')
	buff = appendCode(buff, int(response.Code))
	if len(response.Reason) > 0 {
		buff = append(buff, ' ')
		buff = append(buff, response.Reason...)
	}
	buff = crlf(buff)

	return appendHeaders(buff, response.Headers)
}

func appendTarget(buff []byte, request *http.Request) []byte {
	switch request.Form {
	case http.OriginForm:
		buff = append(buff, request.URI.Path...)
		if len(request.URI.RawQuery) > 0 {
			buff = append(buff, '?')
			buff = append(buff, request.URI.RawQuery...)
		}
		if len(request.URI.Fragment) > 0 {
			buff = append(buff, '#')
			buff = append(buff, request.URI.Fragment...)
		}

		return buff
	case http.AsteriskForm:
		return append(buff, '*')
	default:
		return append(buff, request.Target...)
	}
}

// appendCode writes the code as exactly three digits.
func appendCode(buff []byte, code int) []byte {
	for i := 100; i > code && i > 1; i /= 10 {
		buff = append(buff, '0')
	}

	return strconv.AppendInt(buff, int64(code), 10)
}

func appendHeaders(buff []byte, hdrs *headers.Headers) []byte {
	for name, value := range hdrs.Pairs() {
		buff = append(buff, name...)
		buff = append(buff, ':', ' ')
		buff = append(buff, value...)
		buff = crlf(buff)
	}

	return crlf(buff)
}

func crlf(buff []byte) []byte {
	return append(buff, '\r', '\n')
}
