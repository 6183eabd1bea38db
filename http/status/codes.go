package status

import "strconv"

type (
	Code   uint16
	Status string
)

// Codes the framing and connection layers produce or reason about. Any other three-digit code
// is still a valid Code for a parsed response.
const (
	Continue           Code = 100 // RFC 9110, 15.2.1
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	OK          Code = 200 // RFC 9110, 15.3.1
	NoContent   Code = 204 // RFC 9110, 15.3.5
	NotModified Code = 304 // RFC 9110, 15.4.5

	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	NotFound                    Code = 404 // RFC 9110, 15.5.5
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	LengthRequired              Code = 411 // RFC 9110, 15.5.12
	RequestEntityTooLarge       Code = 413 // RFC 9110, 15.5.14
	RequestURITooLong           Code = 414 // RFC 9110, 15.5.15
	UnsupportedMediaType        Code = 415 // RFC 9110, 15.5.16
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	BadGateway              Code = 502 // RFC 9110, 15.6.3
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// KnownCodes lists every code declared above.
var KnownCodes = []Code{
	Continue, SwitchingProtocols, OK, NoContent, NotModified, BadRequest, NotFound, RequestTimeout,
	LengthRequired, RequestEntityTooLarge, RequestURITooLong, UnsupportedMediaType,
	RequestHeaderFieldsTooLarge, InternalServerError, NotImplemented, BadGateway, HTTPVersionNotSupported,
}

var texts = map[Code]Status{
	Continue:                    "Continue",
	SwitchingProtocols:          "Switching Protocols",
	OK:                          "OK",
	NoContent:                   "No Content",
	NotModified:                 "Not Modified",
	BadRequest:                  "Bad Request",
	NotFound:                    "Not Found",
	RequestTimeout:              "Request Timeout",
	LengthRequired:              "Length Required",
	RequestEntityTooLarge:       "Request Entity Too Large",
	RequestURITooLong:           "Request URI Too Long",
	UnsupportedMediaType:        "Unsupported Media Type",
	RequestHeaderFieldsTooLarge: "Request Header Fields Too Large",
	InternalServerError:         "Internal Server Error",
	NotImplemented:              "Not Implemented",
	BadGateway:                  "Bad Gateway",
	HTTPVersionNotSupported:     "HTTP Version Not Supported",
}

// Text returns a reason phrase for the code, or an empty string if the code is unknown.
func Text(code Code) Status {
	return texts[code]
}

// StringCode returns the code's decimal representation.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}

// Informational tells whether the code is 1xx.
func (c Code) Informational() bool {
	return c >= 100 && c < 200
}
