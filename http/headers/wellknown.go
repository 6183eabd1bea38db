package headers

import "strings"

// Names of headers the framing layer itself cares about.
const (
	Host             = "Host"
	ContentLength    = "Content-Length"
	TransferEncoding = "Transfer-Encoding"
	Trailer          = "Trailer"
	Connection       = "Connection"
	ContentType      = "Content-Type"
)

// Tokens flattens comma-separated list values into separate trimmed tokens, skipping
// empty list elements.
func Tokens(values []string) (tokens []string) {
	for _, value := range values {
		for len(value) > 0 {
			var token string
			token, value, _ = strings.Cut(value, ",")
			if token = strings.Trim(token, " \t"); len(token) > 0 {
				tokens = append(tokens, token)
			}
		}
	}

	return tokens
}
