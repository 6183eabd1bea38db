// Package fieldcodec turns raw header field octets into strings. Field names must be tokens,
// values must not carry control characters except HTAB. Values that aren't valid UTF-8 are
// treated as ISO-8859-1 (obs-text), which is how HTTP/1.x historically defined them.
package fieldcodec

import (
	"unicode/utf8"

	"github.com/indigo-web/utils/uf"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/text/encoding/charmap"
)

// Name validates and copies a header field name.
func Name(raw []byte) (string, bool) {
	if !httpguts.ValidHeaderFieldName(uf.B2S(raw)) {
		return "", false
	}

	return string(raw), true
}

// Value validates a header field value and decodes it into a UTF-8 string. The value must be
// already stripped of surrounding whitespaces.
func Value(raw []byte) (string, bool) {
	if !httpguts.ValidHeaderFieldValue(uf.B2S(raw)) {
		return "", false
	}

	if utf8.Valid(raw) {
		return string(raw), true
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}

	return string(decoded), true
}
