package http1

import (
	"bytes"

	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/internal/fieldcodec"
)

// headers reads the header section up to and including the empty line. The budget covers
// every header line with its CRLF, but neither the start line nor the terminator.
func (s *session) headers(budget, prealloc int) (*headers.Headers, error) {
	hdrs := headers.NewPrealloc(prealloc)
	consumed := 0

	for {
		lf := s.buff.Search()
		if lf == -1 {
			if consumed+s.buff.Len() > budget && !s.awaitsTerminator() {
				return nil, status.ErrHeaderSectionTooLarge
			}

			if err := s.fill(); err != nil {
				return nil, err
			}

			continue
		}

		if lf == 0 {
			s.buff.Shift(crlfLen)
			return hdrs, nil
		}

		if consumed += lf + crlfLen; consumed > budget {
			return nil, status.ErrHeaderSectionTooLarge
		}

		name, value, err := parseHeaderLine(s.buff.Shift(lf + crlfLen)[:lf])
		if err != nil {
			return nil, err
		}

		hdrs.Add(name, value)
	}
}

// awaitsTerminator tells whether all there's buffered is a CR that might begin the empty
// line, which doesn't count towards the budget.
func (s *session) awaitsTerminator() bool {
	return s.buff.Len() == 1 && s.buff.Bytes()[0] == '\r'
}

// parseHeaderLine splits field-name ":" OWS field-value OWS.
func parseHeaderLine(line []byte) (name, value string, err error) {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return "", "", status.ErrMalformedHeaderLine
	}

	name, ok := fieldcodec.Name(line[:colon])
	if !ok {
		return "", "", status.ErrMalformedHeaderLine
	}

	value, ok = fieldcodec.Value(trimOWS(line[colon+1:]))
	if !ok {
		return "", "", status.ErrMalformedHeaderLine
	}

	return name, value, nil
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}
