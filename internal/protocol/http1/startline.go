package http1

import (
	"bytes"
	"strconv"

	"github.com/indigo-web/h1frame/http/proto"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/internal/fieldcodec"
	"github.com/indigo-web/utils/uf"
)

const crlfLen = len("\r\n")

// startLine cuts the first line off the frame, reading more until it's complete. The line
// is returned without its CRLF and is valid until the next fill. A line longer than the
// limit fails with tooLarge.
func (s *session) startLine(limit int, tooLarge error) ([]byte, error) {
	for {
		if lf := s.buff.Search(); lf != -1 {
			if lf+crlfLen > limit {
				return nil, tooLarge
			}

			return s.buff.Shift(lf + crlfLen)[:lf], nil
		}

		if s.buff.Len() >= limit {
			return nil, tooLarge
		}

		if err := s.fill(); err != nil {
			return nil, err
		}
	}
}

type requestLine struct {
	Method, Target string
	Proto          proto.Version
}

// parseRequestLine matches METHOD SP request-target SP "HTTP/" version.
func parseRequestLine(line []byte) (rl requestLine, err error) {
	sp := bytes.IndexByte(line, ' ')
	if sp <= 0 || !isLetters(line[:sp]) {
		return rl, status.ErrMalformedStartLine
	}

	method, rest := line[:sp], line[sp+1:]
	sp = bytes.LastIndexByte(rest, ' ')
	if sp <= 0 || !isTarget(rest[:sp]) {
		return rl, status.ErrMalformedStartLine
	}

	version, ok := proto.FromToken(string(rest[sp+1:]))
	if !ok {
		return rl, status.ErrMalformedStartLine
	}

	return requestLine{
		Method: string(method),
		Target: string(rest[:sp]),
		Proto:  version,
	}, nil
}

type statusLine struct {
	Code   status.Code
	Reason string
	Proto  proto.Version
}

// parseStatusLine matches "HTTP/" version SP 3DIGIT [SP reason-phrase].
func parseStatusLine(line []byte) (sl statusLine, err error) {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return sl, status.ErrMalformedStartLine
	}

	version, ok := proto.FromToken(string(line[:sp]))
	if !ok {
		return sl, status.ErrMalformedStartLine
	}

	rest := line[sp+1:]
	const codeLen = 3
	if len(rest) < codeLen || (len(rest) > codeLen && rest[codeLen] != ' ') {
		return sl, status.ErrMalformedStartLine
	}

	code := rest[:codeLen]
	if !isDigits(code) {
		return sl, status.ErrMalformedStartLine
	}

	// guaranteed to be parsed, as there are exactly three digits
	n, _ := strconv.Atoi(uf.B2S(code))

	var reason string
	if len(rest) > codeLen {
		if reason, ok = fieldcodec.Value(rest[codeLen+1:]); !ok {
			return sl, status.ErrMalformedStartLine
		}
	}

	return statusLine{
		Code:   status.Code(n),
		Reason: reason,
		Proto:  version,
	}, nil
}

func isLetters(b []byte) bool {
	for _, c := range b {
		if (c|0x20) < 'a' || (c|0x20) > 'z' {
			return false
		}
	}

	return true
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// isTarget tells whether the request-target consists of non-whitespace visible characters.
func isTarget(b []byte) bool {
	for _, c := range b {
		if c <= ' ' || c == 0x7f {
			return false
		}
	}

	return true
}
