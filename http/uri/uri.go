package uri

import "strings"

// URI is a request-target resolved into its components. Scheme is empty unless the request
// came in absolute-form. Path is empty for asterisk-form and authority-form requests.
type URI struct {
	Scheme    string
	Authority string
	Path      string
	RawQuery  string
	Fragment  string
}

// Parse splits a reference of the form [scheme:]//authority[path][?query][#fragment] or
// path[?query][#fragment]. Parse never validates characters, as the request line is
// already guaranteed to contain no whitespaces.
func Parse(raw string) URI {
	var u URI

	raw, u.Fragment, _ = strings.Cut(raw, "#")
	raw, u.RawQuery, _ = strings.Cut(raw, "?")

	if scheme, rest, found := strings.Cut(raw, "://"); found && IsScheme(scheme) {
		u.Scheme, raw = scheme, "//"+rest
	}

	if strings.HasPrefix(raw, "//") {
		raw = raw[2:]
		slash := strings.IndexByte(raw, '/')
		if slash == -1 {
			slash = len(raw)
		}

		u.Authority, raw = raw[:slash], raw[slash:]
	}

	u.Path = raw
	return u
}

// FromAuthority makes a URI consisting of the authority only.
func FromAuthority(authority string) URI {
	return URI{Authority: authority}
}

// IsScheme tells whether the string is a valid URI scheme: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func IsScheme(str string) bool {
	if len(str) == 0 || !isAlpha(str[0]) {
		return false
	}

	for i := 1; i < len(str); i++ {
		switch c := str[i]; {
		case isAlpha(c), c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		default:
			return false
		}
	}

	return true
}

// Host returns the authority without userinfo.
func (u URI) Host() string {
	if at := strings.LastIndexByte(u.Authority, '@'); at != -1 {
		return u.Authority[at+1:]
	}

	return u.Authority
}

// DecodedPath returns the percent-decoded path and tells whether it was properly encoded.
// Encoded slashes and non-printable characters are left encoded, so the path can't change
// its segmentation by decoding.
func (u URI) DecodedPath() (string, bool) {
	return urlDecode(u.Path)
}

func (u URI) String() string {
	var b strings.Builder
	b.Grow(len(u.Scheme) + len(u.Authority) + len(u.Path) + len(u.RawQuery) + len(u.Fragment) + 6)

	if len(u.Scheme) > 0 {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}

	if len(u.Scheme) > 0 || len(u.Authority) > 0 {
		b.WriteString("//")
		b.WriteString(u.Authority)
	}

	b.WriteString(u.Path)

	if len(u.RawQuery) > 0 {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}

	if len(u.Fragment) > 0 {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}

	return b.String()
}

func isAlpha(c byte) bool {
	return (c|0x20) >= 'a' && (c|0x20) <= 'z'
}

func urlDecode(str string) (string, bool) {
	var b strings.Builder
	b.Grow(len(str))
	s := str

	for len(s) > 0 {
		percent := strings.IndexByte(s, '%')
		if percent == -1 {
			break
		}

		b.WriteString(s[:percent])
		s = s[percent+1:]
		if len(s) < 2 {
			return "", false
		}

		c1, c2 := s[0], s[1]
		s = s[2:]
		x, y := halfbyte(c1), halfbyte(c2)
		if x|y == 0xFF {
			return "", false
		}

		char := (x << 4) | y
		if char == '/' || char < 0x20 || char == 0x7f {
			b.Write([]byte{'%', c1 | 0x20, c2 | 0x20})
			continue
		}

		b.WriteByte(char)
	}

	b.WriteString(s)

	return b.String(), true
}

func halfbyte(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0xFF
	}
}
