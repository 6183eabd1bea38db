package proto

import "strconv"

// Version is the protocol version exactly as it appeared after the "HTTP/" prefix, e.g.
// "1.1" or "2". The minor part is optional.
type Version string

const (
	HTTP10 Version = "1.0"
	HTTP11 Version = "1.1"
)

const scheme = "HTTP/"

// Parse validates a bare version (digits with an optional dot-separated fraction).
func Parse(raw string) (Version, bool) {
	major, minor, found := cut(raw)
	if !digits(major) || (found && !digits(minor)) {
		return "", false
	}

	return Version(raw), true
}

// FromToken parses a full protocol token, like HTTP/1.1.
func FromToken(token string) (Version, bool) {
	if len(token) <= len(scheme) || token[:len(scheme)] != scheme {
		return "", false
	}

	return Parse(token[len(scheme):])
}

// Major returns the major version number or -1 if it doesn't fit into an int.
func (v Version) Major() int {
	major, _, _ := cut(string(v))
	return atoi(major)
}

// Minor returns the minor version number. Versions without fraction have minor of 0.
func (v Version) Minor() int {
	_, minor, found := cut(string(v))
	if !found {
		return 0
	}

	return atoi(minor)
}

// Token returns the version prefixed with the protocol name, as it's written in a start line.
func (v Version) Token() string {
	return scheme + string(v)
}

func (v Version) String() string {
	return string(v)
}

func cut(raw string) (major, minor string, found bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '.' {
			return raw[:i], raw[i+1:], true
		}
	}

	return raw, "", false
}

func digits(str string) bool {
	if len(str) == 0 {
		return false
	}

	for i := 0; i < len(str); i++ {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}

	return true
}

func atoi(str string) int {
	n, err := strconv.Atoi(str)
	if err != nil {
		return -1
	}

	return n
}
