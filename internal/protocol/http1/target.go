package http1

import (
	"strings"

	"github.com/indigo-web/h1frame/http"
	"github.com/indigo-web/h1frame/http/headers"
	"github.com/indigo-web/h1frame/http/status"
	"github.com/indigo-web/h1frame/http/uri"
	"golang.org/x/net/http/httpguts"
)

// resolveTarget classifies the request-target and builds the URI out of it. Origin-form and
// asterisk-form targets don't carry the authority, so it's taken from the Host header.
func resolveTarget(target string, hdrs *headers.Headers) (http.TargetForm, uri.URI, error) {
	switch {
	case target[0] == '/':
		host, err := authority(hdrs)
		if err != nil {
			return 0, uri.URI{}, err
		}

		return http.OriginForm, uri.Parse(host + target), nil
	case target == "*":
		host, err := authority(hdrs)
		if err != nil {
			return 0, uri.URI{}, err
		}

		return http.AsteriskForm, uri.Parse(host), nil
	case isAbsolute(target):
		return http.AbsoluteForm, uri.Parse(target), nil
	default:
		return http.AuthorityForm, uri.FromAuthority(target), nil
	}
}

// authority returns the Host header value prefixed by a double slash, so it can be parsed as
// a network-path reference.
func authority(hdrs *headers.Headers) (string, error) {
	values := hdrs.Values(headers.Host)
	switch {
	case len(values) == 0 || len(values[0]) == 0:
		return "", status.ErrMissingHost
	case len(values) > 1:
		return "", status.ErrBadHost
	}

	host := strings.TrimPrefix(values[0], "//")
	if !httpguts.ValidHostHeader(host) {
		return "", status.ErrBadHost
	}

	return "//" + host, nil
}

func isAbsolute(target string) bool {
	scheme, _, found := strings.Cut(target, "://")
	return found && uri.IsScheme(scheme)
}
