package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, tc := range []struct {
			Raw          string
			Major, Minor int
		}{
			{"1.1", 1, 1},
			{"1.0", 1, 0},
			{"2", 2, 0},
			{"10.25", 10, 25},
		} {
			v, ok := Parse(tc.Raw)
			require.True(t, ok, tc.Raw)
			require.Equal(t, tc.Raw, v.String())
			require.Equal(t, tc.Major, v.Major())
			require.Equal(t, tc.Minor, v.Minor())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{"", ".", "1.", ".1", "1.1.1", "a.b", "1,1", " 1.1"} {
			_, ok := Parse(raw)
			require.False(t, ok, raw)
		}
	})
}

func TestFromToken(t *testing.T) {
	v, ok := FromToken("HTTP/1.1")
	require.True(t, ok)
	require.Equal(t, HTTP11, v)
	require.Equal(t, "HTTP/1.1", v.Token())

	for _, token := range []string{"HTTP/", "http/1.1", "HTTPS/1.1", "HTTP/x"} {
		_, ok = FromToken(token)
		require.False(t, ok, token)
	}
}
