package unreader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnreader(t *testing.T) {
	source := func() ([]byte, error) {
		return []byte("from source"), nil
	}

	t.Run("nothing pending", func(t *testing.T) {
		var u Unreader
		data, err := u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "from source", string(data))
	})

	t.Run("pending first", func(t *testing.T) {
		var u Unreader
		u.Unread([]byte("pending"))
		data, err := u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "pending", string(data))

		data, err = u.PendingOr(source)
		require.NoError(t, err)
		require.Equal(t, "from source", string(data))
	})

	t.Run("unread is prepended", func(t *testing.T) {
		var u Unreader
		u.Unread([]byte("world"))
		u.Unread([]byte("hello "))
		require.Equal(t, "hello world", string(u.Pending()))
	})

	t.Run("empty unread is noop", func(t *testing.T) {
		var u Unreader
		u.Unread([]byte("data"))
		u.Unread(nil)
		require.Equal(t, "data", string(u.Pending()))
	})

	t.Run("source error", func(t *testing.T) {
		var u Unreader
		wantErr := errors.New("boom")
		_, err := u.PendingOr(func() ([]byte, error) {
			return nil, wantErr
		})
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("reset", func(t *testing.T) {
		var u Unreader
		u.Unread([]byte("data"))
		u.Reset()
		require.Empty(t, u.Pending())
	})
}
