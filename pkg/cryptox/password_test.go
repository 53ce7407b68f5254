package cryptox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := cryptox.NewHasherWithPepper("pepper")

	t.Run("round trip", func(t *testing.T) {
		hash, err := h.Hash("correct horse 1")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))
		require.NoError(t, h.Verify("correct horse 1", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		hash, err := h.Hash("correct horse 1")
		require.NoError(t, err)
		require.ErrorIs(t, h.Verify("wrong", hash), cryptox.ErrPasswordMismatch)
	})

	t.Run("salted", func(t *testing.T) {
		a, err := h.Hash("same")
		require.NoError(t, err)
		b, err := h.Hash("same")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("pepper matters", func(t *testing.T) {
		hash, err := h.Hash("secret1")
		require.NoError(t, err)
		other := cryptox.NewHasherWithPepper("different")
		require.ErrorIs(t, other.Verify("secret1", hash), cryptox.ErrPasswordMismatch)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"plain",
			"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
		} {
			require.ErrorIs(t, h.Verify("x", bad), cryptox.ErrMalformedHash, bad)
		}
	})
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "pepper")

	first, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = cryptox.LoadOrCreatePepper(empty)
	require.Error(t, err)
}
