package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("256 bit tokens are 43 chars", func(t *testing.T) {
		tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		require.Len(t, tok, 43)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{}, 100)
		for range 100 {
			tok, err := cryptox.GenerateToken(cryptox.TokenSize128)
			require.NoError(t, err)
			_, dup := seen[tok]
			require.False(t, dup)
			seen[tok] = struct{}{}
		}
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := cryptox.GenerateToken(0)
		require.Error(t, err)
	})
}

func TestFingerprintToken(t *testing.T) {
	a := cryptox.FingerprintToken("invite-token")
	b := cryptox.FingerprintToken("invite-token")
	c := cryptox.FingerprintToken("other-token")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 43)
	require.NotContains(t, a, "invite-token")
}

func TestTokenHint(t *testing.T) {
	require.Empty(t, cryptox.TokenHint(""))
	require.Len(t, cryptox.TokenHint("abc"), 8)
	require.Equal(t, cryptox.FingerprintToken("abc")[:8], cryptox.TokenHint("abc"))
}
