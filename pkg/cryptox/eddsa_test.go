package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateSigningKey(t *testing.T) {
	key, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)
	require.NotEmpty(t, key.ID)

	block, _ := pem.Decode(key.PEM)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)
	priv, ok := parsed.(ed25519.PrivateKey)
	require.True(t, ok)
	require.Len(t, priv, ed25519.PrivateKeySize)

	other, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)
	require.NotEqual(t, key.ID, other.ID)
	require.NotEqual(t, key.PEM, other.PEM)
}
