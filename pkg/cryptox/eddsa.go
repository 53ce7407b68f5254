package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// SigningKey is a freshly generated session signing key.
type SigningKey struct {
	// ID is a random 128-bit key id for the JWT kid header.
	ID string
	// PEM is the PKCS8 "PRIVATE KEY" block accepted by jwtx.NewSignerEdDSA.
	PEM []byte
}

// GenerateSigningKey creates an Ed25519 key for signing session tokens.
// Keys only live in memory, so a restart rotates every key.
func GenerateSigningKey() (SigningKey, error) {
	id, err := GenerateToken(TokenSize128)
	if err != nil {
		return SigningKey{}, fmt.Errorf("cryptox: signing key id: %w", err)
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return SigningKey{}, fmt.Errorf("cryptox: generate signing key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return SigningKey{}, fmt.Errorf("cryptox: encode signing key: %w", err)
	}

	return SigningKey{
		ID:  id,
		PEM: pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}),
	}, nil
}
