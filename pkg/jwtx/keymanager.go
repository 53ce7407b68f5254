package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/aussiebroadwan/propflow/pkg/cryptox"
)

// KeyManager owns the ephemeral signing keys for an instance, the KeySet
// published at the JWKS endpoint and the matching Verifier. Keys live in
// memory only, so sessions end when the process restarts.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is required and is validated on every token.
	Issuer string

	// Audience values validated on every token. Empty disables the check.
	Audience []string

	// NumKeys is clamped to [1, 10]; 0 means 3.
	NumKeys int
}

// NewEphemeralKeyManager generates NumKeys Ed25519 signing keys.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	numKeys = min(numKeys, 10)

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)
	for i := range numKeys {
		key, err := cryptox.GenerateSigningKey()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}
		signer, err := NewSignerEdDSA("propflow-"+key.ID, key.PEM)
		if err != nil {
			return nil, err
		}
		if err := keyset.AddJWK(signer.PublicJWK()); err != nil {
			return nil, fmt.Errorf("jwtx: add key %d: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// Signer returns one of the signing keys at random.
func (km *KeyManager) Signer() Signer {
	if len(km.signers) == 1 {
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
