package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/aussiebroadwan/propflow/pkg/idx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// IdentityProvider owns authentication identities. Identity creation is not
// part of the provisioning transaction, so callers compensate with
// DeleteIdentity when a later step fails.
type IdentityProvider interface {
	// CreateIdentity returns the new identity id, or ErrAccountExists.
	CreateIdentity(ctx context.Context, email, password string) (string, error)
	DeleteIdentity(ctx context.Context, id string) error

	// Authenticate returns ErrInvalidCredentials for unknown emails and
	// wrong passwords alike.
	Authenticate(ctx context.Context, email, password string) (domain.Identity, error)
}

// StoreIdentityProvider keeps identities in the service's own store with
// argon2id password hashes.
type StoreIdentityProvider struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Now    func() time.Time
}

func (p *StoreIdentityProvider) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	hash, err := p.Hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slogx.Err(err))
		return "", err
	}

	now := clock(p.Now)
	ident := domain.Identity{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.Store.Identities().CreateIdentity(ctx, ident); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrAccountExists
		}
		log.Error("failed to create identity", slogx.Email(email), slogx.Err(err))
		return "", err
	}
	return ident.ID, nil
}

func (p *StoreIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	err := p.Store.Identities().DeleteIdentity(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (p *StoreIdentityProvider) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	ident, err := p.Store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash so unknown emails cost the same as wrong passwords.
			_, _ = p.Hasher.Hash(password)
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, err
	}

	if err := p.Hasher.Verify(password, ident.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable",
				slog.String("identity_id", ident.ID),
				slogx.Err(err),
			)
		}
		return domain.Identity{}, ErrInvalidCredentials
	}
	return ident, nil
}
