package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes that matched no row
	// because a guard did not hold (e.g. the invitation was consumed).
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose sub-repositories so transactions are
// always started from the root and never nested.
type Store interface {
	Invitations() Invitations
	Identities() Identities
	Profiles() Profiles
	Companies() Companies
	Grants() Grants

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions return sql.ErrTxDone.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invitations interface {
	// CreateInvitation inserts a new invitation; duplicate token hashes
	// return ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash is the lookup path for invite links.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListInvitations returns newest first.
	ListInvitations(ctx context.Context, f domain.InvitationFilter) ([]domain.Invitation, error)

	// ConsumeInvitation atomically records one acceptance. It only matches
	// an active, unexpired invitation with uses left, and flips single-use
	// invitations to accepted. Returns ErrConflict when no row matched.
	ConsumeInvitation(ctx context.Context, id, acceptedBy string, now time.Time) error

	// RevokeInvitation moves an active invitation to revoked. Returns
	// ErrConflict when the invitation is no longer active.
	RevokeInvitation(ctx context.Context, id string, now time.Time) error

	// DeleteExpiredInvitations purges invitations that expired before the
	// cutoff and returns how many were removed.
	DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error)
}

type Identities interface {
	// CreateIdentity returns ErrAlreadyExists when the email is taken.
	CreateIdentity(ctx context.Context, id domain.Identity) error
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail matches case-insensitively.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// DeleteIdentity cascades to the profile and grants.
	DeleteIdentity(ctx context.Context, id string) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.Profile) error
	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)
	ListProfilesByCompany(ctx context.Context, companyID string) ([]domain.Profile, error)
}

type Companies interface {
	CreateCompany(ctx context.Context, c domain.Company) error
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)
}

type Grants interface {
	// CreateGrant is idempotent.
	CreateGrant(ctx context.Context, g domain.Grant) error
	ListGrantsByIdentity(ctx context.Context, identityID string) ([]domain.Grant, error)
	HasGrant(ctx context.Context, identityID string, c domain.Capability) (bool, error)

	// AnyGrant reports whether any identity holds c. Inside a transaction
	// concurrent callers for the same capability are serialized until commit.
	AnyGrant(ctx context.Context, c domain.Capability) (bool, error)
}
