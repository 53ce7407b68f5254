package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "propflow.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCompany(t *testing.T, s store.Store, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Companies().CreateCompany(context.Background(), domain.Company{
		ID: id, Name: "Acme Realty", Plan: "pro", CreatedAt: now, UpdatedAt: now,
	}))
}

func invitation(id, hash string, maxUses int, expires time.Time) domain.Invitation {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Invitation{
		ID:           id,
		TokenHash:    hash,
		Scope:        domain.ScopePlatform,
		Label:        "launch",
		Role:         domain.RoleAdmin,
		AssignedPlan: "pro",
		MaxUses:      maxUses,
		ExpiresAt:    expires.Truncate(time.Millisecond),
		Status:       domain.StatusActive,
		CreatedBy:    "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestInvitations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	expires := time.Now().Add(24 * time.Hour)

	inv := invitation("inv1", "hash1", 2, expires)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	t.Run("duplicate token hash", func(t *testing.T) {
		dup := invitation("inv2", "hash1", 1, expires)
		require.ErrorIs(t, s.Invitations().CreateInvitation(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := s.Invitations().GetInvitationByTokenHash(ctx, "hash1")
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID)
		require.Equal(t, inv.ExpiresAt.UnixMilli(), got.ExpiresAt.UnixMilli())
		require.Equal(t, domain.ScopePlatform, got.Scope)
		require.Equal(t, 0, got.UseCount)
		require.Empty(t, got.CompanyID)
		require.Nil(t, got.AcceptedAt)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Invitations().GetInvitationByTokenHash(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Invitations().GetInvitationByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("consume until exhausted", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, s.Invitations().ConsumeInvitation(ctx, "inv1", "u1", now))
		require.NoError(t, s.Invitations().ConsumeInvitation(ctx, "inv1", "u2", now))
		require.ErrorIs(t, s.Invitations().ConsumeInvitation(ctx, "inv1", "u3", now), store.ErrConflict)

		got, err := s.Invitations().GetInvitationByID(ctx, "inv1")
		require.NoError(t, err)
		require.Equal(t, 2, got.UseCount)
		require.Equal(t, domain.StatusActive, got.Status)
		require.Equal(t, "u2", got.AcceptedBy)
		require.NotNil(t, got.AcceptedAt)
	})

	t.Run("single use flips to accepted", func(t *testing.T) {
		one := invitation("inv3", "hash3", 1, expires)
		require.NoError(t, s.Invitations().CreateInvitation(ctx, one))
		require.NoError(t, s.Invitations().ConsumeInvitation(ctx, "inv3", "u1", time.Now()))

		got, err := s.Invitations().GetInvitationByID(ctx, "inv3")
		require.NoError(t, err)
		require.Equal(t, domain.StatusAccepted, got.Status)
	})

	t.Run("consume refuses expired", func(t *testing.T) {
		exp := invitation("inv4", "hash4", 5, time.Now().Add(time.Minute))
		require.NoError(t, s.Invitations().CreateInvitation(ctx, exp))
		err := s.Invitations().ConsumeInvitation(ctx, "inv4", "u1", exp.ExpiresAt)
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("revoke", func(t *testing.T) {
		rv := invitation("inv5", "hash5", 5, expires)
		require.NoError(t, s.Invitations().CreateInvitation(ctx, rv))
		require.NoError(t, s.Invitations().RevokeInvitation(ctx, "inv5", time.Now()))
		require.ErrorIs(t, s.Invitations().RevokeInvitation(ctx, "inv5", time.Now()), store.ErrConflict)
		require.ErrorIs(t, s.Invitations().ConsumeInvitation(ctx, "inv5", "u1", time.Now()), store.ErrConflict)

		got, err := s.Invitations().GetInvitationByID(ctx, "inv5")
		require.NoError(t, err)
		require.Equal(t, domain.StatusRevoked, got.Status)
		require.NotNil(t, got.RevokedAt)
	})

	t.Run("list and filter", func(t *testing.T) {
		seedCompany(t, s, "c1")
		team := invitation("inv6", "hash6", 1, expires)
		team.Scope = domain.ScopeTeam
		team.CompanyID = "c1"
		team.AssignedPlan = ""
		require.NoError(t, s.Invitations().CreateInvitation(ctx, team))

		all, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{})
		require.NoError(t, err)
		require.Len(t, all, 5)

		mine, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{CompanyID: "c1"})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "inv6", mine[0].ID)

		revoked, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{Status: domain.StatusRevoked})
		require.NoError(t, err)
		require.Len(t, revoked, 1)

		limited, err := s.Invitations().ListInvitations(ctx, domain.InvitationFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, limited, 2)
	})

	t.Run("delete expired", func(t *testing.T) {
		n, err := s.Invitations().DeleteExpiredInvitations(ctx, time.Now().Add(48*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 5, n)
	})
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	empty, err := s.Identities().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.Identities().CreateIdentity(ctx, domain.Identity{
		ID: "id1", Email: "Jane@Example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now,
	}))

	t.Run("email is case-insensitive and unique", func(t *testing.T) {
		got, err := s.Identities().GetIdentityByEmail(ctx, "JANE@example.COM")
		require.NoError(t, err)
		require.Equal(t, "id1", got.ID)
		require.Equal(t, "jane@example.com", got.Email)

		err = s.Identities().CreateIdentity(ctx, domain.Identity{
			ID: "id2", Email: "jane@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("profile and grants cascade with identity", func(t *testing.T) {
		seedCompany(t, s, "c1")
		require.NoError(t, s.Profiles().CreateProfile(ctx, domain.Profile{
			ID: "id1", Email: "jane@example.com", FullName: "Jane", Role: domain.RoleAgent,
			CompanyID: "c1", CreatedAt: now, UpdatedAt: now,
		}))
		require.NoError(t, s.Grants().CreateGrant(ctx, domain.Grant{
			IdentityID: "id1", Capability: domain.CapPlatformAdmin, CreatedAt: now,
		}))
		require.NoError(t, s.Grants().CreateGrant(ctx, domain.Grant{
			IdentityID: "id1", Capability: domain.CapPlatformAdmin, CreatedAt: now,
		}))

		members, err := s.Profiles().ListProfilesByCompany(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.Equal(t, domain.RoleAgent, members[0].Role)

		grants, err := s.Grants().ListGrantsByIdentity(ctx, "id1")
		require.NoError(t, err)
		require.Len(t, grants, 1)
		has, err := s.Grants().HasGrant(ctx, "id1", domain.CapPlatformAdmin)
		require.NoError(t, err)
		require.True(t, has)

		require.NoError(t, s.Identities().DeleteIdentity(ctx, "id1"))
		_, err = s.Profiles().GetProfileByID(ctx, "id1")
		require.ErrorIs(t, err, store.ErrNotFound)
		has, err = s.Grants().HasGrant(ctx, "id1", domain.CapPlatformAdmin)
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("company lookup", func(t *testing.T) {
		c, err := s.Companies().GetCompanyByID(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, "Acme Realty", c.Name)
		_, err = s.Companies().GetCompanyByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Companies().CreateCompany(ctx, domain.Company{
				ID: "tx1", Name: "n", Plan: "p", CreatedAt: now, UpdatedAt: now,
			}))
			return boom
		})
		require.ErrorIs(t, err, boom)
		_, err = s.Companies().GetCompanyByID(ctx, "tx1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commits on success", func(t *testing.T) {
		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Companies().CreateCompany(ctx, domain.Company{
				ID: "tx2", Name: "n", Plan: "p", CreatedAt: now, UpdatedAt: now,
			})
		}))
		_, err := s.Companies().GetCompanyByID(ctx, "tx2")
		require.NoError(t, err)
	})

	t.Run("nested transactions are refused", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
