package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
)

func TestBootstrap(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	svc := &BootstrapService{
		Store:      f.store,
		Identities: f.identities,
		Plans:      f.plans,
		Token:      "let-me-in",
		Now:        f.clock.Now,
	}
	req := domain.BootstrapData{
		AdminEmail:    "root@propflow.test",
		AdminPassword: testPassword,
		AdminFullName: "Platform Root",
		CompanyName:   "PropFlow Operations",
	}

	_, err := svc.Bootstrap(ctx, "wrong", req)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	weak := req
	weak.AdminPassword = "password"
	_, err = svc.Bootstrap(ctx, "let-me-in", weak)
	require.ErrorIs(t, err, ErrWeakCredential)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	res, err := svc.Bootstrap(ctx, "let-me-in", req)
	require.NoError(t, err)

	p, err := f.principals.Load(ctx, res.AdminID)
	require.NoError(t, err)
	require.True(t, p.HasGrant(domain.CapPlatformAdmin))
	require.True(t, p.Can(domain.PermInvitePlatform))
	require.True(t, p.Can(domain.PermManageCompany))
	require.Equal(t, res.CompanyID, p.Company.ID)
	require.Equal(t, "enterprise", p.Plan.Name)

	_, err = svc.Bootstrap(ctx, "let-me-in", req)
	require.ErrorIs(t, err, ErrBootstrapAlready)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	svc := &BootstrapService{Store: f.store, Identities: f.identities}
	_, err := svc.Bootstrap(context.Background(), "", domain.BootstrapData{})
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
}

// racingIdentities lets another bootstrap finish between the caller's
// emptiness check and its transaction.
type racingIdentities struct {
	IdentityProvider
	race func()
}

func (r *racingIdentities) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	if r.race != nil {
		race := r.race
		r.race = nil
		race()
	}
	return r.IdentityProvider.CreateIdentity(ctx, email, password)
}

func TestBootstrapRaceGrantsOneAdmin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	winner := &BootstrapService{Store: f.store, Identities: f.identities, Plans: f.plans, Token: "let-me-in", Now: f.clock.Now}
	racing := &racingIdentities{IdentityProvider: f.identities}
	loser := &BootstrapService{Store: f.store, Identities: racing, Plans: f.plans, Token: "let-me-in", Now: f.clock.Now}

	var won BootstrapResult
	racing.race = func() {
		var err error
		won, err = winner.Bootstrap(ctx, "let-me-in", domain.BootstrapData{
			AdminEmail: "first@propflow.test", AdminPassword: testPassword, CompanyName: "First Ops",
		})
		require.NoError(t, err)
	}

	_, err := loser.Bootstrap(ctx, "let-me-in", domain.BootstrapData{
		AdminEmail: "second@propflow.test", AdminPassword: testPassword, CompanyName: "Second Ops",
	})
	require.ErrorIs(t, err, ErrBootstrapAlready)

	ok, err := f.store.Grants().HasGrant(ctx, won.AdminID, domain.CapPlatformAdmin)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.store.Identities().GetIdentityByEmail(ctx, "second@propflow.test")
	require.ErrorIs(t, err, store.ErrNotFound, "losing identity is compensated")
}
