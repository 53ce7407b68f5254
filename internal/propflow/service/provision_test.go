package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
)

func TestAcceptPlatformInvitation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:        domain.ScopePlatform,
		AssignedPlan: "enterprise",
		IsEnterprise: true,
		CompanyName:  "Suggested Name",
		Email:        "founder@harbour.test",
	})

	ref, err := f.provision.Accept(ctx, token, domain.Credentials{
		Email:       "Founder@Harbour.test",
		Password:    testPassword,
		FullName:    "Fran Founder",
		CompanyName: "Harbour Realty",
	})
	require.NoError(t, err)
	require.Equal(t, "founder@harbour.test", ref.Email)
	require.Equal(t, domain.RoleAdmin, ref.Role)
	require.NotEmpty(t, ref.CompanyID)

	company, err := f.store.Companies().GetCompanyByID(ctx, ref.CompanyID)
	require.NoError(t, err)
	require.Equal(t, "Harbour Realty", company.Name)
	require.Equal(t, "enterprise", company.Plan)
	require.True(t, company.IsEnterprise)
	require.Equal(t, ref.UserID, company.CreatedBy)

	p, err := f.principals.Load(ctx, ref.UserID)
	require.NoError(t, err)
	require.NotNil(t, p.Plan)
	require.Equal(t, "enterprise", p.Plan.Name)
	require.True(t, p.Can(domain.PermManageCompany))
	require.False(t, p.Can(domain.PermInvitePlatform))

	_, err = f.invites.Validate(ctx, token)
	require.ErrorIs(t, err, ErrExhausted)

	_, err = f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "second@harbour.test",
		Password: testPassword,
		FullName: "Second",
	})
	require.ErrorIs(t, err, ErrExhausted)
}

func TestAcceptFallsBackToCompanyHint(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:        domain.ScopePlatform,
		AssignedPlan: "starter",
		CompanyName:  "Hinted Realty",
	})
	ref, err := f.provision.Accept(context.Background(), token, domain.Credentials{
		Email:    "owner@hinted.test",
		Password: testPassword,
		FullName: "Owner",
	})
	require.NoError(t, err)

	company, err := f.store.Companies().GetCompanyByID(context.Background(), ref.CompanyID)
	require.NoError(t, err)
	require.Equal(t, "Hinted Realty", company.Name)
}

func TestAcceptPlatformRequiresCompanyName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, token := f.issue(t, platformAdmin(), IssueParams{Scope: domain.ScopePlatform, AssignedPlan: "starter"})
	_, err := f.provision.Accept(context.Background(), token, domain.Credentials{
		Email:    "owner@nameless.test",
		Password: testPassword,
		FullName: "Owner",
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAcceptAssignsInvitationRole(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme Realty", "pro")

	_, token := f.issue(t, companyAdmin(acme.ID), IssueParams{
		Scope:     domain.ScopeTeam,
		Role:      domain.RoleTenant,
		CompanyID: acme.ID,
	})

	ref, err := f.provision.Accept(ctx, token, domain.Credentials{
		Email:       "tenant@acme.test",
		Password:    testPassword,
		FullName:    "Terry Tenant",
		CompanyName: "Takeover Inc",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleTenant, ref.Role)
	require.Equal(t, acme.ID, ref.CompanyID)

	profile, err := f.store.Profiles().GetProfileByID(ctx, ref.UserID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTenant, profile.Role)
	require.Equal(t, acme.ID, profile.CompanyID)

	company, err := f.store.Companies().GetCompanyByID(ctx, acme.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Realty", company.Name)

	p, err := f.principals.Load(ctx, ref.UserID)
	require.NoError(t, err)
	require.Empty(t, p.Permissions)
}

func TestAcceptEmailLockLeavesNoArtifacts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme Realty", "pro")

	inv, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:     domain.ScopeTeam,
		Role:      domain.RoleAgent,
		CompanyID: acme.ID,
		Email:     "alex@acme.test",
	})

	_, err := f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "mallory@evil.test",
		Password: testPassword,
		FullName: "Mallory",
	})
	require.ErrorIs(t, err, ErrEmailLocked)

	_, err = f.store.Identities().GetIdentityByEmail(ctx, "mallory@evil.test")
	require.ErrorIs(t, err, store.ErrNotFound)

	stored, err := f.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.UseCount)
	require.Equal(t, domain.StatusActive, stored.Status)

	// The lock is case-insensitive.
	_, err = f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "ALEX@acme.test",
		Password: testPassword,
		FullName: "Alex",
	})
	require.NoError(t, err)
}

func TestAcceptCredentialErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme Realty", "pro")

	inv, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:     domain.ScopeCompanyJoin,
		Role:      domain.RoleTenant,
		CompanyID: acme.ID,
		MaxUses:   5,
	})

	_, err := f.provision.Accept(ctx, token, domain.Credentials{Email: "a@acme.test", Password: "short", FullName: "A"})
	require.ErrorIs(t, err, ErrWeakCredential)

	_, err = f.provision.Accept(ctx, token, domain.Credentials{Email: "nope", Password: testPassword, FullName: "A"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.provision.Accept(ctx, token, domain.Credentials{Email: "a@acme.test", Password: testPassword, FullName: "  "})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.provision.Accept(ctx, token, domain.Credentials{Email: "a@acme.test", Password: testPassword, FullName: "A"})
	require.NoError(t, err)

	_, err = f.provision.Accept(ctx, token, domain.Credentials{Email: "A@ACME.test", Password: testPassword, FullName: "A again"})
	require.ErrorIs(t, err, ErrAccountExists)

	stored, err := f.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.UseCount, "failed attempts do not consume uses")
}

func TestAcceptConcurrentRedemptions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme Realty", "pro")

	const maxUses, attempts = 3, 8
	inv, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:     domain.ScopeCompanyJoin,
		Role:      domain.RoleTenant,
		CompanyID: acme.ID,
		MaxUses:   maxUses,
	})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		errs      []error
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.provision.Accept(ctx, token, domain.Credentials{
				Email:    fmt.Sprintf("tenant%d@acme.test", i),
				Password: testPassword,
				FullName: fmt.Sprintf("Tenant %d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	require.Equal(t, maxUses, succeeded)
	require.Len(t, errs, attempts-maxUses)
	for _, err := range errs {
		require.ErrorIs(t, err, ErrExhausted)
	}

	stored, err := f.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, maxUses, stored.UseCount)

	profiles, err := f.store.Profiles().ListProfilesByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, profiles, maxUses)
}

// racingStore revokes the invitation just before the provisioning
// transaction starts, as a concurrent admin would.
type racingStore struct {
	store.Store
	before func()
}

func (s racingStore) WithTx(ctx context.Context, fn func(store.Tx) error) error {
	s.before()
	return s.Store.WithTx(ctx, fn)
}

func TestAcceptLostRaceIsReclassified(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	acme := f.seedCompany(t, "Acme Realty", "pro")

	inv, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:     domain.ScopeTeam,
		Role:      domain.RoleAgent,
		CompanyID: acme.ID,
	})

	f.provision.Store = racingStore{
		Store: f.store,
		before: func() {
			require.NoError(t, f.store.Invitations().RevokeInvitation(ctx, inv.ID, f.clock.Now()))
		},
	}

	_, err := f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "late@acme.test",
		Password: testPassword,
		FullName: "Late",
	})
	require.ErrorIs(t, err, ErrRevoked)

	_, err = f.store.Identities().GetIdentityByEmail(ctx, "late@acme.test")
	require.ErrorIs(t, err, store.ErrNotFound, "identity is compensated")
}

func TestAcceptCompensatesOnFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	inv, token := f.issue(t, platformAdmin(), IssueParams{
		Scope:        domain.ScopePlatform,
		AssignedPlan: "pro",
		CompanyName:  "Broken Realty",
	})
	f.provision.Store = failingTxStore{Store: f.store, err: errors.New("disk I/O error")}

	_, err := f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "owner@broken.test",
		Password: testPassword,
		FullName: "Owner",
	})
	require.ErrorIs(t, err, ErrProvisioningFailed)
	require.NotContains(t, err.Error(), "disk")

	_, err = f.store.Identities().GetIdentityByEmail(ctx, "owner@broken.test")
	require.ErrorIs(t, err, store.ErrNotFound)

	stored, err := f.store.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.UseCount)

	// A retry once the store recovers succeeds.
	f.provision.Store = f.store
	_, err = f.provision.Accept(ctx, token, domain.Credentials{
		Email:    "owner@broken.test",
		Password: testPassword,
		FullName: "Owner",
	})
	require.NoError(t, err)
}

func TestAcceptInvalidInvitation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.provision.Accept(context.Background(), "missing", domain.Credentials{
		Email:    "x@y.test",
		Password: testPassword,
		FullName: "X",
	})
	require.ErrorIs(t, err, ErrNotFound)
}
