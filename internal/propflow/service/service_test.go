package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/aussiebroadwan/propflow/pkg/idx"
)

const testPassword = "hunter2hunter2"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []domain.Invitation
	links []string
}

func (n *recordingNotifier) NotifyInvitation(_ context.Context, inv domain.Invitation, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, inv)
	n.links = append(n.links, link)
	return nil
}

type fixture struct {
	store      *sqlite.Store
	clock      *testClock
	notifier   *recordingNotifier
	plans      *PlanCatalogue
	identities *StoreIdentityProvider
	invites    *InviteService
	provision  *ProvisionService
	principals *PrincipalService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "propflow.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	plans, err := LoadPlanCatalogue("")
	require.NoError(t, err)

	f := &fixture{
		store:    st,
		clock:    newTestClock(),
		notifier: &recordingNotifier{},
		plans:    plans,
	}
	f.identities = &StoreIdentityProvider{
		Store:  st,
		Hasher: cryptox.NewHasherWithPepper("test-pepper"),
		Now:    f.clock.Now,
	}
	f.invites = &InviteService{
		Store:    st,
		Plans:    plans,
		Notifier: f.notifier,
		BaseURL:  "https://app.propflow.test/",
		Now:      f.clock.Now,
	}
	f.provision = &ProvisionService{
		Store:      st,
		Invites:    f.invites,
		Identities: f.identities,
		Now:        f.clock.Now,
	}
	f.principals = &PrincipalService{Store: st, Plans: plans}
	return f
}

func platformAdmin() domain.Principal {
	return domain.Principal{
		IdentityID:  idx.New().String(),
		Email:       "ops@propflow.test",
		Grants:      []domain.Capability{domain.CapPlatformAdmin},
		Permissions: domain.DerivePermissions([]domain.Capability{domain.CapPlatformAdmin}, nil),
	}
}

func companyAdmin(companyID string) domain.Principal {
	profile := &domain.Profile{
		ID:        idx.New().String(),
		Role:      domain.RoleAdmin,
		CompanyID: companyID,
	}
	return domain.Principal{
		IdentityID:  profile.ID,
		Profile:     profile,
		Permissions: domain.DerivePermissions(nil, profile),
	}
}

func (f *fixture) seedCompany(t *testing.T, name, plan string) domain.Company {
	t.Helper()
	now := f.clock.Now()
	c := domain.Company{
		ID:        idx.New().String(),
		Name:      name,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Companies().CreateCompany(context.Background(), c))
	return c
}

// issue issues p, filling zero MaxUses and ExpiresInDays with 1 use and the
// default lifetime.
func (f *fixture) issue(t *testing.T, actor domain.Principal, p IssueParams) (domain.Invitation, string) {
	t.Helper()
	if p.MaxUses == 0 {
		p.MaxUses = 1
	}
	if p.ExpiresInDays == 0 {
		p.ExpiresInDays = DefaultExpiresInDays
	}
	inv, token, err := f.invites.Issue(context.Background(), actor, p)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return inv, token
}

// failingTxStore fails every transaction without running it.
type failingTxStore struct {
	store.Store
	err error
}

func (s failingTxStore) WithTx(context.Context, func(store.Tx) error) error { return s.err }
