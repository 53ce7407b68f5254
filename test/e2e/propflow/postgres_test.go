//go:build e2e

package propflow_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/postgres"
	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/aussiebroadwan/propflow/pkg/idx"
)

// startPostgres runs a throwaway PostgreSQL and returns a migrated store.
func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "propflow",
				"POSTGRES_PASSWORD": "propflow",
				"POSTGRES_DB":       "propflow",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://propflow:propflow@%s:%s/propflow?sslmode=disable", host, port.Port())
	st, err := postgres.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.ApplyMigrations())
	return st
}

// TestPostgresConcurrentAccept runs the redemption race against the
// postgres driver, where acceptances really do run in parallel.
func TestPostgresConcurrentAccept(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	plans, err := service.LoadPlanCatalogue("")
	require.NoError(t, err)

	now := time.Now().UTC()
	company := domain.Company{ID: idx.New().String(), Name: "Bayside Lettings", Plan: "pro", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Companies().CreateCompany(ctx, company))

	invites := &service.InviteService{Store: st, Plans: plans, BaseURL: "https://app.propflow.test"}
	provision := &service.ProvisionService{
		Store:      st,
		Invites:    invites,
		Identities: &service.StoreIdentityProvider{Store: st, Hasher: cryptox.NewHasherWithPepper("e2e-pepper")},
	}

	actor := domain.Principal{
		IdentityID:  idx.New().String(),
		Grants:      []domain.Capability{domain.CapPlatformAdmin},
		Permissions: domain.DerivePermissions([]domain.Capability{domain.CapPlatformAdmin}, nil),
	}
	_, token, err := invites.Issue(ctx, actor, service.IssueParams{
		Scope: domain.ScopeCompanyJoin, Role: domain.RoleTenant, CompanyID: company.ID, MaxUses: 3, ExpiresInDays: 7,
	})
	require.NoError(t, err)

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = map[string]int{}
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provision.Accept(ctx, token, domain.Credentials{
				Email:    fmt.Sprintf("tenant%d@bayside.test", i),
				Password: "Bayside2026",
				FullName: "Tenant",
			})
			key := "ok"
			if err != nil {
				key = err.Error()
				if errors.Is(err, service.ErrExhausted) {
					key = "exhausted"
				}
			}
			mu.Lock()
			results[key]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, map[string]int{"ok": 3, "exhausted": attempts - 3}, results)

	inv, err := invites.Validate(ctx, token)
	require.ErrorIs(t, err, service.ErrExhausted)
	assert.Equal(t, 3, inv.UseCount)

	// Losers were compensated: only the winners kept an identity.
	var identities int
	for i := range attempts {
		if _, err := st.Identities().GetIdentityByEmail(ctx, fmt.Sprintf("tenant%d@bayside.test", i)); err == nil {
			identities++
		}
	}
	assert.Equal(t, 3, identities)
}
