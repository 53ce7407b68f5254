package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
)

func TestHousekeepingCleanup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	old, _ := f.issue(t, platformAdmin(), IssueParams{Scope: domain.ScopePlatform, AssignedPlan: "pro", ExpiresInDays: 1})
	f.clock.Set(f.clock.Now().Add(20 * 24 * time.Hour))
	recent, _ := f.issue(t, platformAdmin(), IssueParams{Scope: domain.ScopePlatform, AssignedPlan: "pro", ExpiresInDays: 1})

	// old expired 41 days ago, recent 20 days ago.
	f.clock.Set(f.clock.Now().Add(21 * 24 * time.Hour))

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), "", 0)
	hk.Now = f.clock.Now
	require.Equal(t, DefaultHousekeepingSchedule, hk.Schedule)
	require.Equal(t, DefaultExpiredRetention, hk.Retention)

	n, err := hk.Cleanup(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = f.store.Invitations().GetInvitationByID(ctx, old.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.store.Invitations().GetInvitationByID(ctx, recent.ID)
	require.NoError(t, err)
}

func TestHousekeepingStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), "every tuesday", time.Hour)
	require.Error(t, hk.Start())
	hk.Stop()
}
