package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aussiebroadwan/propflow/internal/propflow/store"
)

// Housekeeping defaults.
const (
	DefaultHousekeepingSchedule = "@hourly"
	DefaultExpiredRetention     = 30 * 24 * time.Hour
)

// HousekeepingService purges invitations that expired longer ago than the
// retention window. Recently expired links stay so lookups can still say
// "expired" rather than "not found".
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Schedule  string
	Retention time.Duration
	Now       func() time.Time

	cron *cron.Cron
}

// NewHousekeepingService fills in defaults for an empty schedule or a
// non-positive retention.
func NewHousekeepingService(st store.Store, logger *slog.Logger, schedule string, retention time.Duration) *HousekeepingService {
	if schedule == "" {
		schedule = DefaultHousekeepingSchedule
	}
	if retention <= 0 {
		retention = DefaultExpiredRetention
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Schedule:  schedule,
		Retention: retention,
	}
}

// Start registers the cleanup job and starts the scheduler. It runs one
// cleanup immediately.
func (s *HousekeepingService) Start() error {
	s.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := s.cron.AddFunc(s.Schedule, s.run); err != nil {
		return fmt.Errorf("register housekeeping job %q: %w", s.Schedule, err)
	}
	s.cron.Start()
	s.Logger.Info("housekeeping service started",
		slog.String("schedule", s.Schedule),
		slog.Duration("retention", s.Retention),
	)

	go s.run()
	return nil
}

// Stop waits for a running cleanup to finish.
func (s *HousekeepingService) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, _ = s.Cleanup(ctx)
}

// Cleanup deletes invitations whose expiry is older than the retention
// window and returns how many were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) (int64, error) {
	cutoff := clock(s.Now).Add(-s.Retention)

	n, err := s.Store.Invitations().DeleteExpiredInvitations(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to purge expired invitations", slog.Any("error", err))
		return 0, err
	}
	if n > 0 {
		s.Logger.Info("purged expired invitations",
			slog.Int64("count", n),
			slog.Time("cutoff", cutoff),
		)
	}
	return n, nil
}
