package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/propflow/internal/propflow/http"
	"github.com/aussiebroadwan/propflow/internal/propflow/service"
	"github.com/aussiebroadwan/propflow/internal/propflow/store"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/postgres"
	"github.com/aussiebroadwan/propflow/internal/propflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/propflow/pkg/cryptox"
	"github.com/aussiebroadwan/propflow/pkg/jwtx"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "propflow"
)

// migrator is implemented by both store drivers.
type migrator interface {
	store.Store
	ApplyMigrations() error
}

// Application wires the onboarding service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	keyManager    *jwtx.KeyManager
	shutdownTrace func(context.Context) error

	plans               *service.PlanCatalogue
	identityProvider    *service.StoreIdentityProvider
	inviteService       *service.InviteService
	provisionService    *service.ProvisionService
	sessionService      *service.SessionService
	principalService    *service.PrincipalService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	shutdownTrace, err := setupTracing(ctx, cfg.OTelEndpoint, serviceName, BuildVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTrace = shutdownTrace

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		NumKeys:  cfg.NumKeys,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if err := app.housekeepingService.Start(); err != nil {
		return fmt.Errorf("failed to start housekeeping: %w", err)
	}

	app.logger.Info("propflow starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("db_driver", app.cfg.DBDriver),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down propflow...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slogx.Err(err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slogx.Err(err))
		}
	}

	app.housekeepingService.Stop()

	if err := app.shutdownTrace(ctx); err != nil {
		app.logger.Warn("failed to flush traces", slogx.Err(err))
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slogx.Err(err))
		return err
	}

	app.logger.Info("propflow stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db  migrator
		err error
	)
	switch app.cfg.DBDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", slog.String("driver", app.cfg.DBDriver))
	return nil
}

func (app *Application) initServices() error {
	plans, err := service.LoadPlanCatalogue(app.cfg.PlanFile)
	if err != nil {
		return fmt.Errorf("failed to load plan catalogue: %w", err)
	}
	app.plans = plans

	hasher, err := cryptox.NewHasher(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	var notifier service.InvitationNotifier = service.LogNotifier{Logger: app.logger}
	if app.cfg.SendGridAPIKey != "" {
		notifier = service.NewSendGridNotifier(app.cfg.SendGridAPIKey, app.cfg.MailFrom, app.cfg.MailFromName)
		app.logger.Info("invitation emails enabled", slog.String("provider", "sendgrid"))
	}

	app.identityProvider = &service.StoreIdentityProvider{Store: app.db, Hasher: hasher}
	app.inviteService = &service.InviteService{
		Store:    app.db,
		Plans:    plans,
		Notifier: notifier,
		BaseURL:  app.cfg.PublicBaseURL,
	}
	app.provisionService = &service.ProvisionService{
		Store:      app.db,
		Invites:    app.inviteService,
		Identities: app.identityProvider,
	}
	app.sessionService = &service.SessionService{
		Identities: app.identityProvider,
		Keys:       app.keyManager,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		TTL:        app.cfg.SessionTTL,
	}
	app.principalService = &service.PrincipalService{Store: app.db, Plans: plans}
	app.bootstrapService = &service.BootstrapService{
		Store:      app.db,
		Identities: app.identityProvider,
		Plans:      plans,
		Token:      app.cfg.BootstrapToken,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingSchedule,
		app.cfg.ExpiredRetention,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.RateLimits(),
	)

	router.InviteService = app.inviteService
	router.ProvisionService = app.provisionService
	router.SessionService = app.sessionService
	router.PrincipalService = app.principalService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
