package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/martinsdigital/tapcard/internal/card/directory"
	httpapi "github.com/martinsdigital/tapcard/internal/card/http"
	"github.com/martinsdigital/tapcard/internal/card/service"
	"github.com/martinsdigital/tapcard/internal/card/store"
	"github.com/martinsdigital/tapcard/internal/card/store/drivers/sqlite"
	"github.com/martinsdigital/tapcard/pkg/sessionx"
	"github.com/martinsdigital/tapcard/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the card service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	cards    *directory.Directory
	sessions *sessionx.Manager

	// Services
	cardService    *service.CardService
	trackService   *service.TrackService
	contactService *service.ContactService
	adminService   *service.AdminService
	statsService   *service.StatsService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "tapcard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// The cards document is required: refuse to start without it.
	cards, err := directory.New(cfg.CardsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cards directory: %w", err)
	}
	app.cards = cards

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.importLegacyCounters(); err != nil {
		// A bad legacy document must not keep the service down; the old
		// data stays untouched on disk for manual inspection.
		app.logger.Warn("legacy counters import skipped", "error", err)
	}

	app.sessions = sessionx.NewManager(cfg.SessionSecret, "tapcard", cfg.SessionTTL)
	if cfg.SessionSecret == "" {
		app.logger.Warn("SESSION_SECRET not set; admin sessions will not survive restarts")
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("tapcard starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tapcard...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tapcard stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// importLegacyCounters migrates an old JSON counters document once, when
// one is configured.
func (app *Application) importLegacyCounters() error {
	if app.cfg.LegacyCountersFile == "" {
		return nil
	}

	slug, err := app.cards.DefaultSlug()
	if err != nil {
		return err
	}

	n, err := store.ImportLegacyCounters(context.Background(), app.db, app.cfg.LegacyCountersFile, slug)
	if err != nil {
		return err
	}
	if n > 0 {
		app.logger.Info("legacy counters imported",
			"file", app.cfg.LegacyCountersFile,
			"values", n,
		)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.cardService = &service.CardService{Directory: app.cards}
	app.trackService = &service.TrackService{Store: app.db}
	app.contactService = &service.ContactService{AssetsDir: app.cfg.AssetsDir}
	app.adminService = &service.AdminService{
		Store:       app.db,
		EnvPassword: app.cfg.AdminPassword,
		ResetKey:    app.cfg.AdminResetKey,
	}
	app.statsService = &service.StatsService{
		Store:     app.db,
		Directory: app.cards,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	baseURL := app.cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", app.cfg.Port)
	}

	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			BuildVersion:  BuildVersion,
			BaseURL:       baseURL,
			AssetsDir:     app.cfg.AssetsDir,
			SecureCookies: app.cfg.Env == "prod",
		},
		app.db,
		app.cards,
		app.sessions,
		app.logger,
	)

	// Wire services to router
	router.CardService = app.cardService
	router.TrackService = app.trackService
	router.ContactService = app.contactService
	router.AdminService = app.adminService
	router.StatsService = app.statsService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
