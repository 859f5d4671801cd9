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

	httpapi "github.com/hpcstack/telemetry/internal/telemetry/http"
	"github.com/hpcstack/telemetry/internal/telemetry/service"
	"github.com/hpcstack/telemetry/internal/telemetry/store/postgres"
	"github.com/hpcstack/telemetry/pkg/jwtx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the telemetry API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	telemetryDB *postgres.Manager
	apiUserDB   *postgres.Manager
	codec       *jwtx.Codec

	authService      *service.AuthService
	telemetryService *service.TelemetryService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "telemetry-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("TELEMETRY_SECRET_KEY is required")
	}
	codec, err := jwtx.NewCodec([]byte(cfg.SecretKey), cfg.SecretAlgo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	app.telemetryDB = postgres.NewManager(cfg.TelemetryDB, app.logger)
	app.apiUserDB = postgres.NewManager(cfg.APIUserDB, app.logger)

	if cfg.Migrate {
		if err := app.apiUserDB.ApplyMigrations(); err != nil {
			return nil, fmt.Errorf("failed to apply api_user migrations: %w", err)
		}
		app.logger.Info("api_user migrations applied successfully")
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("telemetry api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down telemetry api...")

	// Give outstanding requests a deadline for completion. Connections are
	// per-operation, so once requests drain there is nothing else to close.
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
			return err
		}
	}

	app.logger.Info("telemetry api stopped")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Users:     postgres.NewUsers(app.apiUserDB),
		Codec:     app.codec,
		AccessTTL: app.cfg.TokenTTL,
	}
	app.telemetryService = &service.TelemetryService{
		DB:          app.telemetryDB,
		MaxRowLimit: app.cfg.MaxRowLimit,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.telemetryDB, app.logger)
	router.Auth = app.authService
	router.Telemetry = app.telemetryService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
