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

	"github.com/oatfile/filedrop/internal/filedrop/blob"
	httpapi "github.com/oatfile/filedrop/internal/filedrop/http"
	"github.com/oatfile/filedrop/internal/filedrop/service"
	"github.com/oatfile/filedrop/internal/filedrop/store"
	"github.com/oatfile/filedrop/internal/filedrop/store/drivers/sqlite"
	"github.com/oatfile/filedrop/internal/filedrop/store/seed"
	"github.com/oatfile/filedrop/pkg/cryptox"
	"github.com/oatfile/filedrop/pkg/jwtx"
	"github.com/oatfile/filedrop/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the filedrop service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	catalog store.Catalog
	users   *seed.Store
	blobs   *blob.Store

	// Services
	authService *service.AuthService
	fileService *service.FileService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "filedrop",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initCatalog(); err != nil {
		return nil, err
	}

	if err := app.initUsers(); err != nil {
		_ = app.catalog.Close()
		return nil, err
	}

	blobs, err := blob.NewStore(app.cfg.ContentRoot)
	if err != nil {
		_ = app.catalog.Close()
		return nil, err
	}
	app.blobs = blobs

	signer, verifier, err := app.initTokenKeys()
	if err != nil {
		_ = app.catalog.Close()
		return nil, err
	}

	app.initServices(signer)
	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("filedrop service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"users", app.users.Len(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

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
	app.logger.Info("shutting down filedrop service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.catalog.Close(); err != nil {
		app.logger.Error("error closing catalog database", "error", err)
		return err
	}

	app.logger.Info("filedrop service stopped")
	return nil
}

// initCatalog opens the catalog database and applies migrations.
func (app *Application) initCatalog() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	catalog, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog database: %w", err)
	}
	app.catalog = catalog

	if err := catalog.ApplyMigrations(); err != nil {
		_ = catalog.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initUsers loads the credential set, either from the configured YAML file
// or the built-in development users.
func (app *Application) initUsers() error {
	if app.cfg.UsersFile != "" {
		users, err := seed.LoadFile(app.cfg.UsersFile)
		if err != nil {
			return fmt.Errorf("failed to load users file: %w", err)
		}
		app.users = users
		app.logger.Info("loaded seed users", "file", app.cfg.UsersFile, "count", users.Len())
		return nil
	}

	users, err := seed.DevSeed()
	if err != nil {
		return fmt.Errorf("failed to build dev users: %w", err)
	}
	app.users = users
	app.logger.Warn("no users file configured, using built-in development users")
	return nil
}

// initTokenKeys builds the HS256 signer/verifier pair. Without a configured
// secret a random one is generated; tokens then stop verifying across
// restarts.
func (app *Application) initTokenKeys() (jwtx.Signer, jwtx.Verifier, error) {
	secret := []byte(app.cfg.TokenSecret)
	if len(secret) == 0 {
		secret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
		app.logger.Warn("no token secret configured, using an ephemeral secret")
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier := jwtx.NewVerifierHS256(secret, app.cfg.Issuer)

	return signer, verifier, nil
}

// initServices initializes all business logic services.
func (app *Application) initServices(signer jwtx.Signer) {
	app.authService = &service.AuthService{
		Users:     app.users,
		Signer:    signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTTL,
	}
	app.fileService = &service.FileService{
		Blobs:   app.blobs,
		Catalog: app.catalog,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP(verifier jwtx.Verifier) {
	router := httpapi.NewRouter(verifier, BuildVersion, app.catalog, app.logger)
	router.AuthService = app.authService
	router.FileService = app.fileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
