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

	httpapi "github.com/aussiebroadwan/clientdesk/internal/clientdesk/http"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/service"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store/drivers/postgres"
	"github.com/aussiebroadwan/clientdesk/internal/clientdesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/clientdesk/pkg/cryptox"
	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
	"github.com/aussiebroadwan/clientdesk/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "clientdesk"
)

// Application encapsulates the clientdesk service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	redis  *redis.Client // nil unless REDIS_URL is set
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	tokenService  *service.TokenService
	clientService *service.ClientService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
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

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initRedis(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("clientdesk starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"shared_ratelimit", app.redis != nil,
	)

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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down clientdesk...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clientdesk stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initSigner builds the session token signer. Without JWT_SECRET (dev only,
// enforced by Config.Validate) a random secret is generated.
func (app *Application) initSigner() error {
	secret := app.cfg.JWTSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate ephemeral jwt secret: %w", err)
		}
		secret = generated
		app.logger.Warn("JWT_SECRET not set, using an ephemeral secret; sessions end on restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to initialize jwt signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), jwtx.VerifyOptions{
		Issuer: app.cfg.JWTIssuer,
		Leeway: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize jwt verifier: %w", err)
	}

	app.signer = signer
	app.verifier = verifier
	return nil
}

// initRedis connects the shared rate limiter backend when configured
func (app *Application) initRedis(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	app.redis = client
	app.logger.Info("shared rate limiting enabled")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer: app.signer,
		Issuer: app.cfg.JWTIssuer,
		TTL:    app.cfg.JWTExpiry.Duration(),
	}
	app.clientService = &service.ClientService{
		Store:  app.db,
		Tokens: app.tokenService,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	trusted, err := app.cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.ClientService = app.clientService
	router.StrictLimit = app.cfg.StrictLimit
	router.LenientLimit = app.cfg.LenientLimit
	if len(trusted) > 0 {
		router.ClientIP = httpx.TrustedProxyIPKeyExtractor(trusted)
	}
	if app.redis != nil {
		router.Limiters = httpx.RedisLimiters(app.redis, serviceName)
		router.LimiterPing = func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
