package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	usersserver "github.com/Apurer/shop-users-api/go"

	usermail "github.com/Apurer/shop-users-api/internal/domains/users/adapters/mail"
	usermemory "github.com/Apurer/shop-users-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/shop-users-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/shop-users-api/internal/domains/users/adapters/persistence/postgres"
	userworkflows "github.com/Apurer/shop-users-api/internal/domains/users/adapters/workflows"
	userapp "github.com/Apurer/shop-users-api/internal/domains/users/application"
	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/shop-users-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/shop-users-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/shop-users-api/internal/platform/temporal"
	"github.com/Apurer/shop-users-api/internal/shared/links"
)

const serviceName = "shop-users-api"

// Run boots the users HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	builder, err := links.NewBuilder(cfg.PublicBaseURL, cfg.APIPrefix)
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, platformpostgres.PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}, logger)
	defer cleanupDB()
	repo, err := buildUserRepository(db, logger)
	if err != nil {
		return err
	}

	notifier, closeNotifier := buildActivationNotifier(cfg, instruments)
	defer closeNotifier()

	coreService := userapp.NewService(repo,
		userapp.WithActivationNotifier(notifier, builder),
		userapp.WithLogger(logger),
	)
	userService := userobs.New(
		coreService,
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	handlers := usersserver.ApiHandleFunctions{
		UserAPI: usersserver.NewUserAPI(userService, builder),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := usersserver.NewRouterWithGinEngine(engine, handlers, builder.Prefix())

	return serve(ctx, cfg, router, logger)
}

func buildUserRepository(db *gorm.DB, logger *slog.Logger) (userports.Repository, error) {
	if db == nil {
		return usermemory.NewRepository(), nil
	}
	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to migrate users schema: %w", err)
	}
	logger.Info("user repository configured with postgres")
	return userpostgres.NewRepository(db), nil
}

func buildActivationNotifier(cfg Config, instruments *platformobservability.Instruments) (userports.ActivationNotifier, func()) {
	logger := instruments.Logger
	inline := userworkflows.NewInlineActivationNotifier(usermail.NewLogMailer(logger))
	temporalClient, err := platformtemporal.Dial(platformtemporal.ClientConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, sending activation mail inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return userworkflows.NewTemporalActivationNotifier(temporalClient), temporalClient.Close
}

func serve(ctx context.Context, cfg Config, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("users API listening", slog.String("addr", server.Addr), slog.String("prefix", cfg.APIPrefix))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("users API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down users API", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
