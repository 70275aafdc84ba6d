// Package app wires configuration, storage, messaging, and HTTP together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/gr1d99/shopping-list-api-sub000/internal/auth"
	"github.com/gr1d99/shopping-list-api-sub000/internal/config"
	"github.com/gr1d99/shopping-list-api-sub000/internal/event"
	httphandler "github.com/gr1d99/shopping-list-api-sub000/internal/handler/http"
	"github.com/gr1d99/shopping-list-api-sub000/internal/repository/postgres"
	redisrepo "github.com/gr1d99/shopping-list-api-sub000/internal/repository/redis"
	"github.com/gr1d99/shopping-list-api-sub000/internal/service"
	"github.com/gr1d99/shopping-list-api-sub000/migrations"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/database"
	"github.com/gr1d99/shopping-list-api-sub000/pkg/health"
	pkgkafka "github.com/gr1d99/shopping-list-api-sub000/pkg/kafka"
)

const shutdownTimeout = 10 * time.Second

// App is the composed shopping list API service.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *goredis.Client
	producer *pkgkafka.Producer
	server   *http.Server
}

// New builds the application: it connects to PostgreSQL, Redis, and Kafka,
// runs migrations, and assembles the HTTP stack.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	listRepo := postgres.NewListRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	resetRepo := postgres.NewResetTokenRepository(pool)

	revocations := redisrepo.NewRevocationStore(redisClient, maxDuration(cfg.AccessTTL, cfg.RefreshTTL))
	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, revocations)

	hasher := auth.NewPasswordHasher()
	events := event.NewProducer(producer, logger)

	// Services
	authSvc := service.NewAuthService(userRepo, resetRepo, revocations, tokens, hasher, events, cfg.ResetTokenTTL, logger)
	listSvc := service.NewListService(listRepo, itemRepo, userRepo, hasher, logger)
	itemSvc := service.NewItemService(listRepo, itemRepo, logger)

	// HTTP
	loc := cfg.Location()
	extractor := httphandler.NewTokenExtractor(cfg.AuthHeaderScheme, cfg.AuthHeaderName)
	guard := httphandler.NewAuthMiddleware(tokens, userRepo, extractor)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	router := httphandler.NewRouter(httphandler.RouterDeps{
		Auth:   httphandler.NewAuthHandler(authSvc, loc),
		Lists:  httphandler.NewListHandler(listSvc, loc, cfg.MaxPageLimit),
		Items:  httphandler.NewItemHandler(itemSvc, loc, cfg.MaxPageLimit),
		Guard:  guard,
		Health: healthHandler,
		Logger: logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
		server:   server,
	}, nil
}

// Run serves HTTP until the context is canceled, then shuts everything down
// in reverse dependency order.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	a.close()
	return nil
}

func (a *App) close() {
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close failed", slog.String("error", err.Error()))
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close failed", slog.String("error", err.Error()))
	}
	a.pool.Close()
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
