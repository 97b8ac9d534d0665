package main

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

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/handler"
	"github.com/pushpak1497/swift/internal/infrastructure/logger"
	mongoclient "github.com/pushpak1497/swift/internal/infrastructure/mongo"
	"github.com/pushpak1497/swift/internal/infrastructure/redis"
	"github.com/pushpak1497/swift/internal/infrastructure/upstream"
	"github.com/pushpak1497/swift/internal/observability/audit"
	"github.com/pushpak1497/swift/internal/observability/tracing"
	"github.com/pushpak1497/swift/internal/reliability/retry"
	"github.com/pushpak1497/swift/internal/repository"
	"github.com/pushpak1497/swift/internal/service"
	"github.com/pushpak1497/swift/pkg/config"
	"github.com/pushpak1497/swift/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting swift server",
		slog.String("environment", cfg.Environment),
		slog.String("store", cfg.StoreDriver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing
	shutdownTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, "swift", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect the store
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Initialize services
	source := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	importService := service.NewImportService(store, source, log)
	userService := service.NewUserService(store, log)

	// 6. Setup HTTP routes
	router := handler.NewRouter(handler.Dependencies{
		ImportService: importService,
		UserService:   userService,
		Audit:         audit.NewLogger(log),
		Logger:        log,
	})
	admin := handler.NewAdminRouter(handler.NewHealthHandler(store, log))

	// 7. Start HTTP servers. No write timeout: /load runs as long as the
	// upstream walk takes.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	adminServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AdminPort),
		Handler:      admin,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 2)
	for _, srv := range []*http.Server{server, adminServer} {
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("%s: %w", srv.Addr, err)
			}
		}(srv)
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.Int("admin_port", cfg.AdminPort),
		slog.String("upstream", cfg.UpstreamBaseURL),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChan:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", slog.String("error", err.Error()))
		exitCode = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("failed to close store", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to flush traces", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
	os.Exit(exitCode)
}

// openStore connects the configured backend, retrying while it comes up
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.Store, error) {
	retryCfg := retry.DefaultConfig(cfg.StoreConnectAttempts)

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := retry.Do(ctx, retryCfg, log, "mongo connect", func(ctx context.Context) (*mongoclient.Client, error) {
			return mongoclient.NewClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
		})
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(client, log), nil

	case config.DriverPostgres:
		pool, err := retry.Do(ctx, retryCfg, log, "postgres connect", func(ctx context.Context) (*database.ConnectionPool, error) {
			return database.NewConnectionPool(ctx, database.FromAppConfig(cfg.Postgres), log)
		})
		if err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(pool, log)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
		return store, nil

	case config.DriverRedis:
		client, err := retry.Do(ctx, retryCfg, log, "redis connect", func(context.Context) (*redis.Client, error) {
			return redis.NewClient(cfg.RedisURL)
		})
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client, log), nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(log), nil
	}
}
