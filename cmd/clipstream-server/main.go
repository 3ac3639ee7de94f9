// Package main is the entry point for the Clipstream server, a backend for
// video metadata: accounts, ownership, visibility and likes.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prn-tf/clipstream/internal/auth"
	memorycache "github.com/prn-tf/clipstream/internal/cache/memory"
	rediscache "github.com/prn-tf/clipstream/internal/cache/redis"
	"github.com/prn-tf/clipstream/internal/config"
	"github.com/prn-tf/clipstream/internal/handler"
	"github.com/prn-tf/clipstream/internal/lock"
	"github.com/prn-tf/clipstream/internal/repository"
	"github.com/prn-tf/clipstream/internal/repository/postgres"
	"github.com/prn-tf/clipstream/internal/repository/sqlite"
	"github.com/prn-tf/clipstream/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	setupLogger(cfg.Logging)

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting Clipstream server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.Logger

	// Database
	userRepo, videoRepo, health, closeDB, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	// Cache and locking. With Redis enabled both are shared across
	// instances; otherwise they are in-process.
	var (
		videoCache repository.Cache
		locker     lock.Locker
	)
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		defer client.Close()

		videoCache = rediscache.NewCache(client)
		locker = lock.NewRedisLocker(client)
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("redis connected")
	} else {
		memCache := memorycache.NewCache()
		defer memCache.Stop()
		videoCache = memCache

		memLocker := lock.NewMemoryLocker()
		defer memLocker.Stop()
		locker = memLocker
	}

	videoRepo = repository.NewCachedVideoRepository(videoRepo, videoCache, logger)

	// Auth
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// Services
	authService := service.NewAuthService(userRepo, tokens, locker, logger)
	userService := service.NewUserService(userRepo, logger)
	videoService := service.NewVideoService(videoRepo, logger)

	// HTTP surface
	require := auth.Require(tokens)
	optional := auth.Optional(tokens)

	var metrics *handler.Metrics
	if cfg.Metrics.Enabled {
		metrics = handler.NewMetrics()
	}

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:  handler.NewAuthHandler(authService, logger),
		UserHandler:  handler.NewUserHandler(userService, require, logger),
		VideoHandler: handler.NewVideoHandler(videoService, require, optional, logger),
		Health:       health,
		Metrics:      metrics,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      http.MaxBytesHandler(router.Handler(), cfg.Server.MaxBodySize),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openDatabase opens the configured backend, runs migrations and returns
// the repositories.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.UserRepository, repository.VideoRepository, handler.HealthChecker, func(), error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		closeDB := func() { db.Close() }
		return postgres.NewUserRepository(db), postgres.NewVideoRepository(db), db, closeDB, nil

	default:
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		sqliteCfg.JournalMode = cfg.Database.JournalMode
		sqliteCfg.BusyTimeout = cfg.Database.BusyTimeout
		sqliteCfg.SynchronousMode = cfg.Database.SynchronousMode

		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close database")
			}
		}
		return sqlite.NewUserRepository(db), sqlite.NewVideoRepository(db), db, closeDB, nil
	}
}

// setupLogger configures the global zerolog logger from config.
func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = cfg.TimeFormat

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
