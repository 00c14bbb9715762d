// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

// Command api is the entry point for the manga-translate HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis, or fall back to the in-process cache.
//  5. Run database migrations (idempotent).
//  6. Wire content providers, the OCR/translation bridge, and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GYCODES/manga-translate/internal/api"
	"github.com/GYCODES/manga-translate/internal/core/overlay"
	"github.com/GYCODES/manga-translate/internal/core/progress"
	"github.com/GYCODES/manga-translate/internal/core/resolve"
	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/bridge"
	"github.com/GYCODES/manga-translate/internal/platform/cache"
	"github.com/GYCODES/manga-translate/internal/platform/config"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
	"github.com/GYCODES/manga-translate/internal/platform/migration"
	pgstore "github.com/GYCODES/manga-translate/internal/platform/postgres"
	redisstore "github.com/GYCODES/manga-translate/internal/platform/redis"
	"github.com/GYCODES/manga-translate/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "manga-translate"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "manga-translate"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// appCtx bounds background routines (rate limiter cleanup, overlay view
	// registry janitor). Canceled once the server has drained.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Cache Backend ──────────────────────────────────────────────────
	// Redis when configured; otherwise resolution results are memoized
	// in-process and readiness skips the cache check.
	var resolutionCache cache.Cache
	var checkCache func() error

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		resolutionCache = cache.NewRedis(rdb, cfg.CacheTTL)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Info("cache_backend_memory", slog.Duration("ttl", cfg.CacheTTL))
		resolutionCache = cache.NewMemory(cfg.CacheTTL)
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification ─────────────────────────────────────────────
	// Verify-only: tokens are minted by the upstream account service.
	verifier, err := sec.NewVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: checkCache,
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	providers := source.Set{
		Primary: source.NewMangadex(cfg.MangadexBaseURL, cfg.ProviderRPS, log),
	}
	if cfg.MirrorBaseURL != "" {
		providers.Mirror = source.NewMirror(cfg.MirrorBaseURL, cfg.ProviderRPS, log)
	}
	if cfg.CommunityBaseURL != "" {
		providers.Community = source.NewCommunity(cfg.CommunityBaseURL, cfg.ProviderRPS, log)
	}

	resolver := resolve.NewResolver(providers, resolutionCache, log)
	resolveHandler := resolve.NewHandler(resolver)

	engine := bridge.NewPipeEngine(cfg.BridgeCommand, cfg.BridgeScript, cfg.BridgeTimeout, log)
	overlayService := overlay.NewService(appCtx, engine, overlay.DefaultClusterParams(), cfg.OverlayWorkers, log)
	overlayHandler := overlay.NewHandler(overlayService)

	progressRepository := progress.NewProgressRepository(pool)
	progressService := progress.NewService(progressRepository, cfg.ProgressDebounce, log)
	progressHandler := progress.NewHandler(progressService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Resolve:   resolveHandler,
		Overlay:   overlayHandler,
		Progress:  progressHandler,
	}

	server := api.NewServer(appCtx, cfg, log, verifier, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	// Debounced progress writes still in their window are flushed after the
	// listener drains, so no page position is lost with the process.
	progressService.Flush()

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
