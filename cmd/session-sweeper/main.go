package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gamevault/storefront-backend/internal/cron"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/pkg/config"
	"github.com/gamevault/storefront-backend/pkg/instance"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
	"github.com/gamevault/storefront-backend/pkg/migrate"
	"github.com/gamevault/storefront-backend/pkg/redis"
)

const lockNameFormat = "session-sweeper:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "session-sweeper"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "session-sweeper",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"storage":  cfg.Storage.NormalizedBackend(),
		"instance": instance.ID(),
	})

	backend, closeBackend, err := storage.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	sqlBackend, ok := backend.(*storage.SQLBackend)
	if !ok {
		// Redis expires sessions itself and memory sessions die with the process.
		logg.Info(ctx, "storage backend needs no sweeping; exiting")
		return
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, sqlBackend.Client()); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	lock, closeLock, err := buildLock(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to create sweeper lock", err)
		os.Exit(1)
	}
	defer closeLock()

	registry := prometheus.NewRegistry()
	jobMetrics := metrics.NewJobMetrics(registry)
	go serveMetrics(ctx, cfg, logg, registry)

	sweep, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{
		Logger:  logg,
		Purger:  sqlBackend,
		Metrics: jobMetrics,
		TTL:     cfg.Storage.SessionTTL,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session sweep job", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweep),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Sweeper.Interval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create sweeper service", err)
		os.Exit(1)
	}

	logg.Info(ctx, "starting session sweeper")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "session sweeper stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "session sweeper shutting down gracefully")
}

// buildLock uses Redis when one is configured so several sweepers can share
// a database; otherwise it falls back to an in-process lock.
func buildLock(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cron.Lock, func(), error) {
	if cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return &cron.LocalLock{}, func() {}, nil
	}
	client, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}
	env := cfg.App.Env
	if env == "" {
		env = "local"
	}
	lock, err := cron.NewRedisLock(client, client.LockKey(fmt.Sprintf(lockNameFormat, env)), cfg.Sweeper.Interval)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return lock, closeFn, nil
}

func serveMetrics(ctx context.Context, cfg *config.Config, logg *logger.Logger, gatherer prometheus.Gatherer) {
	server := &http.Server{Addr: ":" + cfg.App.Port, Handler: metrics.Handler(gatherer)}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.WithoutCancel(ctx))
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "metrics server stopped", err)
	}
}
