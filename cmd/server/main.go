// Package main runs the job browsing HTTP service: it loads the profile
// configuration, builds the dependency graph and serves until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/clients/acl"
	adapthttp "github.com/badhon18478/Marketplace-sub000/internal/adapters/http"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

const (
	drainTimeout = 15 * time.Second
	flushTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jobs-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile, ok := os.LookupEnv("APP_PROFILE")
	if !ok || profile == "" {
		return errors.New("APP_PROFILE must name a config profile (local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stack, err := startTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer stack.flush(logger)

	injector := wire(cfg, logger, stack.metrics)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}
	jobs := do.MustInvoke[*acl.JobClient](injector)
	do.MustInvoke[ports.HealthRegistry](injector).Register(jobs)

	logger.Info("job browsing service configured",
		slog.String("profile", profile),
		slog.String("listing_url", jobs.ListingURL()),
		slog.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	return serve(ctx, server, logger)
}

// serve blocks until ctx is canceled or the listener fails, then drains
// in-flight requests.
func serve(ctx context.Context, server *adapthttp.Server, logger *slog.Logger) error {
	failed := make(chan error, 1)
	go func() { failed <- server.Start() }()

	select {
	case err := <-failed:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown requested")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("draining requests", slog.Any("error", err))
	}
	<-failed

	logger.Info("shutdown complete")
	return nil
}
