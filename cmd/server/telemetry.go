package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
)

// telemetryStack holds the running OpenTelemetry providers. metrics is nil
// when telemetry is disabled; every consumer treats that as a no-op.
type telemetryStack struct {
	metrics  *telemetry.Metrics
	shutdown []func(context.Context) error
}

func startTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetryStack, error) {
	stack := &telemetryStack{}
	if !cfg.Enabled {
		return stack, nil
	}

	tp, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}
	stack.shutdown = append(stack.shutdown, tp.Shutdown)

	mp, err := telemetry.InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint)
	if err != nil {
		_ = stack.close(ctx)
		return nil, fmt.Errorf("meter: %w", err)
	}
	stack.shutdown = append(stack.shutdown, mp.Shutdown)

	if stack.metrics, err = telemetry.NewMetrics(mp, cfg.ServiceName); err != nil {
		_ = stack.close(ctx)
		return nil, fmt.Errorf("instruments: %w", err)
	}
	return stack, nil
}

// close shuts providers down in reverse start order.
func (s *telemetryStack) close(ctx context.Context) error {
	var errs []error
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, s.shutdown[i](ctx))
	}
	return errors.Join(errs...)
}

func (s *telemetryStack) flush(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.close(ctx); err != nil {
		logger.Error("flushing telemetry", slog.Any("error", err))
	}
}
