package main

import (
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/clients/acl"
	adapthttp "github.com/badhon18478/Marketplace-sub000/internal/adapters/http"
	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/handlers"
	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/middleware"
	"github.com/badhon18478/Marketplace-sub000/internal/app"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/health"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/httpclient"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

// listingServiceName labels the listing endpoint in spans, metrics and
// readiness output.
const listingServiceName = "marketplace-api"

// wire builds the lazy dependency graph. Nothing is constructed until the
// server is invoked.
func wire(cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) *do.RootScope {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)
	do.ProvideValue(i, metrics)

	do.Provide(i, newListingClient)
	do.Provide(i, newJobClient)
	do.Provide(i, newBrowseService)
	do.Provide(i, newHealthRegistry)
	do.Provide(i, func(i do.Injector) (*handlers.BrowseHandler, error) {
		return handlers.NewBrowseHandler(do.MustInvoke[ports.BrowseService](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})
	do.Provide(i, newRouter)
	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), do.MustInvoke[*slog.Logger](i)), nil
	})
	return i
}

func newListingClient(i do.Injector) (*httpclient.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return httpclient.New(&cfg.Client, listingServiceName,
		do.MustInvoke[*telemetry.Metrics](i), do.MustInvoke[*slog.Logger](i)), nil
}

func newJobClient(i do.Injector) (*acl.JobClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return acl.NewJobClient(do.MustInvoke[*httpclient.Client](i), cfg.Browse.ListingPath,
		do.MustInvoke[*slog.Logger](i)), nil
}

func newBrowseService(i do.Injector) (ports.BrowseService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return app.NewBrowseService(do.MustInvoke[*acl.JobClient](i), app.BrowseSettings{
		FetchTimeout:    cfg.Browse.FetchTimeout,
		CategoryWorkers: cfg.Browse.CategoryWorkers,
	}, do.MustInvoke[*telemetry.Metrics](i), do.MustInvoke[*slog.Logger](i)), nil
}

func newHealthRegistry(i do.Injector) (ports.HealthRegistry, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return health.New(health.WithCheckTimeout(cfg.Client.Timeout)), nil
}

// newRouter mounts the handlers behind the standard middleware stack.
func newRouter(i do.Injector) (nethttp.Handler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	stack := middleware.Stack(middleware.Settings{
		Logger:  do.MustInvoke[*slog.Logger](i),
		Metrics: do.MustInvoke[*telemetry.Metrics](i),
		Timeout: cfg.Server.WriteTimeout,
	})
	return adapthttp.NewRouter(
		do.MustInvoke[*handlers.BrowseHandler](i),
		do.MustInvoke[*handlers.HealthHandler](i),
		stack...,
	), nil
}
