package ports

import "context"

// HealthChecker reports whether a dependency the service needs is usable.
// The marketplace listing client is one; so is anything wrapped in
// health.CheckFunc.
type HealthChecker interface {
	Name() string
	// HealthCheck returns nil when the dependency is usable. It must give
	// up when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs every registered checker for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll returns one entry per checker name, nil when healthy.
	CheckAll(ctx context.Context) map[string]error
}
