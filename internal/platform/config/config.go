// Package config loads the settings shared by the browse service and the
// terminal browser. Later layers win: built-in defaults, configs/base.yaml,
// configs/<profile>.yaml, then environment variables such as
// CLIENT_BASE_URL or BROWSE_LISTING_PATH.
package config

import "time"

// Config is the decoded, validated result of Load.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Browse    BrowseConfig    `koanf:"browse"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig is the inbound HTTP listener.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig selects slog level (debug..error) and format (json or text).
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig is the outbound connection to the marketplace REST API.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig shapes the jittered exponential backoff. MaxAttempts counts
// the first try.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig trips after MaxFailures consecutive failures and
// probes again after Timeout.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig throttles outbound calls; zero RequestsPerSecond means
// unlimited.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

type BrowseConfig struct {
	// ListingPath is the job-listing endpoint path relative to client.base_url.
	ListingPath string `koanf:"listing_path"`
	// FetchTimeout bounds a single listing fetch.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	// LinkBase is the public page URL that shareable query strings are
	// appended to (e.g. https://marketplace.example.com/all-jobs).
	LinkBase string `koanf:"link_base"`
	// CategoryWorkers bounds concurrent category count queries.
	CategoryWorkers int `koanf:"category_workers"`
}

// TelemetryConfig switches OpenTelemetry on. Exporter is "stdout" or
// "otlp"; Endpoint is only read for otlp.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
