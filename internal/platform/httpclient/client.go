// Package httpclient is the outbound HTTP client used to reach the
// marketplace API. Every request passes through, in order:
//
//	circuit breaker → rate limiter → id headers → client span → retry loop
//
// Typical use:
//
//	client := httpclient.New(&cfg.Client, "marketplace-api", metrics, logger)
//	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, client.URL("/jobs", q), http.NoBody)
//	resp, err := client.Do(ctx, req)
//
// Inbound middleware stores request and correlation ids with WithRequestID
// and WithCorrelationID; Do copies them onto the outbound headers.
package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
)

// Client wraps net/http with the resilience and telemetry stack above.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	limiter     *rate.Limiter // nil: unlimited
	retry       retryPolicy
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New builds a Client for the downstream named serviceName. metrics may be
// nil, in which case nothing is recorded.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: serviceName,
		breaker:     newBreaker(serviceName, cfg.CircuitBreaker, logger),
		retry:       newRetryPolicy(cfg.Retry),
		metrics:     metrics,
		logger:      logger,
	}
	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	}
	return c
}

// Do sends req and returns the first non-retryable response.
//
// The caller closes resp.Body whenever resp is non-nil. When every attempt
// ended in a retryable status, Do returns the last response together with an
// error so the caller can still read the downstream problem body. A breaker
// rejection or a transport failure returns a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}

		setIDHeaders(ctx, req.Header)

		traced, done := c.traceCall(ctx, req)
		var err error
		resp, err = c.send(traced.Context(), traced)
		done(resp, err)
		return struct{}{}, err
	})

	c.record(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// URL joins the base URL, path and an encoded query. An empty query adds no
// "?".
func (c *Client) URL(path, rawQuery string) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	return u
}

// Name is the downstream service name used in spans, metrics and health.
func (c *Client) Name() string {
	return c.serviceName
}
