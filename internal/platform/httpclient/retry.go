package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/config"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

// jitter is the maximum relative deviation applied to each delay.
const jitter = 0.25

// retryPolicy is exponential backoff with ±25% jitter. A Retry-After hint
// from the server may lengthen a delay up to maxDelay but never shortens it.
type retryPolicy struct {
	attempts   int
	baseDelay  time.Duration
	maxDelay   time.Duration
	multiplier float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   cfg.MaxAttempts,
		baseDelay:  cfg.InitialInterval,
		maxDelay:   cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
}

// delay returns the wait before retry n (n=1 is the first retry).
func (p retryPolicy) delay(n int, hint time.Duration) time.Duration {
	d := float64(p.baseDelay) * math.Pow(p.multiplier, float64(n-1))
	d = min(d, float64(p.maxDelay))
	d += d * jitter * (2*rand.Float64() - 1)
	return max(time.Duration(max(d, 0)), min(hint, p.maxDelay))
}

// send runs the attempt loop. Bodies are replayed through req.GetBody, so
// requests built with http.NewRequest and a bytes or strings reader can be
// retried.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.attempts < 1 {
		return nil, fmt.Errorf("httpclient: retry attempts must be at least 1, got %d", c.retry.attempts)
	}

	var (
		lastErr error
		hint    time.Duration
	)
	for n := range c.retry.attempts {
		if n > 0 {
			if err := c.pause(ctx, req, n, hint, lastErr); err != nil {
				return nil, err
			}
			if err := rewind(req); err != nil {
				return nil, err
			}
		}
		hint = 0

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if !retryableError(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.serviceName)
		if n == c.retry.attempts-1 {
			return resp, lastErr
		}
		hint = retryAfter(resp.Header.Get("Retry-After"), time.Now())
		discard(resp)
	}
	return nil, lastErr
}

func (c *Client) pause(ctx context.Context, req *http.Request, n int, hint time.Duration, lastErr error) error {
	d := c.retry.delay(n, hint)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", n+1),
		slog.Int("max_attempts", c.retry.attempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if req.GetBody == nil {
		return errors.New("httpclient: request body cannot be replayed for retry")
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("httpclient: replaying request body: %w", err)
	}
	req.Body = body
	return nil
}

// discard drains and closes resp so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// retryAfter parses a Retry-After value in delta-seconds or HTTP-date form.
// Missing, malformed and past values yield zero.
func retryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// retryableError is false only for cancellation and deadline errors; any
// transport failure is worth another attempt.
func retryableError(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableStatus is true for 429 and every 5xx.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
