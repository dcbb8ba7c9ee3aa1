package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

// Logging attaches a request-scoped logger carrying the request and
// correlation IDs (see logging.FromContext) and logs each request twice:
// on arrival with its redacted query, and on completion with status, size
// and duration. Headers are logged, redacted, at debug level.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			log := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, log)
			route := []any{slog.String("method", r.Method), slog.String("path", r.URL.Path)}

			log.InfoContext(ctx, "request started", append(route, slog.String("query", RedactQuery(r.URL.Query())))...)
			if log.Enabled(ctx, slog.LevelDebug) {
				log.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			rec := newRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			log.InfoContext(ctx, "request completed", append(route,
				slog.Int("status", rec.Status()),
				slog.Int64("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			)...)
		})
	}
}
