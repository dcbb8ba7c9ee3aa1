package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
)

const tracerName = "github.com/badhon18478/Marketplace-sub000/internal/adapters/http/middleware"

// OpenTelemetry continues the caller's W3C trace in a server span and
// records request metrics. The span is named after the chi route once
// routing is done, and a concrete category filter is attached as
// job.category. A nil metrics records spans only.
func OpenTelemetry(metrics *telemetry.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := otel.Tracer(tracerName).Start(parent, "HTTP "+r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(requestAttributes(r)...),
			)
			defer span.End()

			rec := newRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			if route := chiRoute(ctx); route != "" {
				span.SetName("HTTP " + r.Method + " " + route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			status := rec.Status()
			span.SetAttributes(telemetry.AttrHTTPStatus.Int(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			if metrics != nil {
				result := "success"
				if status >= http.StatusBadRequest {
					result = "error"
				}
				attrs := metric.WithAttributes(
					telemetry.AttrHTTPMethod.String(r.Method),
					telemetry.AttrHTTPStatus.Int(status),
					telemetry.AttrResult.String(result),
				)
				metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
				metrics.ServerRequestTotal.Add(ctx, 1, attrs)
			}
		})
	}
}

func requestAttributes(r *http.Request) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(r.Method),
		attribute.String("http.url", r.URL.String()),
	}
	if c, ok := job.ParseCategory(r.URL.Query().Get(job.ParamCategory)); ok && c != job.CategoryAll {
		attrs = append(attrs, telemetry.AttrCategory.String(c.String()))
	}
	return attrs
}

// chiRoute is the matched route pattern, or "" outside a chi router.
func chiRoute(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
