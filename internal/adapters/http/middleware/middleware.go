// Package middleware holds the inbound HTTP pipeline of the browse API.
//
// Every middleware is a func(http.Handler) http.Handler. Stack assembles the
// standard order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → handler
//
// Request and correlation IDs are also handed to httpclient, so listing
// fetches made while serving a request carry the same headers.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
)

// Middleware wraps a handler.
type Middleware = func(http.Handler) http.Handler

// Settings configures Stack. A nil Metrics disables request metrics.
type Settings struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	Timeout time.Duration
}

// Stack returns the standard pipeline, outermost first, ready for
// chi.Router.Use.
func Stack(s Settings) []Middleware {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return []Middleware{
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(s.Metrics),
		Logging(logger),
		Timeout(s.Timeout),
	}
}

// recorder remembers the status and size of the response passing through it.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func newRecorder(w http.ResponseWriter) *recorder {
	return &recorder{ResponseWriter: w}
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status != 0 {
		return
	}
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// committed reports whether the status line has gone out.
func (rec *recorder) committed() bool {
	return rec.status != 0
}

// Status is the response status, 200 when the handler never set one.
func (rec *recorder) Status() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}
