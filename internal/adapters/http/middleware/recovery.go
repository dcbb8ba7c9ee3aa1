package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
)

// Recovery turns a handler panic into a logged stack trace and a generic
// 500 problem. Nothing is written when the handler already started its
// response.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newRecorder(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.ErrorContext(r.Context(), "handler panicked",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.committed() {
					_ = dto.NewProblem(r, http.StatusInternalServerError, "internal server error").Write(rec)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
