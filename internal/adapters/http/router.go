// Package http is the inbound adapter: the chi route table for the browse
// API and the server that runs it.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/handlers"
	"github.com/badhon18478/Marketplace-sub000/internal/domain"
)

// NewRouter mounts the browse and health handlers behind mws, outermost
// first. Unknown paths and methods answer with problem details.
//
//	GET  /health/live
//	GET  /health/ready
//	GET  /api/v1/jobs/browse      view for a shareable query string
//	POST /api/v1/jobs/browse      apply edits, return the next view
//	GET  /api/v1/jobs/categories  result count per category
func NewRouter(browse *handlers.BrowseHandler, health *handlers.HealthHandler, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(mws...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, domain.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		_ = dto.NewProblem(req, http.StatusMethodNotAllowed, req.Method+" is not supported on "+req.URL.Path).Write(w)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.Liveness)
		r.Get("/ready", health.Readiness)
	})

	r.Route("/api/v1/jobs", func(r chi.Router) {
		r.Get("/browse", browse.View)
		r.Post("/browse", browse.Apply)
		r.Get("/categories", browse.CategoryCounts)
	})

	return r
}
