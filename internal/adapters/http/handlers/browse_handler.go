package handlers

import (
	"net/http"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

// BrowseHandler handles HTTP requests for the job browsing view.
type BrowseHandler struct {
	service ports.BrowseService
}

// NewBrowseHandler creates a new BrowseHandler with the given service port.
func NewBrowseHandler(service ports.BrowseService) *BrowseHandler {
	return &BrowseHandler{service: service}
}

// View handles GET /api/v1/jobs/browse. The request's own query string is
// the view's URL query; unusable parameters fall back to their defaults.
func (h *BrowseHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Browse(r.Context(), r.URL.Query(), nil)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToViewResponse(view))
}

// Apply handles POST /api/v1/jobs/browse. The body carries the current URL
// query and the edits to replay against it; the response holds the settled
// view and the resulting shareable query string.
func (h *BrowseHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.BrowseRequest
	if !readBody(w, r, &req) {
		return
	}

	view, err := h.service.Browse(r.Context(), req.Params(), req.ToActions())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToViewResponse(view))
}

// CategoryCounts handles GET /api/v1/jobs/categories.
func (h *BrowseHandler) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CategoryCounts(r.Context(), r.URL.Query())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToCategoryCountsResponse(counts))
}
