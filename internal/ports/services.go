package ports

import (
	"context"
	"net/url"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
)

// BrowseService defines the service port for the job browsing view.
// Implemented by the application layer; called by inbound adapters.
type BrowseService interface {
	// Browse mounts a view from the URL query parameters, applies the actions
	// in order and returns the settled view. Fetch failures are absorbed into
	// the view (empty page plus a notification); only invalid actions return
	// an error (domain.ErrValidation).
	Browse(ctx context.Context, params url.Values, actions []browse.Action) (*browse.View, error)

	// CategoryCounts returns, for every concrete category, the number of jobs
	// matching the current filters within that category.
	CategoryCounts(ctx context.Context, params url.Values) ([]browse.CategoryCount, error)
}
