// Package browse holds the value types of the job browsing view: the request
// lifecycle status, the settled view snapshot, textual actions and category
// counts. The controller that drives them lives in app/listing.
package browse

import (
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

// Status is the request lifecycle state of the listing view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Settled reports whether a fetch has completed (successfully or not).
func (s Status) Settled() bool {
	return s == StatusSuccess || s == StatusError
}

// View is a point-in-time snapshot of the listing view.
type View struct {
	Query            job.Query
	Result           job.ResultPage
	Status           Status
	URLQuery         string
	HasActiveFilters bool
	IsEmpty          bool
	Notifications    []string
}

// CategoryCount is the number of jobs in one category under the current
// filters. Available is false when the count could not be loaded.
type CategoryCount struct {
	Category  job.Category
	Total     int
	Available bool
}
