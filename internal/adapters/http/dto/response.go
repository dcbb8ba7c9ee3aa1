// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

// JobResponse represents a single job posting in HTTP responses.
type JobResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Budget      int    `json:"budget"`
	Deadline    string `json:"deadline,omitempty"`
	PostedBy    string `json:"posted_by,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ToJobResponse converts a domain Job to an HTTP response DTO. Zero
// timestamps are omitted.
func ToJobResponse(j *job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Category:    j.Category.String(),
		Description: j.Description,
		Budget:      j.Budget,
		Deadline:    formatTime(j.Deadline),
		PostedBy:    j.PostedBy,
		CreatedAt:   formatTime(j.CreatedAt),
	}
}

// QueryResponse is the query state of a listing view. Unset budget bounds
// are null.
type QueryResponse struct {
	Search    string `json:"search"`
	Category  string `json:"category"`
	Sort      string `json:"sort"`
	MinBudget *int   `json:"min_budget"`
	MaxBudget *int   `json:"max_budget"`
	Page      int    `json:"page"`
}

// ViewResponse represents a settled listing view in HTTP responses.
type ViewResponse struct {
	Query            QueryResponse `json:"query"`
	Jobs             []JobResponse `json:"jobs"`
	Total            int           `json:"total"`
	TotalPages       int           `json:"total_pages"`
	Status           string        `json:"status"`
	URLQuery         string        `json:"url_query"`
	HasActiveFilters bool          `json:"has_active_filters"`
	IsEmpty          bool          `json:"is_empty"`
	Notifications    []string      `json:"notifications"`
}

// ToViewResponse converts a browse view to an HTTP response DTO. Jobs and
// notifications are always arrays, never null.
func ToViewResponse(v *browse.View) ViewResponse {
	jobs := make([]JobResponse, len(v.Result.Items))
	for i := range v.Result.Items {
		jobs[i] = ToJobResponse(&v.Result.Items[i])
	}

	notes := v.Notifications
	if notes == nil {
		notes = []string{}
	}

	return ViewResponse{
		Query: QueryResponse{
			Search:    v.Query.Search,
			Category:  v.Query.Category.String(),
			Sort:      v.Query.Sort.String(),
			MinBudget: v.Query.MinBudget,
			MaxBudget: v.Query.MaxBudget,
			Page:      v.Query.Page,
		},
		Jobs:             jobs,
		Total:            v.Result.Total,
		TotalPages:       v.Result.TotalPages,
		Status:           v.Status.String(),
		URLQuery:         v.URLQuery,
		HasActiveFilters: v.HasActiveFilters,
		IsEmpty:          v.IsEmpty,
		Notifications:    notes,
	}
}

// CategoryCountResponse is the job count of one category.
type CategoryCountResponse struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Available bool   `json:"available"`
}

// CategoryCountsResponse represents the per-category counts in HTTP responses.
type CategoryCountsResponse struct {
	Categories []CategoryCountResponse `json:"categories"`
	Count      int                     `json:"count"`
}

// ToCategoryCountsResponse converts category counts to an HTTP response DTO.
func ToCategoryCountsResponse(counts []browse.CategoryCount) CategoryCountsResponse {
	items := make([]CategoryCountResponse, len(counts))
	for i, c := range counts {
		items[i] = CategoryCountResponse{
			Category:  c.Category.String(),
			Total:     c.Total,
			Available: c.Available,
		}
	}
	return CategoryCountsResponse{
		Categories: items,
		Count:      len(items),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
