package ports

import (
	"context"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

// JobLister defines the client port for the marketplace job-listing query
// endpoint. Implemented by the ACL adapter; called by the browse controller.
type JobLister interface {
	// ListJobs returns the page of jobs matching req. Any transport, status or
	// decoding failure is returned as an error; callers treat all of them
	// uniformly as "no results available right now".
	ListJobs(ctx context.Context, req job.ListRequest) (job.ResultPage, error)
}
