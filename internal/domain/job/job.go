// Package job holds the job-listing domain: the Job entity, the enumerations
// used to filter and sort listings, the browse QueryState and the ResultPage
// returned by the listing endpoint.
package job

import "time"

// PageSize is the fixed number of jobs requested per listing page.
const PageSize = 8

// Job is a single marketplace job posting as shown in the listing.
type Job struct {
	ID          string
	Title       string
	Category    Category
	Description string
	Budget      int
	Deadline    time.Time
	PostedBy    string
	CreatedAt   time.Time
}
