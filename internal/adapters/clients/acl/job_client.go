package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	acljob "github.com/badhon18478/Marketplace-sub000/internal/adapters/clients/acl/job"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/httpclient"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

var (
	_ ports.JobLister     = (*JobClient)(nil)
	_ ports.HealthChecker = (*JobClient)(nil)
)

// maxListingBytes caps how much of a listing response is decoded.
const maxListingBytes = 4 << 20

// JobClient reads the marketplace job-listing endpoint. Wire payloads are
// translated by [acljob]; failures become domain errors through
// [TranslateHTTPError]. The wrapped [httpclient.Client] supplies the
// breaker, rate limit, retries and tracing.
type JobClient struct {
	http        *httpclient.Client
	listingPath string
	logger      *slog.Logger
}

// NewJobClient returns a JobClient for listingPath (e.g. "/jobs") under the
// client's base URL.
func NewJobClient(client *httpclient.Client, listingPath string, logger *slog.Logger) *JobClient {
	return &JobClient{http: client, listingPath: listingPath, logger: logger}
}

// ListJobs fetches one page from GET {listingPath}. Filters at their default
// are left out of the query; page and limit always go out.
func (c *JobClient) ListJobs(ctx context.Context, req job.ListRequest) (job.ResultPage, error) {
	query := req.Encode()

	var payload acljob.JobListResponseDTO
	if err := c.getJSON(ctx, query, &payload); err != nil {
		return job.ResultPage{}, err
	}

	page := acljob.ToResultPage(payload, req.Limit)
	c.logger.DebugContext(ctx, "listing page fetched",
		slog.String("query", query),
		slog.Int("items", len(page.Items)),
		slog.Int("total", page.Total),
		slog.Int("total_pages", page.TotalPages),
	)
	return page, nil
}

func (c *JobClient) getJSON(ctx context.Context, rawQuery string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.http.URL(c.listingPath, rawQuery), http.NoBody)
	if err != nil {
		return fmt.Errorf("building listing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if resp != nil {
		defer c.close(ctx, resp)
	}
	switch {
	case resp != nil && resp.StatusCode != http.StatusOK:
		// Exhausted retries hand back the last response alongside the error.
		c.logger.WarnContext(ctx, "listing endpoint refused request",
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
		)
		return TranslateHTTPError(resp)
	case err != nil:
		// A superseded fetch is canceled on purpose and is not worth an error line.
		if ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "listing request failed",
				slog.String("url", req.URL.String()),
				slog.String("breaker", c.http.CircuitBreakerState()),
				slog.Any("error", err),
			)
		}
		return fmt.Errorf("GET %s: %w", req.URL.Path, err)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListingBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decoding listing response: %w", err)
	}
	return nil
}

func (c *JobClient) close(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "closing listing response", slog.Any("error", err))
	}
}

// ListingURL is the absolute listing endpoint URL without a query.
func (c *JobClient) ListingURL() string {
	return c.http.URL(c.listingPath, "")
}

// Name is the health-check name, shared with the client's spans and
// metrics.
func (c *JobClient) Name() string {
	return c.http.Name()
}

// HealthCheck reports the breaker state of the listing endpoint without a
// network call. A failing endpoint does not stop the browse view from
// rendering; it renders empty with a notification.
func (c *JobClient) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
