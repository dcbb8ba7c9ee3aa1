// Package listing implements the job listing query controller: the owner of
// a browse view's search, filter, sort and page state. Every edit derives one
// outbound request to the job-listing endpoint, rewrites the view's shareable
// query string and tracks the request lifecycle (loading, success, error).
//
// Only the response to the most recently issued request is ever applied.
// Each fetch carries a sequence token; a response whose token is no longer
// current is discarded, and the superseded request's context is canceled.
//
// Typical use:
//
//	c := listing.New(client, notifier, location, listing.WithLogger(logger))
//	c.Mount(ctx, r.URL.Query())
//	c.SetCategory(job.CategoryWebDevelopment)
//	_ = c.Wait(ctx)
//	view := c.Snapshot()
//	c.Unmount()
package listing

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

// MsgFetchFailed is the notification shown when a listing page cannot be
// loaded.
const MsgFetchFailed = "Could not load jobs right now. Change a filter or reload to try again."

// Fetch outcomes recorded on browse.fetch.total.
const (
	resultSuccess = "success"
	resultError   = "error"
	resultStale   = "stale"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fetch outcome logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables browse.fetch.* instruments.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithFetchTimeout bounds each listing fetch. Zero means no bound beyond the
// mount context.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.fetchTimeout = d
	}
}

// Controller owns the query state of one mounted browse view. It is safe for
// concurrent use. Notifier and Location are called without the controller's
// lock held, except Location.ReplaceQuery, which is called under it so URL
// writes keep issue order; it must not call back into the controller.
type Controller struct {
	lister       ports.JobLister
	notifier     ports.Notifier
	location     ports.Location
	logger       *slog.Logger
	metrics      *telemetry.Metrics
	fetchTimeout time.Duration

	mu         sync.Mutex
	query      job.Query
	result     job.ResultPage
	status     browse.Status
	pagesKnown bool

	mountCtx  context.Context
	mounted   bool
	unmounted bool

	seq    uint64
	cancel context.CancelFunc

	pending int
	idle    chan struct{} // closed when pending drops to zero
}

// New creates an unmounted controller with default query state. A nil
// notifier or location is replaced by a no-op.
func New(lister ports.JobLister, notifier ports.Notifier, location ports.Location, opts ...Option) *Controller {
	c := &Controller{
		lister:   lister,
		notifier: notifier,
		location: location,
		logger:   slog.New(slog.DiscardHandler),
		query:    job.DefaultQuery(),
		result:   job.EmptyResultPage(),
		status:   browse.StatusIdle,
	}
	if c.notifier == nil {
		c.notifier = discardNotifier{}
	}
	if c.location == nil {
		c.location = discardLocation{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize replaces the query state with the one encoded in params. Missing
// or unusable parameters take their default. It never fetches and has no
// effect once the controller is mounted.
func (c *Controller) Initialize(params url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return
	}
	c.query = job.ParseQuery(params)
}

// Mount initializes the state from params and issues the first fetch. ctx
// bounds every fetch made while the controller is mounted.
func (c *Controller) Mount(ctx context.Context, params url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return
	}
	c.query = job.ParseQuery(params)
	c.mountCtx = ctx
	c.mounted = true
	c.refetchLocked()
}

// Unmount cancels the in-flight fetch and discards any response that arrives
// later. Every operation after Unmount is a no-op.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted {
		return
	}
	c.unmounted = true
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// SetSearchText updates the search text, trimmed of surrounding space. It
// neither resets the page nor fetches; SubmitSearch does both.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted {
		return
	}
	c.query.Search = strings.TrimSpace(text)
}

// SubmitSearch resets the page to 1 and fetches with the current search text.
func (c *Controller) SubmitSearch() {
	c.update(func(q *job.Query) {
		q.Page = 1
	})
}

// SetCategory changes the category filter and resets the page to 1. An
// unknown category selects CategoryAll.
func (c *Controller) SetCategory(category job.Category) {
	if !category.IsValid() {
		category = job.CategoryAll
	}
	c.update(func(q *job.Query) {
		q.Category = category
		q.Page = 1
	})
}

// SetSortOrder changes the sort order and resets the page to 1. Anything but
// SortOldest selects SortNewest.
func (c *Controller) SetSortOrder(order job.SortOrder) {
	if order != job.SortOldest {
		order = job.SortNewest
	}
	c.update(func(q *job.Query) {
		q.Sort = order
		q.Page = 1
	})
}

// SetMinBudget sets or, with nil, clears the lower budget bound and resets
// the page to 1. Bounds are passed to the endpoint as given.
func (c *Controller) SetMinBudget(v *int) {
	v = cloneInt(v)
	c.update(func(q *job.Query) {
		q.MinBudget = v
		q.Page = 1
	})
}

// SetMaxBudget sets or, with nil, clears the upper budget bound and resets
// the page to 1. Bounds are passed to the endpoint as given.
func (c *Controller) SetMaxBudget(v *int) {
	v = cloneInt(v)
	c.update(func(q *job.Query) {
		q.MaxBudget = v
		q.Page = 1
	})
}

// SetPage moves to page n clamped to [1, totalPages]. The upper bound applies
// once a fetch has settled and the page count is known. Other fields are
// kept.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPageLocked(n)
}

// NextPage moves one page forward, stopping at the last known page.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPageLocked(c.query.Page + 1)
}

// PrevPage moves one page back, stopping at page 1.
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setPageLocked(c.query.Page - 1)
}

// ClearFilters resets every field to its default and fetches.
func (c *Controller) ClearFilters() {
	c.update(func(q *job.Query) {
		*q = job.DefaultQuery()
	})
}

// Query returns a copy of the current query state.
func (c *Controller) Query() job.Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cloneQuery(c.query)
}

// Snapshot returns the current view: query state, result page, status and
// the derived flags.
func (c *Controller) Snapshot() browse.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]job.Job, len(c.result.Items))
	copy(items, c.result.Items)

	return browse.View{
		Query:            cloneQuery(c.query),
		Result:           job.ResultPage{Items: items, Total: c.result.Total, TotalPages: c.result.TotalPages},
		Status:           c.status,
		URLQuery:         c.query.Encode(),
		HasActiveFilters: c.query.HasActiveFilters(),
		IsEmpty:          c.status.Settled() && len(items) == 0,
	}
}

// Wait blocks until no fetch is in flight or ctx is done. Responses that are
// discarded as stale count as returned.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) update(mutate func(*job.Query)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unmounted {
		return
	}
	mutate(&c.query)
	c.refetchLocked()
}

func (c *Controller) setPageLocked(n int) {
	if c.unmounted {
		return
	}
	totalPages := 0
	if c.pagesKnown {
		totalPages = c.result.TotalPages
	}
	c.query.Page = job.ClampPage(n, totalPages)
	c.refetchLocked()
}

// refetchLocked supersedes any in-flight fetch and issues a new one for the
// current query. Before Mount it only records the state.
func (c *Controller) refetchLocked() {
	if !c.mounted || c.unmounted {
		return
	}

	c.seq++
	token := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.mountCtx)
	c.cancel = cancel

	req := job.NewListRequest(c.query)
	c.location.ReplaceQuery(c.query.Encode())
	c.status = browse.StatusLoading

	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++

	go c.fetch(ctx, cancel, token, req)
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, token uint64, req job.ListRequest) {
	defer cancel()

	fetchCtx := ctx
	if c.fetchTimeout > 0 {
		var cancelTimeout context.CancelFunc
		fetchCtx, cancelTimeout = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancelTimeout()
	}

	start := time.Now()
	page, err := c.lister.ListJobs(fetchCtx, req)
	outcome := c.settle(token, req, page, err)
	c.record(context.WithoutCancel(ctx), outcome, start)

	switch outcome {
	case resultStale:
		c.logger.DebugContext(ctx, "discarding stale listing response",
			slog.String("query", req.Encode()),
			slog.Uint64("token", token),
		)
	case resultError:
		c.logger.WarnContext(ctx, "listing fetch failed",
			slog.String("operation", "listing.Fetch"),
			slog.String("query", req.Encode()),
			slog.Any("error", err),
		)
		c.notifier.Notify(context.WithoutCancel(ctx), ports.Notification{
			Level:   ports.LevelError,
			Message: MsgFetchFailed,
		})
	default:
		c.logger.DebugContext(ctx, "listing fetch succeeded",
			slog.String("query", req.Encode()),
			slog.Int("items", len(page.Items)),
			slog.Int("total", page.Total),
		)
	}

	c.mu.Lock()
	c.pending--
	if c.pending == 0 {
		close(c.idle)
	}
	c.mu.Unlock()
}

// settle applies a fetch result if its token is still current.
func (c *Controller) settle(token uint64, req job.ListRequest, page job.ResultPage, err error) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq || c.unmounted {
		return resultStale
	}
	c.cancel = nil
	c.pagesKnown = true

	if err != nil {
		c.result = job.EmptyResultPage()
		c.status = browse.StatusError
		return resultError
	}

	c.result = job.NewResultPage(page.Items, page.Total, page.TotalPages, req.Limit)
	c.status = browse.StatusSuccess
	return resultSuccess
}

func (c *Controller) record(ctx context.Context, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(telemetry.AttrResult.String(outcome))
	c.metrics.BrowseFetchTotal.Add(ctx, 1, attrs)
	c.metrics.BrowseFetchDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneQuery(q job.Query) job.Query {
	q.MinBudget = cloneInt(q.MinBudget)
	q.MaxBudget = cloneInt(q.MaxBudget)
	return q
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, ports.Notification) {}

type discardLocation struct{}

func (discardLocation) ReplaceQuery(string) {}
