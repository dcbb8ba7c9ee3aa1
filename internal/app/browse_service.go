// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/app/fanout"
	"github.com/badhon18478/Marketplace-sub000/internal/app/listing"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

// Compile-time check that BrowseService implements ports.BrowseService.
var _ ports.BrowseService = (*BrowseService)(nil)

// Default settings used when BrowseSettings fields are zero.
const (
	defaultFetchTimeout    = 10 * time.Second
	defaultCategoryWorkers = 4
)

// BrowseSettings tunes BrowseService.
type BrowseSettings struct {
	// FetchTimeout bounds each listing request.
	FetchTimeout time.Duration
	// CategoryWorkers bounds concurrent per-category count queries.
	CategoryWorkers int
}

// BrowseService implements ports.BrowseService. Each Browse call drives a
// short-lived listing.Controller: mounted from the caller's URL parameters,
// edited by the caller's actions, and unmounted once settled.
type BrowseService struct {
	lister   ports.JobLister
	settings BrowseSettings
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewBrowseService creates a BrowseService over the job-listing port. A nil
// logger is replaced by a no-op logger; nil metrics disables recording.
func NewBrowseService(lister ports.JobLister, settings BrowseSettings, metrics *telemetry.Metrics, logger *slog.Logger) *BrowseService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = defaultFetchTimeout
	}
	if settings.CategoryWorkers < 1 {
		settings.CategoryWorkers = defaultCategoryWorkers
	}
	return &BrowseService{
		lister:   lister,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
	}
}

// Browse mounts a view from params, applies actions in order and returns the
// settled view. Page navigation actions wait for the preceding fetch so the
// page count they clamp against is known. Fetch failures are reported in the
// view; only an invalid action returns an error.
func (s *BrowseService) Browse(ctx context.Context, params url.Values, actions []browse.Action) (*browse.View, error) {
	s.logger.InfoContext(ctx, "browsing jobs",
		slog.String("query", params.Encode()),
		slog.Int("actions", len(actions)),
	)

	notes := &notificationBuffer{}
	loc := &locationRecorder{}
	c := s.NewController(notes, loc)
	defer c.Unmount()

	c.Mount(ctx, params)

	for i, a := range actions {
		if navigatesPages(a.Op) {
			if err := c.Wait(ctx); err != nil {
				return nil, err
			}
		}
		if err := c.Apply(a); err != nil {
			s.logger.WarnContext(ctx, "rejected browse action",
				slog.String("operation", "Browse"),
				slog.Int("index", i),
				slog.String("op", a.Op.String()),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("action %d (%s): %w", i, a.Op, err)
		}
	}

	if err := c.Wait(ctx); err != nil {
		return nil, err
	}

	view := c.Snapshot()
	view.URLQuery = loc.Current()
	view.Notifications = notes.Messages()
	return &view, nil
}

// NewController creates an unmounted listing controller wired to this
// service's job lister, metrics and logger. Interactive front ends use it to
// keep one controller alive across many edits.
func (s *BrowseService) NewController(notifier ports.Notifier, location ports.Location) *listing.Controller {
	return listing.New(s.lister, notifier, location,
		listing.WithLogger(s.logger),
		listing.WithMetrics(s.metrics),
		listing.WithFetchTimeout(s.settings.FetchTimeout),
	)
}

// CategoryCounts queries the listing endpoint once per concrete category
// with the filters in params (page and sort are irrelevant to a count) and
// a limit of 1. A category whose query fails is reported unavailable rather
// than failing the call.
func (s *BrowseService) CategoryCounts(ctx context.Context, params url.Values) ([]browse.CategoryCount, error) {
	base := job.ParseQuery(params)
	base.Page = 1
	base.Sort = job.SortNewest

	results := fanout.Run(ctx, s.settings.CategoryWorkers, job.Categories,
		func(ctx context.Context, category job.Category) (int, error) {
			ctx, cancel := context.WithTimeout(ctx, s.settings.FetchTimeout)
			defer cancel()

			q := base
			q.Category = category
			page, err := s.lister.ListJobs(ctx, job.ListRequest{Query: q, Limit: 1})
			if err != nil {
				return 0, err
			}
			return page.Total, nil
		})

	counts := make([]browse.CategoryCount, len(job.Categories))
	for i, r := range results {
		counts[i] = browse.CategoryCount{Category: job.Categories[i]}
		if r.Err != nil {
			s.logger.WarnContext(ctx, "category count unavailable",
				slog.String("operation", "CategoryCounts"),
				slog.String("category", job.Categories[i].String()),
				slog.Any("error", r.Err),
			)
			continue
		}
		counts[i].Total = r.Value
		counts[i].Available = true
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// navigatesPages reports whether op clamps against the known page count.
func navigatesPages(op browse.Op) bool {
	switch op {
	case browse.OpSetPage, browse.OpNextPage, browse.OpPrevPage:
		return true
	default:
		return false
	}
}

// notificationBuffer collects notification messages for a single Browse call.
type notificationBuffer struct {
	mu       sync.Mutex
	messages []string
}

func (b *notificationBuffer) Notify(_ context.Context, n ports.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, n.Message)
}

func (b *notificationBuffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages...)
}

// locationRecorder keeps the last query string the controller wrote.
type locationRecorder struct {
	mu      sync.Mutex
	current string
}

func (l *locationRecorder) ReplaceQuery(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = rawQuery
}

func (l *locationRecorder) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
