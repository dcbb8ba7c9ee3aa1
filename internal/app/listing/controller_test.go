package listing_test

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/badhon18478/Marketplace-sub000/internal/app/listing"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/telemetry"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

const waitTimeout = 2 * time.Second

// mount creates a controller over lister, mounts it at rawQuery and waits for
// the first fetch to settle.
func mount(t *testing.T, lister ports.JobLister, loc *recordingLocation, rawQuery string, opts ...listing.Option) *listing.Controller {
	t.Helper()

	params, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)

	c := listing.New(lister, nil, loc, opts...)
	c.Mount(context.Background(), params)
	t.Cleanup(c.Unmount)
	wait(t, c)
	return c
}

func wait(t *testing.T, c *listing.Controller) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, c.Wait(ctx), "fetch did not settle")
}

func TestController_StatusBeforeMountIsIdle(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	c := listing.New(lister, nil, nil)
	c.SetCategory(job.CategoryDataEntry)

	view := c.Snapshot()
	assert.Equal(t, browse.StatusIdle, view.Status)
	assert.False(t, view.IsEmpty, "an idle view is not empty")
	assert.Empty(t, lister.Requests(), "no fetch before mount")
	assert.Equal(t, job.CategoryDataEntry, view.Query.Category)
}

func TestController_MountFetchesInitialQuery(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	loc := &recordingLocation{}
	c := mount(t, lister, loc, "category=webdevelopment&sort=asc&minBudget=100&page=2")

	require.Len(t, lister.Requests(), 1)
	assert.Equal(t, "category=WebDevelopment&limit=8&minBudget=100&page=2&sort=asc", lister.LastRequest(t).Encode())
	assert.Equal(t, "category=WebDevelopment&minBudget=100&page=2&sort=asc", loc.Current())

	view := c.Snapshot()
	assert.Equal(t, browse.StatusSuccess, view.Status)
	assert.Equal(t, 20, view.Result.Total)
	assert.Equal(t, 3, view.Result.TotalPages)
	assert.True(t, view.HasActiveFilters)
	assert.False(t, view.IsEmpty)
	assert.Equal(t, loc.Current(), view.URLQuery)
}

func TestController_InitializeThenMountUsesMountParams(t *testing.T) {
	t.Parallel()

	c := listing.New(&fakeLister{}, nil, nil)
	c.Initialize(url.Values{"search": {"logo"}})
	assert.Equal(t, "logo", c.Query().Search)

	c.Mount(context.Background(), url.Values{"page": {"4"}})
	t.Cleanup(c.Unmount)
	wait(t, c)

	c.Initialize(url.Values{"search": {"ignored"}})
	q := c.Query()
	assert.Empty(t, q.Search)
	assert.Equal(t, 4, q.Page)
}

func TestController_DefaultsProduceEmptyURL(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	loc := &recordingLocation{}
	c := mount(t, lister, loc, "")

	assert.Equal(t, "", loc.Current())
	assert.Equal(t, "limit=8&page=1", lister.LastRequest(t).Encode())
	assert.False(t, c.Snapshot().HasActiveFilters)
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		change func(*listing.Controller)
	}{
		{"category", func(c *listing.Controller) { c.SetCategory(job.CategoryTranslation) }},
		{"sort", func(c *listing.Controller) { c.SetSortOrder(job.SortOldest) }},
		{"min budget", func(c *listing.Controller) { c.SetMinBudget(intPtr(50)) }},
		{"max budget", func(c *listing.Controller) { c.SetMaxBudget(intPtr(900)) }},
		{"clear filters", func(c *listing.Controller) { c.ClearFilters() }},
		{"submit search", func(c *listing.Controller) { c.SubmitSearch() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lister := &fakeLister{}
			c := mount(t, lister, &recordingLocation{}, "search=logo&page=3")
			require.Equal(t, 3, c.Query().Page)

			tt.change(c)
			wait(t, c)

			assert.Equal(t, 1, c.Query().Page)
			assert.Equal(t, 1, lister.LastRequest(t).Page)
			assert.Len(t, lister.Requests(), 2)
		})
	}
}

func TestController_SetSearchTextKeepsPageAndDoesNotFetch(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	loc := &recordingLocation{}
	c := mount(t, lister, loc, "page=2")

	c.SetSearchText("wordpress")
	c.SetSearchText("wordpress plugin")

	q := c.Query()
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, "wordpress plugin", q.Search)
	assert.Len(t, lister.Requests(), 1, "typing must not fetch")
	assert.Equal(t, "page=2", loc.Current(), "typing must not rewrite the URL")

	c.SubmitSearch()
	wait(t, c)

	assert.Equal(t, "limit=8&page=1&search=wordpress+plugin", lister.LastRequest(t).Encode())
	assert.Equal(t, "search=wordpress+plugin", loc.Current())
}

func TestController_SearchTextIsTrimmedOnce(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	loc := &recordingLocation{}
	c := mount(t, lister, loc, "")

	c.SetSearchText("  wordpress plugin \t")
	assert.Equal(t, "wordpress plugin", c.Query().Search)

	c.SubmitSearch()
	wait(t, c)

	assert.Equal(t, "search=wordpress+plugin", loc.Current())
	assert.Equal(t, "limit=8&page=1&search=wordpress+plugin", appliedRequest(t, c))
	values, err := url.ParseQuery(loc.Current())
	require.NoError(t, err)
	assert.Equal(t, c.Query(), job.ParseQuery(values), "the URL restores the stored state")
}

func TestController_SetPageClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"in range", 2, 2},
		{"beyond last page", 9999, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lister := &fakeLister{}
			c := mount(t, lister, &recordingLocation{}, "category=DataEntry")
			require.Equal(t, 3, c.Snapshot().Result.TotalPages)

			c.SetPage(tt.n)
			wait(t, c)

			assert.Equal(t, tt.want, c.Query().Page)
			assert.Equal(t, tt.want, lister.LastRequest(t).Page)
			assert.Equal(t, job.CategoryDataEntry, c.Query().Category, "paging keeps filters")
		})
	}
}

func TestController_SetPageBeforeTotalPagesKnown(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	lister := &fakeLister{respond: func(_ context.Context, req job.ListRequest) (job.ResultPage, error) {
		<-release
		return pageFor(req, 200), nil
	}}

	c := listing.New(lister, nil, nil)
	c.Mount(context.Background(), nil)
	t.Cleanup(c.Unmount)

	c.SetPage(9999)
	assert.Equal(t, 9999, c.Query().Page, "no upper bound until the page count is known")

	c.SetPage(-1)
	assert.Equal(t, 1, c.Query().Page)

	close(release)
	wait(t, c)
}

func TestController_NextAndPrevPage(t *testing.T) {
	t.Parallel()

	c := mount(t, &fakeLister{}, &recordingLocation{}, "")

	c.PrevPage()
	wait(t, c)
	assert.Equal(t, 1, c.Query().Page)

	for range 5 {
		c.NextPage()
		wait(t, c)
	}
	assert.Equal(t, 3, c.Query().Page, "stops at the last page")

	c.PrevPage()
	wait(t, c)
	assert.Equal(t, 2, c.Query().Page)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	releaseA := make(chan struct{})
	lister := &fakeLister{respond: func(_ context.Context, req job.ListRequest) (job.ResultPage, error) {
		if req.Page == 2 {
			// A ignores cancellation and answers late.
			<-releaseA
			return job.ResultPage{Items: []job.Job{{ID: "a", Title: "stale"}}, Total: 99, TotalPages: 13}, nil
		}
		return pageFor(req, 20), nil
	}}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewMetrics(mp, "test-service")
	require.NoError(t, err)

	c := mount(t, lister, &recordingLocation{}, "", listing.WithMetrics(metrics))

	// A is issued first and answers last; B supersedes it.
	c.SetPage(2)
	c.SetCategory(job.CategoryVideoEditing)

	require.Eventually(t, func() bool {
		return c.Snapshot().Status == browse.StatusSuccess
	}, waitTimeout, 5*time.Millisecond, "B should settle while A is still in flight")

	close(releaseA)
	wait(t, c)

	view := c.Snapshot()
	require.Len(t, view.Result.Items, 1)
	assert.Equal(t, "category=VideoEditing&limit=8&page=1", view.Result.Items[0].Title)
	assert.Equal(t, 20, view.Result.Total)
	assert.Equal(t, browse.StatusSuccess, view.Status)

	totals := fetchTotals(t, reader)
	assert.Equal(t, int64(2), totals["success"])
	assert.Equal(t, int64(1), totals["stale"])
}

func TestController_SupersededRequestIsCanceled(t *testing.T) {
	t.Parallel()

	canceled := make(chan struct{})
	lister := &fakeLister{respond: func(ctx context.Context, req job.ListRequest) (job.ResultPage, error) {
		if req.Page == 2 {
			<-ctx.Done()
			close(canceled)
			return job.ResultPage{}, ctx.Err()
		}
		return pageFor(req, 20), nil
	}}
	notifier := &mockNotifier{}

	c := listing.New(lister, notifier, nil)
	c.Mount(context.Background(), nil)
	t.Cleanup(c.Unmount)
	wait(t, c)

	c.SetPage(2)
	c.SetPage(3)

	select {
	case <-canceled:
	case <-time.After(waitTimeout):
		t.Fatal("superseded request was not canceled")
	}
	wait(t, c)

	assert.Equal(t, browse.StatusSuccess, c.Snapshot().Status)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestController_FailureYieldsEmptyPageAndNotification(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{respond: func(context.Context, job.ListRequest) (job.ResultPage, error) {
		return job.ResultPage{}, errTransport
	}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, ports.Notification{
		Level:   ports.LevelError,
		Message: listing.MsgFetchFailed,
	}).Once()

	c := listing.New(lister, notifier, nil)
	c.Mount(context.Background(), url.Values{"category": {"Other"}, "page": {"2"}})
	t.Cleanup(c.Unmount)
	wait(t, c)

	view := c.Snapshot()
	assert.Equal(t, browse.StatusError, view.Status)
	assert.Equal(t, job.EmptyResultPage(), view.Result)
	assert.True(t, view.IsEmpty)
	assert.Equal(t, job.CategoryOther, view.Query.Category, "filters survive a failure")
	notifier.AssertExpectations(t)
}

func TestController_RecoversAfterFailure(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	fail := true
	lister := &fakeLister{respond: func(_ context.Context, req job.ListRequest) (job.ResultPage, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return job.ResultPage{}, errTransport
		}
		return pageFor(req, 20), nil
	}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Once()

	c := listing.New(lister, notifier, nil)
	c.Mount(context.Background(), nil)
	t.Cleanup(c.Unmount)
	wait(t, c)
	require.Equal(t, browse.StatusError, c.Snapshot().Status)

	// No automatic retry.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, lister.Requests(), 1)

	mu.Lock()
	fail = false
	mu.Unlock()

	c.SetSortOrder(job.SortOldest)
	wait(t, c)

	view := c.Snapshot()
	assert.Equal(t, browse.StatusSuccess, view.Status)
	assert.Len(t, view.Result.Items, 1)
	notifier.AssertExpectations(t)
}

func TestController_FetchTimeout(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{respond: func(ctx context.Context, _ job.ListRequest) (job.ResultPage, error) {
		<-ctx.Done()
		return job.ResultPage{}, ctx.Err()
	}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Once()

	c := listing.New(lister, notifier, nil, listing.WithFetchTimeout(20*time.Millisecond))
	c.Mount(context.Background(), nil)
	t.Cleanup(c.Unmount)
	wait(t, c)

	assert.Equal(t, browse.StatusError, c.Snapshot().Status)
	notifier.AssertExpectations(t)
}

func TestController_UnmountDiscardsInFlightResponse(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	lister := &fakeLister{respond: func(_ context.Context, req job.ListRequest) (job.ResultPage, error) {
		<-release
		return pageFor(req, 20), nil
	}}
	notifier := &mockNotifier{}

	c := listing.New(lister, notifier, nil)
	c.Mount(context.Background(), nil)
	c.Unmount()
	close(release)
	wait(t, c)

	c.SetCategory(job.CategoryOther)
	c.SetSearchText("ignored")

	view := c.Snapshot()
	assert.Equal(t, browse.StatusLoading, view.Status, "the discarded response never settles the view")
	assert.Empty(t, view.Result.Items)
	assert.Equal(t, job.CategoryAll, view.Query.Category, "setters after unmount are ignored")
	assert.Empty(t, view.Query.Search)
	assert.Len(t, lister.Requests(), 1)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	c := mount(t, &fakeLister{}, &recordingLocation{}, "minBudget=10")

	view := c.Snapshot()
	*view.Query.MinBudget = 999
	view.Result.Items[0].Title = "changed"

	again := c.Snapshot()
	assert.Equal(t, 10, *again.Query.MinBudget)
	assert.NotEqual(t, "changed", again.Result.Items[0].Title)
}

func TestController_BudgetPointerNotAliased(t *testing.T) {
	t.Parallel()

	c := mount(t, &fakeLister{}, &recordingLocation{}, "")

	v := 300
	c.SetMaxBudget(&v)
	v = 1
	wait(t, c)

	assert.Equal(t, 300, *c.Query().MaxBudget)
}

func TestController_EndToEndScenario(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	loc := &recordingLocation{}
	c := mount(t, lister, loc, "")
	require.Equal(t, 1, c.Query().Page)

	c.SetCategory(job.CategoryWebDevelopment)
	wait(t, c)
	assert.Equal(t, url.Values{"category": {"WebDevelopment"}, "page": {"1"}, "limit": {"8"}},
		lister.LastRequest(t).Values())
	assert.Equal(t, "category=WebDevelopment", loc.Current())

	c.SetPage(3)
	wait(t, c)
	assert.Equal(t, url.Values{"category": {"WebDevelopment"}, "page": {"3"}, "limit": {"8"}},
		lister.LastRequest(t).Values())
	assert.Equal(t, "category=WebDevelopment&page=3", loc.Current())

	c.ClearFilters()
	wait(t, c)
	assert.Equal(t, url.Values{"page": {"1"}, "limit": {"8"}}, lister.LastRequest(t).Values())
	assert.Equal(t, "", loc.Current())
	assert.False(t, c.Snapshot().HasActiveFilters)
}

func TestController_ConcurrentEditsApplyLatestRequest(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{respond: func(_ context.Context, req job.ListRequest) (job.ResultPage, error) {
		// Jitter so responses settle out of issue order.
		time.Sleep(time.Duration(req.Page%3) * time.Millisecond)
		return pageFor(req, 400), nil
	}}
	c := mount(t, lister, &recordingLocation{}, "")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch i % 4 {
			case 0:
				c.SetPage(i)
			case 1:
				c.SetCategory(job.Categories[i%len(job.Categories)])
			case 2:
				c.SetMinBudget(intPtr(i))
			default:
				c.NextPage()
			}
		}()
	}
	wg.Wait()
	wait(t, c)

	view := c.Snapshot()
	require.Equal(t, browse.StatusSuccess, view.Status)
	require.Len(t, view.Result.Items, 1)
	assert.Equal(t, job.NewListRequest(view.Query).Encode(), view.Result.Items[0].Title,
		"applied result must belong to the latest query")
}
