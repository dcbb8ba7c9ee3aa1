package listing_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/badhon18478/Marketplace-sub000/internal/app/listing"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

var errTransport = errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

// fakeLister records every request and answers through respond. The default
// answer is a three-page result whose single item is titled after the
// request, so tests can tell which response was applied.
type fakeLister struct {
	mu       sync.Mutex
	requests []job.ListRequest
	respond  func(ctx context.Context, req job.ListRequest) (job.ResultPage, error)
}

func (f *fakeLister) ListJobs(ctx context.Context, req job.ListRequest) (job.ResultPage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		return respond(ctx, req)
	}
	return pageFor(req, 20), nil
}

func (f *fakeLister) Requests() []job.ListRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]job.ListRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest is the request that reached the lister last. Fetches run on
// their own goroutines, so only use it when each fetch was waited for.
func (f *fakeLister) LastRequest(t *testing.T) job.ListRequest {
	t.Helper()

	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatal("no listing request was issued")
	}
	return reqs[len(reqs)-1]
}

// pageFor returns one item titled with the request's query string.
func pageFor(req job.ListRequest, total int) job.ResultPage {
	return job.ResultPage{
		Items:      []job.Job{{ID: strconv.Itoa(req.Page), Title: req.Encode()}},
		Total:      total,
		TotalPages: (total + job.PageSize - 1) / job.PageSize,
	}
}

// appliedRequest is the encoded request whose response the controller
// applied, read back from the title pageFor gives the item.
func appliedRequest(t *testing.T, c *listing.Controller) string {
	t.Helper()

	items := c.Snapshot().Result.Items
	if len(items) != 1 {
		t.Fatalf("applied result has %d items, want 1", len(items))
	}
	return items[0].Title
}

// recordingLocation keeps every query string written to it.
type recordingLocation struct {
	mu     sync.Mutex
	writes []string
}

func (l *recordingLocation) ReplaceQuery(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writes = append(l.writes, rawQuery)
}

func (l *recordingLocation) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.writes) == 0 {
		return ""
	}
	return l.writes[len(l.writes)-1]
}

// mockNotifier is a testify mock of ports.Notifier.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

func intPtr(v int) *int { return &v }

// fetchTotals sums browse.fetch.total data points by result attribute.
func fetchTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect error = %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "browse.fetch.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("browse.fetch.total data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				result, _ := dp.Attributes.Value("result")
				totals[result.AsString()] += dp.Value
			}
		}
	}
	return totals
}
