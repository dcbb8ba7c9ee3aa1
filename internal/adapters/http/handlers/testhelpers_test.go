package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
	"github.com/badhon18478/Marketplace-sub000/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

// mockBrowseService is a testify mock of ports.BrowseService.
type mockBrowseService struct {
	mock.Mock
}

var _ ports.BrowseService = (*mockBrowseService)(nil)

func newMockBrowseService(t *testing.T) *mockBrowseService {
	t.Helper()
	m := &mockBrowseService{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockBrowseService) Browse(ctx context.Context, params url.Values, actions []browse.Action) (*browse.View, error) {
	args := m.Called(ctx, params, actions)
	view, _ := args.Get(0).(*browse.View)
	return view, args.Error(1)
}

func (m *mockBrowseService) CategoryCounts(ctx context.Context, params url.Values) ([]browse.CategoryCount, error) {
	args := m.Called(ctx, params)
	counts, _ := args.Get(0).([]browse.CategoryCount)
	return counts, args.Error(1)
}

// mockHealthRegistry is a testify mock of ports.HealthRegistry.
type mockHealthRegistry struct {
	mock.Mock
}

var _ ports.HealthRegistry = (*mockHealthRegistry)(nil)

func newMockHealthRegistry(t *testing.T) *mockHealthRegistry {
	t.Helper()
	m := &mockHealthRegistry{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockHealthRegistry) Register(checker ports.HealthChecker) {
	m.Called(checker)
}

func (m *mockHealthRegistry) CheckAll(ctx context.Context) map[string]error {
	args := m.Called(ctx)
	results, _ := args.Get(0).(map[string]error)
	return results
}

func validJob() job.Job {
	return job.Job{
		ID:          "65f1c0ffee",
		Title:       "Build a landing page",
		Category:    job.CategoryWebDevelopment,
		Description: "Responsive single page site",
		Budget:      300,
		PostedBy:    "client@example.com",
		CreatedAt:   testTime,
	}
}

func successView(q job.Query) *browse.View {
	return &browse.View{
		Query:            q,
		Result:           job.ResultPage{Items: []job.Job{validJob()}, Total: 1, TotalPages: 1},
		Status:           browse.StatusSuccess,
		URLQuery:         q.Encode(),
		HasActiveFilters: q.HasActiveFilters(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body: %s", rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
