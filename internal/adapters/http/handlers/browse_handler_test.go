package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/handlers"
	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

func newBrowseHandler(t *testing.T) (*handlers.BrowseHandler, *mockBrowseService) {
	t.Helper()
	service := newMockBrowseService(t)
	return handlers.NewBrowseHandler(service), service
}

// --- View ---

func TestView_Success(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	q := job.DefaultQuery()
	q.Category = job.CategoryWebDevelopment
	q.Page = 2
	service.On("Browse", mock.Anything,
		url.Values{"category": {"WebDevelopment"}, "page": {"2"}},
		[]browse.Action(nil),
	).Return(successView(q), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/browse?category=WebDevelopment&page=2", nil)
	h.View(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ViewResponse](t, rec)
	if resp.URLQuery != "category=WebDevelopment&page=2" {
		t.Errorf("URLQuery = %q, want %q", resp.URLQuery, "category=WebDevelopment&page=2")
	}
	if resp.Query.Page != 2 {
		t.Errorf("Query.Page = %d, want 2", resp.Query.Page)
	}
	if !resp.HasActiveFilters {
		t.Error("HasActiveFilters = false, want true")
	}
	if len(resp.Jobs) != 1 {
		t.Errorf("len(Jobs) = %d, want 1", len(resp.Jobs))
	}
}

func TestView_FailedFetchStillOK(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	service.On("Browse", mock.Anything, mock.Anything, mock.Anything).Return(&browse.View{
		Query:         job.DefaultQuery(),
		Result:        job.EmptyResultPage(),
		Status:        browse.StatusError,
		IsEmpty:       true,
		Notifications: []string{"Could not load jobs right now."},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/browse", nil)
	h.View(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ViewResponse](t, rec)
	if resp.Status != "error" {
		t.Errorf("Status = %q, want %q", resp.Status, "error")
	}
	if !resp.IsEmpty {
		t.Error("IsEmpty = false, want true")
	}
	if len(resp.Notifications) != 1 {
		t.Errorf("len(Notifications) = %d, want 1", len(resp.Notifications))
	}
}

func TestView_ServiceError(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	service.On("Browse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("context deadline exceeded"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/browse", nil)
	h.View(rec, req)

	requireStatus(t, rec, http.StatusInternalServerError)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
}

// --- Apply ---

func TestApply_Success(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	q := job.DefaultQuery()
	q.Search = "logo"
	service.On("Browse", mock.Anything,
		url.Values{"sort": {"asc"}},
		[]browse.Action{
			{Op: browse.OpSetSearch, Value: "logo"},
			{Op: browse.OpSubmitSearch},
		},
	).Return(successView(q), nil)

	body := jsonBody(t, dto.BrowseRequest{
		Query: "?sort=asc",
		Actions: []dto.ActionRequest{
			{Op: "set_search", Value: "logo"},
			{Op: "submit_search"},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/browse", body)
	h.Apply(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ViewResponse](t, rec)
	if resp.URLQuery != "search=logo" {
		t.Errorf("URLQuery = %q, want %q", resp.URLQuery, "search=logo")
	}
}

func TestApply_InvalidJSON(t *testing.T) {
	t.Parallel()
	h, _ := newBrowseHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/browse", bytes.NewBufferString("{not json"))
	h.Apply(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestApply_UnknownOp(t *testing.T) {
	t.Parallel()
	h, _ := newBrowseHandler(t)

	body := jsonBody(t, dto.BrowseRequest{Actions: []dto.ActionRequest{{Op: "jump"}}})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/browse", body)
	h.Apply(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.actions[0].op" {
		t.Errorf("Errors = %+v, want one error at body.actions[0].op", resp.Errors)
	}
}

func TestApply_InvalidActionValue(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	service.On("Browse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("minBudget", "must be a non-negative whole number"))

	body := jsonBody(t, dto.BrowseRequest{Actions: []dto.ActionRequest{{Op: "set_min_budget", Value: "cheap"}}})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/browse", body)
	h.Apply(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- CategoryCounts ---

func TestCategoryCounts_Success(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	service.On("CategoryCounts", mock.Anything, url.Values{"search": {"seo"}}).Return([]browse.CategoryCount{
		{Category: job.CategoryDigitalMarketing, Total: 4, Available: true},
		{Category: job.CategoryOther},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/categories?search=seo", nil)
	h.CategoryCounts(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.CategoryCountsResponse](t, rec)
	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if resp.Categories[0].Total != 4 || !resp.Categories[0].Available {
		t.Errorf("Categories[0] = %+v, want 4 available", resp.Categories[0])
	}
}

func TestCategoryCounts_ServiceError(t *testing.T) {
	t.Parallel()
	h, service := newBrowseHandler(t)

	service.On("CategoryCounts", mock.Anything, mock.Anything).Return(nil, domain.ErrUnavailable)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/categories", nil)
	h.CategoryCounts(rec, req)

	requireStatus(t, rec, http.StatusBadGateway)
}
