package job

import (
	"net/url"
	"strconv"
	"strings"
)

// URL and endpoint parameter names.
const (
	ParamSearch    = "search"
	ParamCategory  = "category"
	ParamSort      = "sort"
	ParamMinBudget = "minBudget"
	ParamMaxBudget = "maxBudget"
	ParamPage      = "page"
	ParamLimit     = "limit"
)

// Query is the browse QueryState: every active search, filter, sort and page
// selection of the job listing view. The zero value is not valid; use
// DefaultQuery.
type Query struct {
	Search    string
	Category  Category
	Sort      SortOrder
	MinBudget *int
	MaxBudget *int
	Page      int
}

// DefaultQuery returns the query with every field at its default.
func DefaultQuery() Query {
	return Query{
		Category: CategoryAll,
		Sort:     SortNewest,
		Page:     1,
	}
}

// ParseQuery builds a Query from URL query parameters. Missing keys take
// their default. Values that cannot be represented (unknown category or
// sort, non-numeric or negative budgets, page < 1) also fall back to the
// default so that a hand-edited link still opens a usable view.
func ParseQuery(values url.Values) Query {
	q := DefaultQuery()

	q.Search = values.Get(ParamSearch)

	if c, ok := ParseCategory(values.Get(ParamCategory)); ok {
		q.Category = c
	}
	if s, ok := ParseSortOrder(values.Get(ParamSort)); ok {
		q.Sort = s
	}

	q.MinBudget = parseBudget(values.Get(ParamMinBudget))
	q.MaxBudget = parseBudget(values.Get(ParamMaxBudget))

	if p, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && p >= 1 {
		q.Page = p
	}

	return q
}

// parseBudget returns nil for empty, non-numeric or negative input.
func parseBudget(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// Values serializes the query as URL parameters, omitting every field that
// is at its default value. Search is written exactly as stored.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.Category != "" && q.Category != CategoryAll {
		v.Set(ParamCategory, q.Category.String())
	}
	if q.Sort == SortOldest {
		v.Set(ParamSort, q.Sort.String())
	}
	if q.MinBudget != nil {
		v.Set(ParamMinBudget, strconv.Itoa(*q.MinBudget))
	}
	if q.MaxBudget != nil {
		v.Set(ParamMaxBudget, strconv.Itoa(*q.MaxBudget))
	}
	if q.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return v
}

// Encode returns the shareable URL query string (without the leading "?").
// It is empty when every field is at its default.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// HasActiveFilters reports whether any field differs from its default.
func (q Query) HasActiveFilters() bool {
	return len(q.Values()) > 0
}

// ListRequest is the outbound request to the job-listing endpoint.
type ListRequest struct {
	Query
	Limit int
}

// NewListRequest derives the outbound request for q with the fixed page size.
func NewListRequest(q Query) ListRequest {
	if q.Page < 1 {
		q.Page = 1
	}
	return ListRequest{Query: q, Limit: PageSize}
}

// Values serializes the request for the listing endpoint. It follows the
// same omission rule as Query.Values, except that page and limit are always
// sent.
func (r ListRequest) Values() url.Values {
	v := r.Query.Values()
	v.Set(ParamPage, strconv.Itoa(r.Page))
	v.Set(ParamLimit, strconv.Itoa(r.Limit))
	return v
}

// Encode returns the endpoint query string.
func (r ListRequest) Encode() string {
	return r.Values().Encode()
}
