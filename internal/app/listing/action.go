package listing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

// Apply performs the controller operation named by a. Values are validated
// before any state changes: an unknown op, category or sort order, a budget
// that is not a non-negative integer and a page that is not an integer are
// reported as *domain.ValidationError. An empty budget value clears the bound.
func (c *Controller) Apply(a browse.Action) error {
	value := strings.TrimSpace(a.Value)

	switch a.Op {
	case browse.OpSetSearch:
		c.SetSearchText(a.Value)

	case browse.OpSubmitSearch:
		if a.Value != "" {
			c.SetSearchText(a.Value)
		}
		c.SubmitSearch()

	case browse.OpSetCategory:
		category, ok := job.ParseCategory(value)
		if !ok {
			return domain.NewValidationError("category", fmt.Sprintf("unknown category %q", a.Value))
		}
		c.SetCategory(category)

	case browse.OpSetSort:
		order, ok := job.ParseSortOrder(value)
		if !ok {
			return domain.NewValidationError("sort", fmt.Sprintf("unknown sort order %q", a.Value))
		}
		c.SetSortOrder(order)

	case browse.OpSetMinBudget:
		v, err := parseBudget(job.ParamMinBudget, value)
		if err != nil {
			return err
		}
		c.SetMinBudget(v)

	case browse.OpSetMaxBudget:
		v, err := parseBudget(job.ParamMaxBudget, value)
		if err != nil {
			return err
		}
		c.SetMaxBudget(v)

	case browse.OpSetPage:
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.NewValidationError(job.ParamPage, "must be an integer")
		}
		c.SetPage(n)

	case browse.OpNextPage:
		c.NextPage()

	case browse.OpPrevPage:
		c.PrevPage()

	case browse.OpClearFilters:
		c.ClearFilters()

	default:
		return domain.NewValidationError("op", fmt.Sprintf("unknown operation %q", a.Op))
	}

	return nil
}

// parseBudget returns nil for an empty value.
func parseBudget(field, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil || v < 0 {
		return nil, domain.NewValidationError(field, "must be a non-negative integer")
	}
	return &v, nil
}
