package browse

import (
	"fmt"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
)

// Op names a user edit of the listing view.
type Op string

const (
	OpSetSearch    Op = "set_search"
	OpSubmitSearch Op = "submit_search"
	OpSetCategory  Op = "set_category"
	OpSetSort      Op = "set_sort"
	OpSetMinBudget Op = "set_min_budget"
	OpSetMaxBudget Op = "set_max_budget"
	OpSetPage      Op = "set_page"
	OpNextPage     Op = "next_page"
	OpPrevPage     Op = "prev_page"
	OpClearFilters Op = "clear_filters"
)

var knownOps = map[Op]bool{
	OpSetSearch:    true,
	OpSubmitSearch: true,
	OpSetCategory:  true,
	OpSetSort:      true,
	OpSetMinBudget: true,
	OpSetMaxBudget: true,
	OpSetPage:      true,
	OpNextPage:     true,
	OpPrevPage:     true,
	OpClearFilters: true,
}

// Action is the textual form of one controller operation.
type Action struct {
	Op    Op
	Value string
}

// ParseOp resolves an op name case-insensitively.
func ParseOp(s string) (Op, error) {
	op := Op(strings.ToLower(strings.TrimSpace(s)))
	if !op.IsValid() {
		return "", domain.NewValidationError("op", fmt.Sprintf("unknown operation %q", s))
	}
	return op, nil
}

// IsValid returns true if op is a known operation.
func (op Op) IsValid() bool {
	return knownOps[op]
}

// String implements fmt.Stringer.
func (op Op) String() string {
	return string(op)
}
