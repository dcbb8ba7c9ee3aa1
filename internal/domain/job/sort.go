package job

import "strings"

// SortOrder orders listings by posting date.
type SortOrder string

const (
	SortNewest SortOrder = "desc"
	SortOldest SortOrder = "asc"
)

// ParseSortOrder accepts the wire values ("desc", "asc") and their display
// names ("newest", "oldest"), case-insensitively. An empty string resolves to
// SortNewest.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "newest":
		return SortNewest, true
	case "asc", "oldest":
		return SortOldest, true
	default:
		return SortNewest, false
	}
}

// Label returns the display name of the sort order.
func (s SortOrder) Label() string {
	if s == SortOldest {
		return "Oldest"
	}
	return "Newest"
}

// String implements fmt.Stringer.
func (s SortOrder) String() string {
	return string(s)
}
