package cli

import (
	"fmt"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

const (
	dateLayout     = "2006-01-02"
	maxDescription = 72
)

// Render prints the filter summary, the result page, the pagination line and
// the shareable link of v.
func Render(u *UI, v browse.View, link string) {
	u.Printf("%s\n", u.Faint(filterSummary(v.Query)))

	switch {
	case v.Status == browse.StatusLoading:
		u.Infof("Loading jobs...")
	case v.IsEmpty:
		renderEmpty(u, v)
	default:
		for i, j := range v.Result.Items {
			renderJob(u, (v.Query.Page-1)*job.PageSize+i+1, j)
		}
	}

	u.Printf("page %d of %d, %d total\n", v.Query.Page, v.Result.TotalPages, v.Result.Total)
	if link != "" {
		u.Printf("link: %s\n", u.LinkText(link))
	}
}

func renderEmpty(u *UI, v browse.View) {
	if v.Status == browse.StatusError {
		u.Printf("No jobs could be loaded.\n")
	} else {
		u.Printf("No jobs found.\n")
	}
	if v.HasActiveFilters {
		u.Printf("%s\n", u.Faint("Try fewer filters, or type clear to reset them."))
	}
}

func renderJob(u *UI, n int, j job.Job) {
	u.Printf("%3d. %s  %s\n", n, u.Bold(j.Title), u.Faint("["+j.Category.String()+"]"))

	details := []string{fmt.Sprintf("$%d", j.Budget)}
	if !j.Deadline.IsZero() {
		details = append(details, "due "+j.Deadline.Format(dateLayout))
	}
	if j.PostedBy != "" {
		details = append(details, "by "+j.PostedBy)
	}
	if !j.CreatedAt.IsZero() {
		details = append(details, "posted "+j.CreatedAt.Format(dateLayout))
	}
	u.Printf("     %s\n", strings.Join(details, " | "))

	if desc := truncate(j.Description, maxDescription); desc != "" {
		u.Printf("     %s\n", u.Faint(desc))
	}
}

func filterSummary(q job.Query) string {
	parts := []string{"category: " + q.Category.String(), "sort: " + q.Sort.Label()}
	if q.Search != "" {
		parts = append([]string{fmt.Sprintf("search: %q", q.Search)}, parts...)
	}
	if q.MinBudget != nil || q.MaxBudget != nil {
		parts = append(parts, "budget: "+budgetRange(q.MinBudget, q.MaxBudget))
	}
	return strings.Join(parts, "  ")
}

func budgetRange(minBudget, maxBudget *int) string {
	lo, hi := "any", "any"
	if minBudget != nil {
		lo = fmt.Sprintf("$%d", *minBudget)
	}
	if maxBudget != nil {
		hi = fmt.Sprintf("$%d", *maxBudget)
	}
	return lo + " - " + hi
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
