package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
	"github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

func plainUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewUI(&out, &errOut, ColorNever), &out, &errOut
}

func TestRender_ResultPage(t *testing.T) {
	t.Parallel()

	ui, out, _ := plainUI()
	minBudget := 100
	v := browse.View{
		Query: job.Query{Search: "logo", Category: job.CategoryGraphicsDesigning, Sort: job.SortOldest, MinBudget: &minBudget, Page: 2},
		Result: job.ResultPage{
			Items: []job.Job{{
				Title:       "Logo refresh",
				Category:    job.CategoryGraphicsDesigning,
				Description: "Rework our\nlogo for print and web.",
				Budget:      250,
				Deadline:    time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
				PostedBy:    "client@example.com",
			}},
			Total:      9,
			TotalPages: 2,
		},
		Status:           browse.StatusSuccess,
		HasActiveFilters: true,
	}

	Render(ui, v, "http://localhost:5173/all-jobs?page=2")

	got := out.String()
	assert.Contains(t, got, `search: "logo"  category: GraphicsDesigning  sort: Oldest  budget: $100 - any`)
	assert.Contains(t, got, "  9. Logo refresh  [GraphicsDesigning]")
	assert.Contains(t, got, "$250 | due 2026-11-30 | by client@example.com")
	assert.Contains(t, got, "Rework our logo for print and web.")
	assert.Contains(t, got, "page 2 of 2, 9 total")
	assert.Contains(t, got, "link: http://localhost:5173/all-jobs?page=2")
}

func TestRender_EmptyWithFiltersSuggestsClear(t *testing.T) {
	t.Parallel()

	ui, out, _ := plainUI()
	v := browse.View{
		Query:            job.Query{Category: job.CategoryTranslation, Sort: job.SortNewest, Page: 1},
		Result:           job.EmptyResultPage(),
		Status:           browse.StatusSuccess,
		HasActiveFilters: true,
		IsEmpty:          true,
	}

	Render(ui, v, "")

	got := out.String()
	assert.Contains(t, got, "No jobs found.")
	assert.Contains(t, got, "type clear to reset them")
	assert.Contains(t, got, "page 1 of 1, 0 total")
	assert.NotContains(t, got, "link:")
}

func TestRender_EmptyAfterError(t *testing.T) {
	t.Parallel()

	ui, out, _ := plainUI()
	v := browse.View{
		Query:   job.Query{Category: job.CategoryAll, Sort: job.SortNewest, Page: 1},
		Result:  job.EmptyResultPage(),
		Status:  browse.StatusError,
		IsEmpty: true,
	}

	Render(ui, v, "http://localhost:5173/all-jobs")

	got := out.String()
	assert.Contains(t, got, "No jobs could be loaded.")
	assert.NotContains(t, got, "type clear")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("  short ", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "", truncate("", 10))
}

func TestNormalizeColorMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorAlways, NormalizeColorMode(" Always "))
	assert.Equal(t, ColorNever, NormalizeColorMode("never"))
	assert.Equal(t, ColorAuto, NormalizeColorMode("bogus"))
}

func TestUI_NeverModeWritesPlainText(t *testing.T) {
	t.Parallel()

	ui, out, errOut := plainUI()
	ui.Infof("hello %s\n", "there")
	ui.Warnf("careful")

	assert.Equal(t, "hello there\n", out.String())
	assert.Equal(t, "careful\n", errOut.String())
	assert.Equal(t, "x", ui.LinkText("x"))
	assert.Equal(t, "x", ui.Bold("x"))
}
