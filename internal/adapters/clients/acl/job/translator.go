package job

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	domjob "github.com/badhon18478/Marketplace-sub000/internal/domain/job"
)

// deadlineLayouts are tried in order; job forms submit a bare date.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

// stripMarkup drops every tag, and the contents of script and style
// elements, from client-posted text.
var stripMarkup = sync.OnceValue(bluemonday.StrictPolicy)

// plainText turns a posted title or description into display text: markup
// removed, entities decoded, surrounding space trimmed.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(stripMarkup().Sanitize(s)))
}

// ToDomainJob converts a downstream JobDTO to a domain Job. Unknown
// categories map to CategoryOther; unparseable timestamps stay zero. Title
// and description are reduced to plain text.
func ToDomainJob(dto *JobDTO) domjob.Job {
	category, ok := domjob.ParseCategory(dto.Category)
	if !ok || category == domjob.CategoryAll {
		category = domjob.CategoryOther
	}

	postedBy := dto.PostedBy
	if postedBy == "" {
		postedBy = dto.Email
	}

	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)

	return domjob.Job{
		ID:          dto.ID,
		Title:       plainText(dto.Title),
		Category:    category,
		Description: plainText(dto.Description),
		Budget:      int(dto.Budget),
		Deadline:    parseDeadline(dto.Deadline),
		PostedBy:    postedBy,
		CreatedAt:   createdAt,
	}
}

// ToResultPage converts the listing envelope to a domain ResultPage for a
// request made with the given limit.
func ToResultPage(dto JobListResponseDTO, limit int) domjob.ResultPage {
	items := make([]domjob.Job, len(dto.Jobs))
	for i := range dto.Jobs {
		items[i] = ToDomainJob(&dto.Jobs[i])
	}
	return domjob.NewResultPage(items, dto.Total, dto.TotalPages, limit)
}

func parseDeadline(s string) time.Time {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
