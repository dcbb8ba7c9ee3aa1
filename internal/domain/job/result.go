package job

// ResultPage is one page of listing results plus pagination metadata. It is
// replaced wholesale on every fetch and never merged with a previous page.
type ResultPage struct {
	Items      []Job
	Total      int
	TotalPages int
}

// EmptyResultPage is the page shown when nothing could be loaded.
func EmptyResultPage() ResultPage {
	return ResultPage{Items: []Job{}, Total: 0, TotalPages: 1}
}

// NewResultPage builds a page from endpoint data. A missing or zero
// totalPages is derived from total and limit; the result is never below 1.
func NewResultPage(items []Job, total, totalPages, limit int) ResultPage {
	if items == nil {
		items = []Job{}
	}
	if total < 0 {
		total = 0
	}
	if totalPages <= 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return ResultPage{Items: items, Total: total, TotalPages: totalPages}
}

// ClampPage bounds n to [1, totalPages]. A totalPages below 1 means the page
// count is unknown and only the lower bound applies.
func ClampPage(n, totalPages int) int {
	if totalPages >= 1 && n > totalPages {
		n = totalPages
	}
	if n < 1 {
		n = 1
	}
	return n
}
