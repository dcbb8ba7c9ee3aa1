package job

import "testing"

func TestEmptyResultPage(t *testing.T) {
	t.Parallel()

	p := EmptyResultPage()
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil slice", p.Items)
	}
	if p.Total != 0 || p.TotalPages != 1 {
		t.Errorf("Total, TotalPages = %d, %d; want 0, 1", p.Total, p.TotalPages)
	}
}

func TestNewResultPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		total          int
		totalPages     int
		wantTotalPages int
	}{
		{name: "endpoint value kept", total: 20, totalPages: 3, wantTotalPages: 3},
		{name: "derived from total", total: 17, totalPages: 0, wantTotalPages: 3},
		{name: "exact multiple", total: 16, totalPages: 0, wantTotalPages: 2},
		{name: "no matches is one page", total: 0, totalPages: 0, wantTotalPages: 1},
		{name: "negative total", total: -4, totalPages: -1, wantTotalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewResultPage(nil, tt.total, tt.totalPages, PageSize)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.Items == nil {
				t.Error("Items = nil, want empty slice")
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, totalPages, want int
	}{
		{n: 0, totalPages: 3, want: 1},
		{n: -5, totalPages: 3, want: 1},
		{n: 9999, totalPages: 3, want: 3},
		{n: 2, totalPages: 3, want: 2},
		{n: 9999, totalPages: 0, want: 9999},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.n, tt.totalPages); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.n, tt.totalPages, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	if c, ok := ParseCategory(""); !ok || c != CategoryAll {
		t.Errorf("ParseCategory(\"\") = %q, %v; want All, true", c, ok)
	}
	if c, ok := ParseCategory("videoediting"); !ok || c != CategoryVideoEditing {
		t.Errorf("ParseCategory(videoediting) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("Plumbing"); ok {
		t.Error("ParseCategory(Plumbing) ok = true, want false")
	}
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("%q.IsValid() = false", c)
		}
	}
}
