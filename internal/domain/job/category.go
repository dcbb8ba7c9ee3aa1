package job

import "strings"

// Category is the listing category filter. CategoryAll means "no category
// filter" and is never sent on the wire.
type Category string

const (
	CategoryAll               Category = "All"
	CategoryWebDevelopment    Category = "WebDevelopment"
	CategoryDigitalMarketing  Category = "DigitalMarketing"
	CategoryGraphicsDesigning Category = "GraphicsDesigning"
	CategoryContentWriting    Category = "ContentWriting"
	CategoryVideoEditing      Category = "VideoEditing"
	CategoryDataEntry         Category = "DataEntry"
	CategoryTranslation       Category = "Translation"
	CategoryOther             Category = "Other"
)

// Categories lists every concrete category in display order. CategoryAll is
// not included.
var Categories = []Category{
	CategoryWebDevelopment,
	CategoryDigitalMarketing,
	CategoryGraphicsDesigning,
	CategoryContentWriting,
	CategoryVideoEditing,
	CategoryDataEntry,
	CategoryTranslation,
	CategoryOther,
}

// ParseCategory resolves a category name case-insensitively. An empty
// string resolves to CategoryAll. The boolean is false for unknown names.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryAll, false
}

// IsValid returns true if the category is CategoryAll or one of Categories.
func (c Category) IsValid() bool {
	if c == CategoryAll {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
