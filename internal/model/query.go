package model

import "strings"

// Category selects which part of the store a query searches.
//
// The numeric values match the segment order of the category picker
// (All, Music, Software, E-Books).
type Category int

const (
	// CategoryAll searches every media type.
	CategoryAll Category = iota

	// CategoryMusic restricts results to songs.
	CategoryMusic

	// CategorySoftware restricts results to apps.
	CategorySoftware

	// CategoryEbooks restricts results to e-books.
	CategoryEbooks
)

// Categories lists every category in picker order.
var Categories = []Category{CategoryAll, CategoryMusic, CategorySoftware, CategoryEbooks}

// String returns the label shown in the category picker.
func (c Category) String() string {
	switch c {
	case CategoryMusic:
		return "Music"
	case CategorySoftware:
		return "Software"
	case CategoryEbooks:
		return "E-Books"
	default:
		return "All"
	}
}

// Entity returns the store "entity" filter for the category.
//
// Returns:
//   - "" for CategoryAll (no filter)
//   - "musicTrack" for CategoryMusic
//   - "software" for CategorySoftware
//   - "ebook" for CategoryEbooks
func (c Category) Entity() string {
	switch c {
	case CategoryMusic:
		return "musicTrack"
	case CategorySoftware:
		return "software"
	case CategoryEbooks:
		return "ebook"
	default:
		return ""
	}
}

// Next returns the following category, wrapping around after the last one.
func (c Category) Next() Category {
	return Category((int(c) + 1) % len(Categories))
}

// ParseCategory maps a case-insensitive name ("all", "music", "software",
// "ebooks"/"e-books") to a Category.
func ParseCategory(name string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return CategoryAll, true
	case "music":
		return CategoryMusic, true
	case "software", "apps":
		return CategorySoftware, true
	case "ebooks", "e-books", "ebook", "books":
		return CategoryEbooks, true
	}
	return CategoryAll, false
}

// Query is a single search request. It is a value type and is never
// modified after being submitted.
type Query struct {
	// Text is the search term as typed by the user.
	Text string

	// Category restricts the search to part of the store.
	Category Category
}

// IsEmpty reports whether the query has no searchable text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}
