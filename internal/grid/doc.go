// Package grid lays search results out as pages of buttons.
//
// The layout depends on the viewport width through a density profile
// (columns, rows, cell size and margins per page):
//
//	layout := grid.ComputeLayout(len(results), 568)
//	fmt.Println(layout.PageCount)           // 1 for up to 18 results
//	fmt.Println(layout.Items[0].Rect)       // {8 23 82 82}
//	fmt.Println(layout.Items[3].Placement)  // {0 1 0}: page 0, column 1, row 0
//
// # Profile Selection
//
// Breakpoints is an ordered table of {MinWidth, Profile}. ProfileFor picks
// the widest breakpoint not exceeding the width, so a 600pt viewport uses
// the 568pt profile instead of the default. ExactProfile keeps exact-width
// matching for callers that need it.
//
// # Paging
//
// PageAt, PageOffset and ContentWidth convert between scroll offsets and
// page numbers for a horizontally paged scroller.
package grid
