package grid

// Size of the visible button drawn inside each grid cell.
const (
	ButtonWidth  = 82
	ButtonHeight = 82
)

// Rect is a screen rectangle in points.
type Rect struct {
	X, Y, Width, Height float64
}

// Placement is the grid position of one item.
type Placement struct {
	Page   int
	Column int
	Row    int
}

// Item is the computed position of one result.
type Item struct {
	Rect      Rect
	Placement Placement
}

// Layout is the tiling of a result list. Items is indexed 1:1 with the
// result list the layout was computed for.
type Layout struct {
	Profile   Profile
	PageCount int
	Items     []Item
}

// ComputeLayout tiles itemCount buttons for a viewport of the given width
// using range-based profile selection.
func ComputeLayout(itemCount int, viewportWidth float64) Layout {
	return ComputeLayoutWith(ProfileFor(viewportWidth), itemCount)
}

// ComputeLayoutWith tiles itemCount buttons using profile p.
//
// Items fill column-major: the row advances fastest, then the column, then
// the page. Crossing into a new page adds a horizontal gap of 2×MarginX.
// Each button is centred in its ItemWidth × ItemHeight cell. The result
// depends only on the arguments.
func ComputeLayoutWith(p Profile, itemCount int) Layout {
	if itemCount < 0 {
		itemCount = 0
	}
	perPage := p.ItemsPerPage()
	if perPage <= 0 {
		perPage = 1
	}
	pages := 1
	if itemCount > 0 {
		pages = (itemCount + perPage - 1) / perPage
	}

	paddingX := (p.ItemWidth - ButtonWidth) / 2
	paddingY := (p.ItemHeight - ButtonHeight) / 2

	items := make([]Item, itemCount)
	row, column, page := 0, 0, 0
	x := p.MarginX
	for i := range items {
		items[i] = Item{
			Rect: Rect{
				X:      x + paddingX,
				Y:      p.MarginY + float64(row)*p.ItemHeight + paddingY,
				Width:  ButtonWidth,
				Height: ButtonHeight,
			},
			Placement: Placement{Page: page, Column: column, Row: row},
		}

		row++
		if row == p.RowsPerPage {
			row = 0
			x += p.ItemWidth
			column++
			if column == p.ColumnsPerPage {
				column = 0
				page++
				x += p.MarginX * 2
			}
		}
	}

	return Layout{Profile: p, PageCount: pages, Items: items}
}

// ItemsOnPage returns the indexes of the items placed on page.
func (l Layout) ItemsOnPage(page int) []int {
	perPage := l.Profile.ItemsPerPage()
	if perPage <= 0 || page < 0 || page >= l.PageCount {
		return nil
	}
	start := page * perPage
	end := min(start+perPage, len(l.Items))
	if start >= end {
		return nil
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// UsedColumns returns how many columns hold at least one item on page.
func (l Layout) UsedColumns(page int) int {
	used := 0
	for _, i := range l.ItemsOnPage(page) {
		used = max(used, l.Items[i].Placement.Column+1)
	}
	return used
}

// ContentWidth is the scrollable width of pageCount pages.
func ContentWidth(pageCount int, viewportWidth float64) float64 {
	return float64(pageCount) * viewportWidth
}

// PageAt returns the page nearest to the horizontal scroll offset.
func PageAt(offsetX, viewportWidth float64) int {
	if viewportWidth <= 0 {
		return 0
	}
	page := int((offsetX + viewportWidth/2) / viewportWidth)
	return max(page, 0)
}

// PageOffset returns the scroll offset that shows page.
func PageOffset(page int, viewportWidth float64) float64 {
	return viewportWidth * float64(page)
}
