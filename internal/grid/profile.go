package grid

// Profile is a density profile: the grid constants used for one class of
// viewport widths.
type Profile struct {
	Name           string
	ColumnsPerPage int
	RowsPerPage    int
	ItemWidth      float64
	ItemHeight     float64
	MarginX        float64
	MarginY        float64
}

// ItemsPerPage returns ColumnsPerPage × RowsPerPage.
func (p Profile) ItemsPerPage() int {
	return p.ColumnsPerPage * p.RowsPerPage
}

// Breakpoint pairs a minimum viewport width with the profile used from
// that width upwards.
type Breakpoint struct {
	MinWidth float64
	Profile  Profile
}

// DefaultProfile is used for viewports narrower than every breakpoint.
var DefaultProfile = Profile{
	Name:           "default",
	ColumnsPerPage: 5,
	RowsPerPage:    3,
	ItemWidth:      96,
	ItemHeight:     88,
	MarginX:        0,
	MarginY:        20,
}

// Breakpoints lists the width classes in ascending MinWidth order. The
// widths are the landscape widths of 4-inch, 4.7-inch and 5.5-inch phones.
var Breakpoints = []Breakpoint{
	{MinWidth: 568, Profile: Profile{
		Name: "compact", ColumnsPerPage: 6, RowsPerPage: 3,
		ItemWidth: 94, ItemHeight: 88, MarginX: 2, MarginY: 20,
	}},
	{MinWidth: 667, Profile: Profile{
		Name: "regular", ColumnsPerPage: 7, RowsPerPage: 3,
		ItemWidth: 95, ItemHeight: 98, MarginX: 1, MarginY: 29,
	}},
	{MinWidth: 736, Profile: Profile{
		Name: "large", ColumnsPerPage: 8, RowsPerPage: 4,
		ItemWidth: 92, ItemHeight: 88, MarginX: 0, MarginY: 20,
	}},
}

// ProfileFor returns the profile of the widest breakpoint whose MinWidth
// does not exceed width, or DefaultProfile.
func ProfileFor(width float64) Profile {
	p := DefaultProfile
	for _, bp := range Breakpoints {
		if width >= bp.MinWidth {
			p = bp.Profile
		}
	}
	return p
}

// ExactProfile matches only the exact breakpoint widths, falling back to
// DefaultProfile for anything in between.
func ExactProfile(width float64) Profile {
	for _, bp := range Breakpoints {
		if width == bp.MinWidth {
			return bp.Profile
		}
	}
	return DefaultProfile
}

// MatchMode selects how a viewport width maps onto the breakpoint table.
type MatchMode int

const (
	// MatchRange picks the widest breakpoint not exceeding the width.
	MatchRange MatchMode = iota

	// MatchExact only honours the exact breakpoint widths.
	MatchExact
)

// ParseMatchMode maps "range" and "exact" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch s {
	case "", "range":
		return MatchRange, true
	case "exact":
		return MatchExact, true
	}
	return MatchRange, false
}

// Select returns the profile for width under the mode.
func (m MatchMode) Select(width float64) Profile {
	if m == MatchExact {
		return ExactProfile(width)
	}
	return ProfileFor(width)
}
