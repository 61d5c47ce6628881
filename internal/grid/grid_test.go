package grid

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		width float64
		want  string
	}{
		{320, "default"},
		{567.5, "default"},
		{568, "compact"},
		{600, "compact"},
		{667, "regular"},
		{700, "regular"},
		{736, "large"},
		{1024, "large"},
	}

	for _, tt := range tests {
		if got := ProfileFor(tt.width).Name; got != tt.want {
			t.Errorf("ProfileFor(%v) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestExactProfile(t *testing.T) {
	tests := []struct {
		width float64
		want  string
	}{
		{568, "compact"},
		{600, "default"},
		{667, "regular"},
		{736, "large"},
		{1024, "default"},
	}

	for _, tt := range tests {
		if got := ExactProfile(tt.width).Name; got != tt.want {
			t.Errorf("ExactProfile(%v) = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestMatchMode(t *testing.T) {
	m, ok := ParseMatchMode("exact")
	require.True(t, ok)
	assert.Equal(t, "default", m.Select(600).Name)

	m, ok = ParseMatchMode("")
	require.True(t, ok)
	assert.Equal(t, "compact", m.Select(600).Name)

	_, ok = ParseMatchMode("fuzzy")
	assert.False(t, ok)
}

func TestDefaultProfileConstants(t *testing.T) {
	p := DefaultProfile
	assert.Equal(t, 5, p.ColumnsPerPage)
	assert.Equal(t, 3, p.RowsPerPage)
	assert.Equal(t, 96.0, p.ItemWidth)
	assert.Equal(t, 88.0, p.ItemHeight)
	assert.Equal(t, 0.0, p.MarginX)
	assert.Equal(t, 20.0, p.MarginY)
}

func TestComputeLayout_Width568TwelveItems(t *testing.T) {
	l := ComputeLayout(12, 568)

	assert.Equal(t, 6, l.Profile.ColumnsPerPage)
	assert.Equal(t, 94.0, l.Profile.ItemWidth)
	assert.Equal(t, 2.0, l.Profile.MarginX)
	assert.Equal(t, 1, l.PageCount)
	require.Len(t, l.Items, 12)
	assert.Equal(t, 4, l.UsedColumns(0))

	for i, it := range l.Items {
		want := Placement{Page: 0, Column: i / 3, Row: i % 3}
		assert.Equal(t, want, it.Placement, "item %d", i)
	}

	assert.Equal(t, Rect{X: 8, Y: 23, Width: 82, Height: 82}, l.Items[0].Rect)
	assert.Equal(t, Rect{X: 8, Y: 111, Width: 82, Height: 82}, l.Items[1].Rect)
	assert.Equal(t, Rect{X: 102, Y: 23, Width: 82, Height: 82}, l.Items[3].Rect)
}

func TestComputeLayout_PageBoundaryGap(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		index int
		wantX float64
		page  int
	}{
		// 6 columns × 94 wide from x=2, plus 2×2 gap, plus 6 padding.
		{"compact first on page 2", 568, 18, 2 + 6*94 + 4 + 6, 1},
		// 5 columns × 96 wide, no margins, 7 padding.
		{"default first on page 2", 320, 15, 5*96 + 7, 1},
		{"default first on page 3", 320, 30, 10*96 + 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.index+1, tt.width)
			it := l.Items[tt.index]
			if it.Rect.X != tt.wantX {
				t.Errorf("X = %v, want %v", it.Rect.X, tt.wantX)
			}
			if it.Placement != (Placement{Page: tt.page}) {
				t.Errorf("Placement = %+v, want page %d column 0 row 0", it.Placement, tt.page)
			}
		})
	}
}

func TestComputeLayout_FractionalPadding(t *testing.T) {
	l := ComputeLayout(1, 667)
	assert.Equal(t, Rect{X: 1 + 6.5, Y: 29 + 8, Width: 82, Height: 82}, l.Items[0].Rect)
}

func TestComputeLayout_PageCount(t *testing.T) {
	tests := []struct {
		n     int
		width float64
		want  int
	}{
		{0, 568, 1},
		{1, 568, 1},
		{18, 568, 1},
		{19, 568, 2},
		{15, 320, 1},
		{16, 320, 2},
		{32, 736, 1},
		{33, 736, 2},
		{200, 736, 7},
	}

	for _, tt := range tests {
		l := ComputeLayout(tt.n, tt.width)
		if l.PageCount != tt.want {
			t.Errorf("ComputeLayout(%d, %v).PageCount = %d, want %d", tt.n, tt.width, l.PageCount, tt.want)
		}
		if len(l.Items) != tt.n {
			t.Errorf("ComputeLayout(%d, %v) has %d items", tt.n, tt.width, len(l.Items))
		}
		if l.PageCount*l.Profile.ItemsPerPage() < tt.n {
			t.Errorf("ComputeLayout(%d, %v) pages cannot hold all items", tt.n, tt.width)
		}
	}
}

func TestComputeLayout_NegativeCount(t *testing.T) {
	l := ComputeLayout(-3, 568)
	assert.Equal(t, 1, l.PageCount)
	assert.Empty(t, l.Items)
}

func TestComputeLayout_Deterministic(t *testing.T) {
	for _, width := range []float64{320, 568, 600, 667, 736, 2000} {
		for _, n := range []int{0, 1, 17, 18, 19, 100} {
			a := ComputeLayout(n, width)
			b := ComputeLayout(n, width)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("ComputeLayout(%d, %v) is not deterministic", n, width)
			}
		}
	}
}

func TestLayout_ItemsOnPage(t *testing.T) {
	l := ComputeLayout(20, 568)
	require.Equal(t, 2, l.PageCount)

	assert.Len(t, l.ItemsOnPage(0), 18)
	assert.Equal(t, []int{18, 19}, l.ItemsOnPage(1))
	assert.Nil(t, l.ItemsOnPage(2))
	assert.Nil(t, l.ItemsOnPage(-1))
	assert.Equal(t, 1, l.UsedColumns(1))

	for _, i := range l.ItemsOnPage(1) {
		assert.Equal(t, 1, l.Items[i].Placement.Page)
	}
}

func TestPaging(t *testing.T) {
	assert.Equal(t, 1704.0, ContentWidth(3, 568))
	assert.Equal(t, 1136.0, PageOffset(2, 568))

	tests := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{283, 0},
		{284, 1},
		{568, 1},
		{1000, 2},
		{-50, 0},
	}
	for _, tt := range tests {
		if got := PageAt(tt.offset, 568); got != tt.want {
			t.Errorf("PageAt(%v, 568) = %d, want %d", tt.offset, got, tt.want)
		}
	}
	assert.Equal(t, 0, PageAt(100, 0))
}
