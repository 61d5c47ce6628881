package model

import (
	"slices"
	"testing"
)

func TestCategory_Entity(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryAll, ""},
		{CategoryMusic, "musicTrack"},
		{CategorySoftware, "software"},
		{CategoryEbooks, "ebook"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			if got := tt.category.Entity(); got != tt.want {
				t.Errorf("Entity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategory_NextWraps(t *testing.T) {
	if got := CategoryEbooks.Next(); got != CategoryAll {
		t.Errorf("CategoryEbooks.Next() = %v, want %v", got, CategoryAll)
	}
	if got := CategoryAll.Next(); got != CategoryMusic {
		t.Errorf("CategoryAll.Next() = %v, want %v", got, CategoryMusic)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input  string
		want   Category
		wantOK bool
	}{
		{"", CategoryAll, true},
		{"Music", CategoryMusic, true},
		{"software", CategorySoftware, true},
		{"e-books", CategoryEbooks, true},
		{"movies", CategoryAll, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestQuery_IsEmpty(t *testing.T) {
	if !(Query{Text: "   "}).IsEmpty() {
		t.Error("whitespace-only query should be empty")
	}
	if (Query{Text: "abba"}).IsEmpty() {
		t.Error("non-blank query should not be empty")
	}
}

func TestCompare_CaseInsensitiveWithIDTieBreak(t *testing.T) {
	results := []SearchResult{
		{ID: "3", Name: "beta"},
		{ID: "2", Name: "Alpha"},
		{ID: "1", Name: "ALPHA"},
		{ID: "4", Name: "alpha"},
	}
	slices.SortFunc(results, Compare)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	want := []string{"1", "2", "4", "3"}
	if !slices.Equal(ids, want) {
		t.Errorf("sorted ids = %v, want %v", ids, want)
	}

	if !Less(results[0], results[1]) {
		t.Error("Less should agree with Compare")
	}
}

func TestResultsState_EmptyIsNoResults(t *testing.T) {
	st := ResultsState(nil)
	if st.Kind != StateNoResults {
		t.Errorf("Kind = %v, want %v", st.Kind, StateNoResults)
	}
	if st.Results != nil {
		t.Errorf("Results = %v, want nil", st.Results)
	}
}

func TestResultsState_CopiesInput(t *testing.T) {
	list := []SearchResult{{ID: "1", Name: "One"}}
	st := ResultsState(list)
	list[0].Name = "changed"

	if st.Results[0].Name != "One" {
		t.Errorf("ResultsState should copy input; got %q", st.Results[0].Name)
	}

	clone := st.Clone()
	clone.Results[0].Name = "changed"
	if st.Results[0].Name != "One" {
		t.Errorf("Clone should not share memory; got %q", st.Results[0].Name)
	}
}

func TestSearchResult_KindForDisplay(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"song", "Song"},
		{"software", "App"},
		{"ebook", "E-Book"},
		{"feature-movie", "Movie"},
		{"something-new", "something-new"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			r := SearchResult{Kind: tt.kind}
			if got := r.KindForDisplay(); got != tt.want {
				t.Errorf("KindForDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}
