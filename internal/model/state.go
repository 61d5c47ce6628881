package model

// StateKind tags which variant a SearchState holds.
type StateKind int

const (
	// StateNotSearched is the initial state before any query completes.
	StateNotSearched StateKind = iota

	// StateLoading means a query is in flight.
	StateLoading

	// StateNoResults means the last query succeeded with an empty list.
	StateNoResults

	// StateResults means the last query returned at least one result.
	StateResults
)

// String returns a short name for logs and tests.
func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateNoResults:
		return "no-results"
	case StateResults:
		return "results"
	default:
		return "not-searched"
	}
}

// SearchState is the tagged union published by a search session.
//
// Results is non-nil only when Kind is StateResults, and is never empty in
// that case. Construct states with the helper functions rather than by hand.
type SearchState struct {
	Kind    StateKind
	Results []SearchResult
}

// NotSearchedState returns the initial state.
func NotSearchedState() SearchState {
	return SearchState{Kind: StateNotSearched}
}

// LoadingState returns the state shown while a query is in flight.
func LoadingState() SearchState {
	return SearchState{Kind: StateLoading}
}

// ResultsState returns Results(list) for a non-empty list and NoResults
// otherwise. The list is copied.
func ResultsState(list []SearchResult) SearchState {
	if len(list) == 0 {
		return SearchState{Kind: StateNoResults}
	}
	return SearchState{Kind: StateResults, Results: cloneResults(list)}
}

// Len returns the number of results; zero for every variant but Results.
func (s SearchState) Len() int {
	return len(s.Results)
}

// Clone returns a copy that shares no memory with s.
func (s SearchState) Clone() SearchState {
	s.Results = cloneResults(s.Results)
	return s
}

func cloneResults(list []SearchResult) []SearchResult {
	if len(list) == 0 {
		return nil
	}
	dup := make([]SearchResult, len(list))
	copy(dup, list)
	return dup
}
