// Package model defines the core data structures used throughout
// the storesearch application.
//
// # Query
//
// Query is what the user submits: a search term and a store category.
//
//	q := model.Query{Text: "beatles", Category: model.CategoryMusic}
//	fmt.Println(q.Category.Entity()) // "musicTrack"
//
// # SearchResult
//
// SearchResult is one item returned by the store. Results have a total
// order (case-folded name, then ID) so that list and grid placement never
// depends on the order the network happened to return:
//
//	slices.SortFunc(results, model.Compare)
//
// # SearchState
//
// SearchState is a tagged union over NotSearched, Loading, NoResults and
// Results. A Results state always carries at least one result:
//
//	st := model.ResultsState(list) // NoResults when list is empty
//	if st.Kind == model.StateResults {
//	    render(st.Results)
//	}
//
// # Errors
//
// ErrNetwork, ErrDecode and ErrThumbnail classify failures. Wrap them with
// fmt.Errorf and test with errors.Is.
package model
