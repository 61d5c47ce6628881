// Package search implements the search session behind the result list and
// the landscape grid.
//
// A Session owns a model.SearchState and moves it through
// NotSearched, Loading, NoResults and Results as queries are submitted and
// fetches complete. Rapid resubmission (typing, switching the category) is
// safe: each Submit cancels the previous fetch, and a sequence number makes
// sure only the newest completion is applied even if an older one arrives
// later.
//
// Failed searches never leave the session stuck in Loading. The state falls
// back to the last successful result set, or NotSearched if there was none,
// and the OnError callback receives an error wrapping model.ErrNetwork or
// model.ErrDecode.
//
// Published results are sorted with model.Compare, so grid placement does
// not depend on the order the store returned them in.
package search
