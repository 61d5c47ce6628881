// Package itunes implements the store search fetcher.
//
// A Fetcher turns a model.Query into one GET request against the search
// endpoint and decodes the JSON answer into model.SearchResult values:
//
//	f := itunes.NewFetcher(client, itunes.WithCountry("us"))
//	results, err := f.Fetch(ctx, query)
//
// # Request Format
//
// The query text is sent as "term", the category as "entity" (omitted for
// All) and the result cap as "limit":
//
//	https://itunes.apple.com/search?entity=musicTrack&limit=200&term=abba
//
// # Payload Format
//
// The store answers with {"resultCount": n, "results": [...]}. Each entry
// carries a "wrapperType" (track, collection, software, audiobook) and a
// "kind"; the dto package maps those onto model.SearchResult. Entries with
// an unknown wrapper type are skipped rather than failing the search.
package itunes
