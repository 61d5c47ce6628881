package model

import (
	"cmp"
	"strings"

	"golang.org/x/text/cases"
)

// SearchResult is one item returned by the store.
//
// Results are immutable once decoded and are identified by ID. The display
// fields mirror what the result list and detail views render.
type SearchResult struct {
	// ID is the store identifier (track, collection or app ID).
	ID string

	// Name is the item title.
	Name string

	// ArtistName is the artist, developer or author.
	ArtistName string

	// Kind is the raw store kind, e.g. "song" or "software".
	Kind string

	// Genre is the primary genre name.
	Genre string

	// Price is the item price in Currency. Zero means free.
	Price float64

	// Currency is the ISO currency code for Price.
	Currency string

	// ArtworkSmallURL points to the 60px artwork used for thumbnails.
	ArtworkSmallURL string

	// ArtworkLargeURL points to the 100px artwork used by detail views.
	ArtworkLargeURL string

	// StoreURL opens the item in the store.
	StoreURL string
}

// HasArtwork reports whether a thumbnail can be fetched for the result.
func (r SearchResult) HasArtwork() bool {
	return r.ArtworkSmallURL != ""
}

// KindForDisplay returns a human readable label for the store kind.
func (r SearchResult) KindForDisplay() string {
	switch r.Kind {
	case "album":
		return "Album"
	case "audiobook":
		return "Audio Book"
	case "book", "ebook":
		return "E-Book"
	case "feature-movie":
		return "Movie"
	case "music-video":
		return "Music Video"
	case "podcast":
		return "Podcast"
	case "software":
		return "App"
	case "song":
		return "Song"
	case "tv-episode":
		return "TV Episode"
	default:
		return r.Kind
	}
}

// Compare orders results by case-folded name, breaking ties by ID.
//
// It is a total order suitable for slices.SortFunc.
func Compare(a, b SearchResult) int {
	// Casers are stateful, so each comparison gets its own.
	fold := cases.Fold()
	if c := strings.Compare(fold.String(a.Name), fold.String(b.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Less reports whether a sorts before b under Compare.
func Less(a, b SearchResult) bool {
	return Compare(a, b) < 0
}
