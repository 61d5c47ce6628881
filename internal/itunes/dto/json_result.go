package dto

import (
	"strconv"

	"github.com/handiism/storesearch/internal/model"
)

// JSONResponse is the top-level search payload.
type JSONResponse struct {
	ResultCount int          `json:"resultCount"`
	Results     []JSONResult `json:"results"`
}

// JSONResult is one entry of the "results" array. The store reuses a single
// shape for tracks, collections, software and books, so most fields are
// optional and filled depending on WrapperType.
type JSONResult struct {
	WrapperType string `json:"wrapperType"`
	Kind        string `json:"kind"`

	TrackID      *int64 `json:"trackId"`
	CollectionID *int64 `json:"collectionId"`

	TrackName      string `json:"trackName"`
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`

	ArtworkURL60  string `json:"artworkUrl60"`
	ArtworkURL100 string `json:"artworkUrl100"`

	TrackViewURL      string `json:"trackViewUrl"`
	CollectionViewURL string `json:"collectionViewUrl"`

	TrackPrice      *float64 `json:"trackPrice"`
	CollectionPrice *float64 `json:"collectionPrice"`
	Price           *float64 `json:"price"`
	Currency        string   `json:"currency"`

	PrimaryGenreName string   `json:"primaryGenreName"`
	Genres           []string `json:"genres"`
}

// ToResult converts the entry to a model.SearchResult.
//
// Returns false for entries that cannot be shown: unknown wrapper types and
// entries with neither an ID nor a name.
func (jr *JSONResult) ToResult() (model.SearchResult, bool) {
	kind := jr.Kind
	switch jr.WrapperType {
	case "track", "software":
	case "audiobook":
		kind = "audiobook"
	case "collection":
		if kind == "" {
			kind = "album"
		}
	default:
		if jr.Kind != "ebook" {
			return model.SearchResult{}, false
		}
	}

	id := firstID(jr.TrackID, jr.CollectionID)
	name := firstNonEmpty(jr.TrackName, jr.CollectionName)
	if id == "" || name == "" {
		return model.SearchResult{}, false
	}

	genre := jr.PrimaryGenreName
	if genre == "" && len(jr.Genres) > 0 {
		genre = jr.Genres[0]
	}

	return model.SearchResult{
		ID:              id,
		Name:            name,
		ArtistName:      jr.ArtistName,
		Kind:            kind,
		Genre:           genre,
		Price:           firstPrice(jr.TrackPrice, jr.CollectionPrice, jr.Price),
		Currency:        jr.Currency,
		ArtworkSmallURL: jr.ArtworkURL60,
		ArtworkLargeURL: jr.ArtworkURL100,
		StoreURL:        firstNonEmpty(jr.TrackViewURL, jr.CollectionViewURL),
	}, true
}

func firstID(ids ...*int64) string {
	for _, id := range ids {
		if id != nil {
			return strconv.FormatInt(*id, 10)
		}
	}
	return ""
}

func firstPrice(prices ...*float64) float64 {
	for _, p := range prices {
		if p != nil {
			return *p
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
