package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/itunes/dto"
	"github.com/handiism/storesearch/internal/model"
)

const (
	// DefaultEndpoint is the public search endpoint.
	DefaultEndpoint = "https://itunes.apple.com/search"

	// DefaultLimit is the number of results requested per query.
	DefaultLimit = 200
)

// Fetcher performs one search request per query against the store.
//
// Example usage:
//
//	f := itunes.NewFetcher(http.NewClient())
//	results, err := f.Fetch(ctx, model.Query{Text: "abba", Category: model.CategoryMusic})
//	if errors.Is(err, model.ErrNetwork) {
//	    // show "try again"
//	}
type Fetcher struct {
	client   http.Getter
	endpoint string
	limit    int
	country  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithEndpoint overrides the search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(f *Fetcher) {
		if endpoint != "" {
			f.endpoint = endpoint
		}
	}
}

// WithLimit overrides the number of requested results.
func WithLimit(limit int) Option {
	return func(f *Fetcher) {
		if limit > 0 {
			f.limit = limit
		}
	}
}

// WithCountry restricts the search to one storefront (ISO country code).
func WithCountry(country string) Option {
	return func(f *Fetcher) {
		f.country = country
	}
}

// NewFetcher creates a Fetcher that issues requests through client.
func NewFetcher(client http.Getter, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		endpoint: DefaultEndpoint,
		limit:    DefaultLimit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SearchURL builds the request URL for q.
func (f *Fetcher) SearchURL(q model.Query) (string, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	values := u.Query()
	values.Set("term", q.Text)
	values.Set("limit", strconv.Itoa(f.limit))
	if entity := q.Category.Entity(); entity != "" {
		values.Set("entity", entity)
	}
	if f.country != "" {
		values.Set("country", f.country)
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Fetch runs the search for q.
//
// Errors wrap model.ErrNetwork for transport and status failures and
// model.ErrDecode for payloads that are not valid search JSON. The result
// order is whatever the store returned.
func (f *Fetcher) Fetch(ctx context.Context, q model.Query) ([]model.SearchResult, error) {
	reqURL, err := f.SearchURL(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrNetwork, err)
	}

	body, err := f.client.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrNetwork, err)
	}

	results, err := ParseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrDecode, err)
	}
	return results, nil
}

// ParseResponse decodes a search payload. Entries that cannot be shown are
// skipped.
func ParseResponse(body []byte) ([]model.SearchResult, error) {
	var resp dto.JSONResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search JSON: %w", err)
	}
	if resp.Results == nil && resp.ResultCount != 0 {
		return nil, fmt.Errorf("payload reports %d results but has no results array", resp.ResultCount)
	}

	out := make([]model.SearchResult, 0, len(resp.Results))
	for i := range resp.Results {
		if r, ok := resp.Results[i].ToResult(); ok {
			out = append(out, r)
		}
	}
	return out, nil
}
