// Package http provides the HTTP client used for store searches and
// artwork downloads.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Non-200 responses as *StatusError
//   - File downloads for exported artwork
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(15 * time.Second))
//
//	// Fetch a JSON payload
//	body, err := client.Get(ctx, searchURL)
//
//	// Save artwork to a file
//	err = client.DownloadFile(ctx, artworkURL, "/tmp/cover.jpg")
//
// # Testing
//
// WithTransport injects an http.RoundTripper so tests can answer requests
// without a network.
package http
