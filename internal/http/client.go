package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Getter fetches the body of a URL. *Client implements it; tests and the
// thumbnail loader depend on the interface.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Ensure Client implements Getter at compile time.
var _ Getter = (*Client)(nil)

// Client wraps HTTP operations with store-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Bounded in-memory reads for JSON payloads and thumbnails
//   - File download for artwork export
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch a search response
//	body, err := client.Get(ctx, "https://itunes.apple.com/search?term=abba")
//
//	// Save artwork to disk
//	err = client.DownloadFile(ctx, artworkURL, "/tmp/abba.jpg")
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBody    int64
}

// DefaultUserAgent is sent when no other User-Agent is configured.
const DefaultUserAgent = "StoreSearch"

const (
	defaultTimeout = 60 * time.Second
	defaultMaxBody = 8 << 20
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTransport swaps the underlying round tripper, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - 60 second timeout
//   - "StoreSearch" User-Agent header
//   - 8 MiB response body limit for Get
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: DefaultUserAgent,
		maxBody:   defaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails or ctx is cancelled
//   - The response status is not 200 OK (*StatusError)
//   - Reading the body fails or it exceeds the body limit
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, c.maxBody)
	}
	return body, nil
}

// DownloadFile streams the body at url into destPath, creating parent
// directories as needed. A partially written file is removed on failure.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	file, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(destPath)
		return err
	}
	return file.Close()
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	// http.Client only consults the context from inside the transport.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}
