// Package testutil holds fakes shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sync"
	"testing"
)

// Route describes how FakeTransport answers one URL path.
type Route struct {
	Status int
	Body   []byte

	// Err, when set, is returned instead of a response.
	Err error

	// Gate, when set, holds the response until it is closed or the request
	// context is done.
	Gate chan struct{}
}

// FakeTransport answers requests from a fixed route table keyed by URL path.
type FakeTransport struct {
	Routes map[string]Route

	mu        sync.Mutex
	requests  []*http.Request
	userAgent string
}

func (t *FakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.userAgent = req.Header.Get("User-Agent")
	route, ok := t.Routes[req.URL.Path]
	t.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unexpected path: %s", req.URL.Path)
	}
	if route.Gate != nil {
		select {
		case <-route.Gate:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	if route.Err != nil {
		return nil, route.Err
	}
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(route.Body)),
		Request:    req,
	}, nil
}

// Requests returns the requests seen so far.
func (t *FakeTransport) Requests() []*http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*http.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// LastUserAgent returns the User-Agent of the most recent request.
func (t *FakeTransport) LastUserAgent() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userAgent
}

// MakeTestPNG returns a w×h PNG filled with c. It fails t if the image
// cannot be encoded.
func MakeTestPNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode %dx%d test PNG: %v", w, h, err)
		return nil
	}
	return buf.Bytes()
}
