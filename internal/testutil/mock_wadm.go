// Package testutil provides testing utilities for the WADM client.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/Sternrassler/wadm-client/pkg/httpclient"
)

// MockWADMResponse defines the behavior for a mock WADM endpoint response.
type MockWADMResponse struct {
	StatusCode int
	Body       string
}

// MockWADM is a configurable mock WADM server for testing. Paths are matched
// exactly against the request path (query string excluded).
type MockWADM struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requests []*http.Request
}

// NewMockWADM creates a new mock WADM server.
func NewMockWADM() *MockWADM {
	mock := &MockWADM{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, r.Clone(context.Background()))
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))

	return mock
}

// URL returns the mock server URL, usable as client host.
func (m *MockWADM) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockWADM) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a path.
func (m *MockWADM) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockWADM) SetResponse(path string, resp MockWADMResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetJSON configures a 200 response with v encoded as JSON.
func (m *MockWADM) SetJSON(path string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal %s: %v", path, err))
	}
	m.SetResponse(path, MockWADMResponse{StatusCode: http.StatusOK, Body: string(data)})
}

// RequestCount returns the number of requests served.
func (m *MockWADM) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// Requests returns the requests served, in arrival order.
func (m *MockWADM) Requests() []*http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*http.Request(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil.
func (m *MockWADM) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// ArtworkJSON returns a raw artwork object as the API would send it.
func ArtworkJSON(id int, title, dimensions string) map[string]any {
	return map[string]any{
		"id":          id,
		"title":       title,
		"link":        fmt.Sprintf("https://www.werkaandemuur.nl/nl/werk/%d", id),
		"images":      map[string]string{"thumb": fmt.Sprintf("http://img.test/%d/thumb.jpg", id)},
		"imagesHttps": map[string]string{"thumb": fmt.Sprintf("https://img.test/%d/thumb.jpg", id)},
		"pricing":     []string{"49.95"},
		"dimensions":  dimensions,
		"medium":      "canvas",
	}
}

// ListBody returns a listing envelope for one page.
func ListBody(currentPage, totalPages int, artworks ...map[string]any) map[string]any {
	if artworks == nil {
		artworks = []map[string]any{}
	}
	return map[string]any{
		"data": map[string]any{
			"artworks": artworks,
			"stats": map[string]any{
				"totalArtworks": totalPages * len(artworks),
				"artworkCount":  len(artworks),
				"currentPage":   currentPage,
				"totalPages":    totalPages,
			},
		},
	}
}

// ArtworkBody returns a single-artwork envelope.
func ArtworkBody(artwork map[string]any) map[string]any {
	return map[string]any{"data": map[string]any{"artwork": artwork}}
}

// SpyCall records one transport invocation.
type SpyCall struct {
	URL     string
	Headers map[string]string
}

// SpyTransport is an httpclient.Client that records calls and answers from
// a fixed response or error.
type SpyTransport struct {
	mu    sync.Mutex
	calls []SpyCall

	Status int
	Body   string
	Err    error
}

// Get implements httpclient.Client.
func (s *SpyTransport) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, SpyCall{URL: url, Headers: headers})
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return spyResponse{status: s.Status, body: []byte(s.Body)}, nil
}

// Calls returns the recorded calls.
func (s *SpyTransport) Calls() []SpyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SpyCall(nil), s.calls...)
}

type spyResponse struct {
	status int
	body   []byte
}

func (r spyResponse) Body() []byte    { return r.body }
func (r spyResponse) StatusCode() int { return r.status }
