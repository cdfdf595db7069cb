// Package testutil provides testing utilities for the OpenDota proxy.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse defines a canned response for a mock OpenDota endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockOpenDota is a configurable mock OpenDota server for testing.
type MockOpenDota struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	hits      map[string]int

	// RequestCount is the total number of requests received.
	RequestCount int
}

// NewMockOpenDota creates a mock OpenDota server. Unconfigured paths return
// 404 with an OpenDota-shaped error body.
func NewMockOpenDota() *MockOpenDota {
	mock := &MockOpenDota{
		responses: make(map[string]MockResponse),
		hits:      make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.hits[r.URL.Path]++
		resp, ok := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Not Found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.StatusCode != 0 {
			w.WriteHeader(resp.StatusCode)
		}
		w.Write([]byte(resp.Body))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockOpenDota) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockOpenDota) Close() {
	m.server.Close()
}

// Respond configures the response for a path (e.g. "/players/123").
func (m *MockOpenDota) Respond(path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = resp
}

// Hits returns how many requests the given path has received.
func (m *MockOpenDota) Hits(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[path]
}
