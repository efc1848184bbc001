// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// APICapture is one request received by MockAPIServer.
type APICapture struct {
	Path  string
	Query url.Values
}

// MockAPIServer serves canned responses for the recommend, search and
// visualizations endpoints and records every request.
type MockAPIServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []APICapture
	routes   map[string]http.HandlerFunc
}

// NewMockAPIServer starts a server that answers 404 until routes are set.
// It is closed automatically when the test ends.
func NewMockAPIServer(t testing.TB) *MockAPIServer {
	t.Helper()

	m := &MockAPIServer{routes: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.captures = append(m.captures, APICapture{Path: r.URL.Path, Query: r.URL.Query()})
		handler := m.routes[r.URL.Path]
		m.mu.Unlock()

		if handler == nil {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the server's base URL.
func (m *MockAPIServer) URL() string {
	return m.Server.URL
}

// Handle installs a handler for path.
func (m *MockAPIServer) Handle(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[path] = handler
}

// RespondJSON makes path answer with status and a raw JSON body.
func (m *MockAPIServer) RespondJSON(path string, status int, body string) {
	m.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Captures returns a copy of the recorded requests.
func (m *MockAPIServer) Captures() []APICapture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]APICapture, len(m.captures))
	copy(out, m.captures)
	return out
}
