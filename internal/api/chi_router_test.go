// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
)

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, testConfig(), false)

	rec := srv.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, id := range []string{
		`id="recommend-btn"`, `id="movie-input"`, `id="results"`, `id="autocomplete-list"`,
		`id="visualizations"`, `id="genreChart"`, `id="typeChart"`, `id="countryChart"`,
	} {
		if !strings.Contains(body, id) {
			t.Errorf("page lacks %s", id)
		}
	}
	if !strings.Contains(body, `data-debounce-ms="300"`) || !strings.Contains(body, `data-recommend-path="/recommend"`) {
		t.Error("page lacks the client configuration attributes")
	}
}

func TestAssets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cinematch.wasm"), []byte("\x00asm"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Server.AssetsDir = dir
	srv := newTestServer(t, cfg, false)

	rec := srv.get(t, "/assets/cinematch.wasm")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/wasm" {
		t.Errorf("Content-Type = %q", ct)
	}

	if rec := srv.get(t, "/assets/missing.js"); rec.Code != http.StatusNotFound {
		t.Errorf("missing asset status = %d", rec.Code)
	}
	if rec := srv.get(t, "/assets/"); rec.Code != http.StatusNotFound {
		t.Errorf("directory listing status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)
	srv.get(t, "/search?q=sher")

	rec := srv.get(t, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `endpoint="/search"`) {
		t.Error("/metrics lacks the /search request series")
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, testConfig(), false)

	rec := srv.get(t, "/api/v1/health/live")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response lacks X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("X-Request-ID = %q, want upstream-42", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://app.example.com"}
	srv := newTestServer(t, cfg, false)

	req := httptest.NewRequest(http.MethodOptions, "/search?q=x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/search?q=x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitDisabled = false
	cfg.Security.RateLimitReqs = 2
	cfg.Security.RateLimitWindow = time.Minute
	srv := newTestServer(t, cfg, true)

	for i := 0; i < 2; i++ {
		if rec := srv.get(t, "/search?q=sher"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	rec := srv.get(t, "/search?q=sher")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"Too many requests"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	// Probes have their own, larger budget.
	if rec := srv.get(t, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d while the API is throttled", rec.Code)
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	cfg := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{})
	def := DefaultChiMiddlewareConfig()
	if cfg.RateLimitRequests != def.RateLimitRequests || cfg.RateLimitWindow != def.RateLimitWindow {
		t.Errorf("zero security config did not fall back to defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("origins = %v, want none", cfg.CORSAllowedOrigins)
	}

	cfg = ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		RateLimitReqs:     7,
		RateLimitWindow:   time.Second,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"*"},
	})
	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != time.Second || !cfg.RateLimitDisabled {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestRateLimitDisabledPassThrough(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}
