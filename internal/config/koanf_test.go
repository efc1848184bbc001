// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Client.Debounce != 300*time.Millisecond {
		t.Errorf("Client.Debounce = %v, want 300ms", cfg.Client.Debounce)
	}
	if cfg.Client.MinQueryLength != 2 {
		t.Errorf("Client.MinQueryLength = %d, want 2", cfg.Client.MinQueryLength)
	}
	if cfg.Client.RecommendPath != "/recommend" || cfg.Client.SearchPath != "/search" || cfg.Client.VisualizationsPath != "/visualizations" {
		t.Errorf("unexpected endpoint paths: %+v", cfg.Client)
	}
	if cfg.Client.Timeout != 0 {
		t.Errorf("Client.Timeout = %v, want 0 (no timeout)", cfg.Client.Timeout)
	}
	if cfg.Recommend.MinDF != 2 || cfg.Recommend.MaxNgram != 2 {
		t.Errorf("unexpected vectorizer defaults: %+v", cfg.Recommend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DATASET_PATH", "catalog.dataset_path"},
		{"CLIENT_DEBOUNCE", "client.debounce"},
		{"LOG_LEVEL", "logging.level"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 8080
catalog:
  dataset_path: /srv/titles.csv
client:
  base_url: http://example.test:8080
  debounce: 150ms
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CLIENT_DEBOUNCE", "450ms")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.DatasetPath != "/srv/titles.csv" {
		t.Errorf("Catalog.DatasetPath = %q", cfg.Catalog.DatasetPath)
	}
	if cfg.Client.BaseURL != "http://example.test:8080" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Debounce != 450*time.Millisecond {
		t.Errorf("Client.Debounce = %v, want env override 450ms", cfg.Client.Debounce)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.test" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.DefaultLimit != 10 {
		t.Errorf("defaults should survive file layer, DefaultLimit = %d", cfg.Recommend.DefaultLimit)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"empty dataset", func(c *Config) { c.Catalog.DatasetPath = " " }, "DATASET_PATH"},
		{"limit above max", func(c *Config) { c.Recommend.DefaultLimit = 500 }, "RECOMMEND_LIMIT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad base url scheme", func(c *Config) { c.Client.BaseURL = "ftp://x" }, "CINEMATCH_URL"},
		{"relative endpoint", func(c *Config) { c.Client.SearchPath = "search" }, "client.search_path"},
		{"zero debounce", func(c *Config) { c.Client.Debounce = 0 }, "CLIENT_DEBOUNCE"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	if got := s.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q", got)
	}
}
