// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads Cinematch configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file (CONFIG_PATH or config.yaml), then environment variables. Later
// layers win. The same Config is used by the server (server, catalog,
// recommend, security, logging sections) and by the front ends (client
// section).
//
// Example config.yaml:
//
//	server:
//	  port: 5000
//	catalog:
//	  dataset_path: data/netflix_titles.csv
//	  watch: true
//	client:
//	  base_url: http://localhost:5000
//	  debounce: 300ms
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Client    ClientConfig    `koanf:"client"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// AssetsDir holds the WebAssembly front end (cinematch.wasm, wasm_exec.js).
	// Empty disables the /assets route.
	AssetsDir string `koanf:"assets_dir"`
}

// CatalogConfig holds dataset and title store settings.
type CatalogConfig struct {
	// DatasetPath is the titles CSV the catalog is loaded from.
	DatasetPath string `koanf:"dataset_path"`
	// DatabasePath is the DuckDB file; empty keeps the store in memory.
	DatabasePath string `koanf:"database_path"`
	// Watch reloads the catalog when the dataset file changes.
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
	// RefreshInterval re-checks the dataset periodically; 0 disables.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	SearchLimit     int           `koanf:"search_limit"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	MinDF        int `koanf:"min_df"`
	MaxNgram     int `koanf:"max_ngram"`
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
	// CachePath is the badger directory for computed models; empty disables.
	CachePath      string        `koanf:"cache_path"`
	ResultCacheTTL time.Duration `koanf:"result_cache_ttl"`
	ResultCacheMax int           `koanf:"result_cache_max"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ClientConfig holds settings for the front ends talking to the API.
type ClientConfig struct {
	BaseURL            string `koanf:"base_url"`
	RecommendPath      string `koanf:"recommend_path"`
	SearchPath         string `koanf:"search_path"`
	VisualizationsPath string `koanf:"visualizations_path"`
	// Timeout bounds each request; 0 means no timeout.
	Timeout        time.Duration `koanf:"timeout"`
	Debounce       time.Duration `koanf:"debounce"`
	MinQueryLength int           `koanf:"min_query_length"`
	Breaker        BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the client circuit breaker.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`
	// MinRequests is the number of requests in an interval before the
	// failure ratio is considered.
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
	Interval     time.Duration `koanf:"interval"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
