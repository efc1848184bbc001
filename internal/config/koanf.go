// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AssetsDir:       "web/assets",
		},
		Catalog: CatalogConfig{
			DatasetPath:     "data/netflix_titles.csv",
			DatabasePath:    "",
			Watch:           true,
			WatchDebounce:   500 * time.Millisecond,
			RefreshInterval: 0,
			SearchLimit:     10,
		},
		Recommend: RecommendConfig{
			MinDF:          2,
			MaxNgram:       2,
			DefaultLimit:   10,
			MaxLimit:       100,
			CachePath:      "data/model-cache",
			ResultCacheTTL: 10 * time.Minute,
			ResultCacheMax: 1000,
			RequestTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Client: ClientConfig{
			BaseURL:            "http://localhost:5000",
			RecommendPath:      "/recommend",
			SearchPath:         "/search",
			VisualizationsPath: "/visualizations",
			Timeout:            0,
			Debounce:           300 * time.Millisecond,
			MinQueryLength:     2,
			Breaker: BreakerConfig{
				Enabled:      true,
				MinRequests:  10,
				FailureRatio: 0.6,
				Interval:     time.Minute,
				OpenTimeout:  30 * time.Second,
			},
		},
	}
}

// Default returns a copy of the built-in defaults.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using koanf with layered sources:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: explicit mappings in envTransformFunc
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile loads configuration with the given YAML file as the file layer.
// Environment variables still take precedence.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, CLIENT_DEBOUNCE -> client.debounce
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"http_port":              "server.port",
	"http_host":              "server.host",
	"server_timeout":         "server.timeout",
	"shutdown_timeout":       "server.shutdown_timeout",
	"assets_dir":             "server.assets_dir",
	"dataset_path":           "catalog.dataset_path",
	"duckdb_path":            "catalog.database_path",
	"catalog_watch":          "catalog.watch",
	"catalog_watch_debounce": "catalog.watch_debounce",
	"catalog_refresh":        "catalog.refresh_interval",
	"search_limit":           "catalog.search_limit",
	"recommend_min_df":       "recommend.min_df",
	"recommend_max_ngram":    "recommend.max_ngram",
	"recommend_limit":        "recommend.default_limit",
	"recommend_max_limit":    "recommend.max_limit",
	"model_cache_path":       "recommend.cache_path",
	"result_cache_ttl":       "recommend.result_cache_ttl",
	"result_cache_max":       "recommend.result_cache_max",
	"recommend_timeout":      "recommend.request_timeout",
	"rate_limit_reqs":        "security.rate_limit_reqs",
	"rate_limit_window":      "security.rate_limit_window",
	"disable_rate_limit":     "security.rate_limit_disabled",
	"cors_origins":           "security.cors_origins",
	"log_level":              "logging.level",
	"log_format":             "logging.format",
	"log_caller":             "logging.caller",
	"cinematch_url":          "client.base_url",
	"client_timeout":         "client.timeout",
	"client_debounce":        "client.debounce",
	"client_min_query":       "client.min_query_length",
	"client_breaker":         "client.breaker.enabled",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// does not leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile invokes callback whenever the config file changes.
// The caller is responsible for reloading and swapping configuration safely.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
