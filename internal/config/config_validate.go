// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/cinematch/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.ValidateClient()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.DatasetPath) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Catalog.SearchLimit < 1 || c.Catalog.SearchLimit > 100 {
		return fmt.Errorf("SEARCH_LIMIT must be between 1 and 100, got %d", c.Catalog.SearchLimit)
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH must not be negative")
	}
	if c.Catalog.Watch && c.Catalog.WatchDebounce <= 0 {
		return fmt.Errorf("CATALOG_WATCH_DEBOUNCE must be positive when CATALOG_WATCH=true")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MinDF < 1 {
		return fmt.Errorf("RECOMMEND_MIN_DF must be at least 1, got %d", r.MinDF)
	}
	if r.MaxNgram < 1 || r.MaxNgram > 3 {
		return fmt.Errorf("RECOMMEND_MAX_NGRAM must be between 1 and 3, got %d", r.MaxNgram)
	}
	if r.MaxLimit < 1 {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be at least 1, got %d", r.MaxLimit)
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("RECOMMEND_LIMIT must be between 1 and %d, got %d", r.MaxLimit, r.DefaultLimit)
	}
	if r.ResultCacheMax < 0 {
		return fmt.Errorf("RESULT_CACHE_MAX must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// ValidateClient checks the client section only. Front ends call this
// after applying command-line overrides.
func (c *Config) ValidateClient() error {
	cl := c.Client
	u, err := url.Parse(cl.BaseURL)
	if err != nil {
		return fmt.Errorf("CINEMATCH_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CINEMATCH_URL must use http or https, got %q", cl.BaseURL)
	}
	for name, path := range map[string]string{
		"client.recommend_path":      cl.RecommendPath,
		"client.search_path":         cl.SearchPath,
		"client.visualizations_path": cl.VisualizationsPath,
	} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%s must start with '/', got %q", name, path)
		}
	}
	if cl.Timeout < 0 {
		return fmt.Errorf("CLIENT_TIMEOUT must not be negative")
	}
	if cl.Debounce <= 0 {
		return fmt.Errorf("CLIENT_DEBOUNCE must be positive, got %s", cl.Debounce)
	}
	if cl.MinQueryLength < 1 {
		return fmt.Errorf("CLIENT_MIN_QUERY must be at least 1, got %d", cl.MinQueryLength)
	}
	if cl.Breaker.Enabled && (cl.Breaker.FailureRatio <= 0 || cl.Breaker.FailureRatio > 1) {
		return fmt.Errorf("client.breaker.failure_ratio must be in (0, 1], got %v", cl.Breaker.FailureRatio)
	}
	return nil
}
