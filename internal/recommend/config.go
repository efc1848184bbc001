// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MinDF drops terms that appear in fewer titles.
	MinDF int `json:"min_df"`

	// MaxNgram is the longest word n-gram used as a feature.
	MaxNgram int `json:"max_ngram"`

	// DefaultLimit is the page size when a query does not set one.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the page size.
	MaxLimit int `json:"max_limit"`

	// ResultCacheTTL is how long a computed page is reused; 0 disables
	// the result cache.
	ResultCacheTTL time.Duration `json:"result_cache_ttl"`

	// ResultCacheMax is the number of cached pages.
	ResultCacheMax int `json:"result_cache_max"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinDF:          2,
		MaxNgram:       2,
		DefaultLimit:   10,
		MaxLimit:       100,
		ResultCacheTTL: 10 * time.Minute,
		ResultCacheMax: 1000,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MinDF < 1 {
		return fmt.Errorf("min_df must be positive, got %d", c.MinDF)
	}
	if c.MaxNgram < 1 || c.MaxNgram > 3 {
		return fmt.Errorf("max_ngram must be in [1, 3], got %d", c.MaxNgram)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.ResultCacheTTL < 0 {
		return fmt.Errorf("result_cache_ttl must be non-negative, got %v", c.ResultCacheTTL)
	}
	if c.ResultCacheTTL > 0 && c.ResultCacheMax < 1 {
		return fmt.Errorf("result_cache_max must be positive when the cache is enabled, got %d", c.ResultCacheMax)
	}
	return nil
}

// vectorizer returns the TF-IDF settings.
func (c *Config) vectorizer() algorithms.TFIDFConfig {
	return algorithms.TFIDFConfig{MinDF: c.MinDF, MaxNgram: c.MaxNgram}
}
