// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics defines the Prometheus metrics exported on /metrics.
//
// Metrics are registered on the default registry through promauto:
//   - API endpoint latency, throughput and in-flight requests
//   - Recommendation outcomes and latency
//   - Model build time and model/result cache efficiency
//   - Catalog size and reloads
//   - API client latency and circuit breaker state
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "not_found", "invalid", "not_ready", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent ranking similar titles",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	ModelBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_model_build_duration_seconds",
			Help:    "Time spent fitting the TF-IDF model",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_vocabulary_size",
			Help: "Number of terms in the current TF-IDF vocabulary",
		},
	)

	ModelCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_cache_lookups_total",
			Help: "Model cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_result_cache_lookups_total",
			Help: "Recommendation result cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Catalog Metrics
	CatalogTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_titles",
			Help: "Number of titles currently loaded",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Catalog reload attempts by result",
		},
		[]string{"result"}, // "loaded", "unchanged", "error"
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of DuckDB catalog queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// API Client Metrics
	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Front-end API client request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		RecommendationDuration.Observe(duration.Seconds())
	}
}

// RecordModelBuild records a model fit and the resulting vocabulary size.
func RecordModelBuild(duration time.Duration, vocabulary int) {
	ModelBuildDuration.Observe(duration.Seconds())
	ModelVocabularySize.Set(float64(vocabulary))
}

// RecordCatalogReload records a reload attempt and, when loaded, the new size.
func RecordCatalogReload(result string, titles int) {
	CatalogReloads.WithLabelValues(result).Inc()
	if result == "loaded" {
		CatalogTitles.Set(float64(titles))
	}
}

// RecordCatalogQuery records a DuckDB catalog query.
func RecordCatalogQuery(operation string, duration time.Duration) {
	CatalogQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordClientRequest records one API client call.
func RecordClientRequest(endpoint string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ClientRequestDuration.WithLabelValues(endpoint, result).Observe(duration.Seconds())
}

// CacheResult converts a hit flag to the cache metric label.
func CacheResult(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
