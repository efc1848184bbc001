// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: UUID-based request tracking, propagated into the logging
    context so request log lines carry request_id
  - Prometheus Metrics: request count, latency and in-flight gauge per
    route pattern

Both are written as func(http.HandlerFunc) http.HandlerFunc and adapted to
chi's r.Use by the api package.
*/
package middleware
