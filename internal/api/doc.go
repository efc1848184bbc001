// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP layer of Cinematch.

Endpoints:

  - GET /recommend?title=&limit=&offset=&type=&fields=
    Titles similar to the given one. 200 returns
    {"message": "Similar Movies", "recommendations": [...], "total": n};
    errors return {"message": ..., "recommendations": []} with 400 for a
    missing title or invalid parameters, 404 for an unknown title or one
    without similar titles, 503 before the first model is built and 500
    otherwise.
  - GET /search?q=
    A JSON array of matching titles, empty for an empty query.
  - GET /visualizations
    Genre, type and country distributions. Object key order is the
    ranking order.
  - GET /api/v1/health/live, GET /api/v1/health/ready
  - GET /metrics (Prometheus)
  - GET / and /assets/* (front-end page and WebAssembly build)

Middleware Stack:

Request ID and logging context, real IP, panic recovery, CORS (go-chi/cors),
compression and per-IP rate limiting (go-chi/httprate). The recommendation
endpoints also record Prometheus request metrics labelled by route pattern.

Usage:

	handler := api.NewHandler(engine, store, loader, cfg, logger)
	router := api.NewRouter(handler)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
