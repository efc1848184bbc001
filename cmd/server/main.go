// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main is the entry point for the Cinematch server.
//
// The server loads a title catalog from CSV into DuckDB, fits a TF-IDF model
// over the titles and serves recommendations, title search and catalog
// insights over HTTP, together with the browser front end.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (koanf)
//  2. Catalog store: DuckDB, in memory unless catalog.database_path is set
//  3. Model cache: BadgerDB at recommend.cache_path (optional)
//  4. Initial catalog load and model fit; failure is fatal
//  5. Supervisor tree: HTTP server, catalog watcher, periodic refresh
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for server.shutdown_timeout before the stores close.
//
// # Example Usage
//
//	export DATASET_PATH=data/netflix_titles.csv
//	export HTTP_PORT=5000
//	./cinematch-server
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	api.Version = version

	logging.Info().
		Str("version", version).
		Str("dataset", cfg.Catalog.DatasetPath).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Cinematch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logging.Fatal().Err(err).Msg("Cinematch stopped with an error")
	}
	logging.Info().Msg("Cinematch stopped")
}
