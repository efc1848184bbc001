// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// application holds the long-lived components shared by the services.
type application struct {
	store   *catalog.Store
	models  *recommend.ModelStore
	engine  *recommend.Engine
	loader  *catalog.Loader
	handler http.Handler
}

// newApplication opens the stores and performs the initial catalog load.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}

	store, err := catalog.Open(ctx, cfg.Catalog.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	app.store = store

	if cfg.Recommend.CachePath != "" {
		app.models, err = recommend.OpenModelStore(cfg.Recommend.CachePath)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("open model cache: %w", err)
		}
	}

	app.engine, err = recommend.NewEngine(&recommend.Config{
		MinDF:          cfg.Recommend.MinDF,
		MaxNgram:       cfg.Recommend.MaxNgram,
		DefaultLimit:   cfg.Recommend.DefaultLimit,
		MaxLimit:       cfg.Recommend.MaxLimit,
		ResultCacheTTL: cfg.Recommend.ResultCacheTTL,
		ResultCacheMax: cfg.Recommend.ResultCacheMax,
	}, app.models, logging.WithComponent("recommend"))
	if err != nil {
		app.close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	app.loader = catalog.NewLoader(cfg.Catalog.DatasetPath, store, app.engine, logging.WithComponent("catalog"))

	start := time.Now()
	if _, err := app.loader.Reload(ctx); err != nil {
		app.close()
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}
	status := app.loader.Status()
	logging.Info().
		Int("titles", status.Titles).
		Str("checksum", status.Checksum).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	handler := api.NewHandler(app.engine, store, app.loader, cfg, logging.WithComponent("api"))
	app.handler = api.NewRouter(handler).SetupChi()
	return app, nil
}

// addServices registers the HTTP server and the catalog maintenance services.
func (a *application) addServices(tree *supervisor.SupervisorTree, cfg *config.Config) *http.Server {
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Catalog.Watch {
		tree.AddDataService(services.NewCatalogWatchService(a.loader, services.CatalogWatchConfig{
			Path:     cfg.Catalog.DatasetPath,
			Debounce: cfg.Catalog.WatchDebounce,
		}, logging.WithComponent("catalog-watch")))
		logging.Info().Str("path", cfg.Catalog.DatasetPath).Msg("Catalog watch service added")
	}

	if cfg.Catalog.RefreshInterval > 0 {
		tree.AddDataService(services.NewRefreshService(a.loader, cfg.Catalog.RefreshInterval, logging.WithComponent("catalog-refresh")))
		logging.Info().Dur("interval", cfg.Catalog.RefreshInterval).Msg("Catalog refresh service added")
	}
	return server
}

func (a *application) close() {
	if a.models != nil {
		if err := a.models.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing model cache")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}
}

// run starts the supervisor tree and blocks until ctx is canceled or the
// tree fails.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	app.addServices(tree, cfg)

	logging.Info().Msg("Starting supervisor tree")
	err = <-tree.ServeBackground(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
