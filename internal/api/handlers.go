// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommender answers recommendation queries. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, q recommend.Query) (*models.RecommendationResult, error)
	Ready() bool
	Status() recommend.Status
}

// Catalog serves title search and insights. *catalog.Store implements it.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	Visualizations(ctx context.Context) (*models.VisualizationDataset, error)
	Ping(ctx context.Context) error
}

// LoaderStatus reports the last dataset load. *catalog.Loader implements it.
type LoaderStatus interface {
	Status() catalog.Status
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: /recommend
//   - handlers_catalog.go: /search and /visualizations
//   - handlers_health.go: liveness and readiness probes
//   - handlers_helpers.go: response and parameter helpers
type Handler struct {
	engine    Recommender
	catalog   Catalog
	loader    LoaderStatus
	config    *config.Config
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates an API handler. loader may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine Recommender, cat Catalog, loader LoaderStatus, cfg *config.Config, logger zerolog.Logger) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{
		engine:    engine,
		catalog:   cat,
		loader:    loader,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// requestContext bounds a handler's work by the configured request timeout.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.config.Recommend.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.config.Recommend.RequestTimeout)
}
