// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tomtom215/cinematch/internal/models"
)

// Texts of the insights region.
const (
	InsightsHeading     = "Data Insights"
	MsgInsightsFailed   = "Error loading visualizations."
	chartDatasetLabel   = "Number of Titles"
	genreChartColor     = "rgba(75, 192, 192, 0.6)"
	countryChartColor   = "rgba(255, 159, 64, 0.6)"
	typeChartFirstColor = "#FF6384"
	typeChartOtherColor = "#36A2EB"
)

// ChartKind is the chart type handed to the renderer.
type ChartKind string

const (
	ChartBar           ChartKind = "bar"
	ChartPie           ChartKind = "pie"
	ChartHorizontalBar ChartKind = "horizontalBar"
)

// Chart describes one chart independently of the rendering library.
type Chart struct {
	CanvasID string
	Kind     ChartKind
	// Label names the dataset (bar charts); empty for pie charts.
	Label  string
	Labels []string
	Values []int
	// Colors holds one color for the whole dataset, or one per slice.
	Colors []string
	// BeginAtZero pins the value axis at zero.
	BeginAtZero bool
}

// BuildCharts maps the dataset to the three insight charts, keeping the
// dataset's label order.
func BuildCharts(ds *models.VisualizationDataset) []Chart {
	return []Chart{
		{
			CanvasID:    CanvasGenre,
			Kind:        ChartBar,
			Label:       chartDatasetLabel,
			Labels:      ds.GenreDistribution.Labels(),
			Values:      ds.GenreDistribution.Counts(),
			Colors:      []string{genreChartColor},
			BeginAtZero: true,
		},
		{
			CanvasID: CanvasType,
			Kind:     ChartPie,
			Labels:   ds.TypeDistribution.Labels(),
			Values:   ds.TypeDistribution.Counts(),
			Colors:   []string{typeChartFirstColor, typeChartOtherColor},
		},
		{
			CanvasID:    CanvasCountry,
			Kind:        ChartHorizontalBar,
			Label:       chartDatasetLabel,
			Labels:      ds.TopCountries.Labels(),
			Values:      ds.TopCountries.Counts(),
			Colors:      []string{countryChartColor},
			BeginAtZero: true,
		},
	}
}

// VisualizationLoader fetches the insights dataset once and renders it.
// Methods must be called on the scheduler's UI goroutine.
type VisualizationLoader struct {
	ctx    context.Context
	api    VisualizationsAPI
	view   VisualizationView
	sched  Scheduler
	logger zerolog.Logger

	started bool
}

// NewVisualizationLoader creates the loader. A nil view makes Load a no-op.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewVisualizationLoader(ctx context.Context, api VisualizationsAPI, view VisualizationView, sched Scheduler, logger zerolog.Logger) *VisualizationLoader {
	return &VisualizationLoader{ctx: ctx, api: api, view: view, sched: sched, logger: logger}
}

// Load fetches and renders the charts. Only the first call does anything.
func (v *VisualizationLoader) Load() {
	if v.started {
		return
	}
	v.started = true

	if v.view == nil {
		v.logger.Debug().Msg("Visualization region not found, skipping insights")
		return
	}

	v.view.ShowLoading()
	v.sched.Go(func() {
		ds, err := v.api.FetchVisualizations(v.ctx)
		v.sched.Post(func() { v.complete(ds, err) })
	})
}

func (v *VisualizationLoader) complete(ds *models.VisualizationDataset, err error) {
	if err != nil {
		v.logger.Error().Err(err).Msg("Error loading visualizations")
		v.view.ShowMessage(MessageError, MsgInsightsFailed)
		return
	}
	if err := v.view.RenderCharts(InsightsHeading, BuildCharts(ds)); err != nil {
		v.logger.Error().Err(err).Msg("Error rendering visualizations")
		v.view.ShowMessage(MessageError, MsgInsightsFailed)
	}
}
