// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/cinematch/internal/debounce"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

var errBackend = errors.New("backend unavailable")

// manualScheduler queues posted closures and spawned work so tests decide
// when each runs, including completing requests out of order.
type manualScheduler struct {
	posted  []func()
	spawned []func()
}

func (s *manualScheduler) Post(fn func()) bool {
	s.posted = append(s.posted, fn)
	return true
}

func (s *manualScheduler) Go(fn func()) {
	s.spawned = append(s.spawned, fn)
}

// drain runs posted closures, including ones posted while draining.
func (s *manualScheduler) drain() {
	for len(s.posted) > 0 {
		fn := s.posted[0]
		s.posted = s.posted[1:]
		fn()
	}
}

// complete runs spawned work i (the fetch) and then drains its completion.
func (s *manualScheduler) complete(i int) {
	s.spawned[i]()
	s.drain()
}

func fakeAfterFunc(clock *testinfra.FakeClock) debounce.AfterFunc {
	return func(d time.Duration, f func()) debounce.Timer {
		return clock.AfterFunc(d, f)
	}
}

type fakeInput struct {
	value string
}

func (f *fakeInput) Value() string         { return f.value }
func (f *fakeInput) SetValue(value string) { f.value = value }

// fakeResults records the last thing shown and the number of calls.
type fakeResults struct {
	loading  int
	kind     MessageKind
	message  string
	heading  string
	items    []ResultItem
	rendered int
}

func (f *fakeResults) ShowLoading() {
	f.loading++
	f.message, f.heading, f.items = "", "", nil
}

func (f *fakeResults) ShowMessage(kind MessageKind, text string) {
	f.kind, f.message = kind, text
	f.heading, f.items = "", nil
}

func (f *fakeResults) ShowRecommendations(heading string, items []ResultItem) {
	f.rendered++
	f.heading, f.items = heading, items
	f.message = ""
}

type fakeSuggestions struct {
	shown   [][]string
	current []string
	visible bool
	cleared int
}

func (f *fakeSuggestions) ShowSuggestions(titles []string) {
	f.shown = append(f.shown, titles)
	f.current = titles
	f.visible = len(titles) > 0
}

func (f *fakeSuggestions) ClearSuggestions() {
	f.cleared++
	f.current = nil
	f.visible = false
}

type fakeVisualizations struct {
	loading   int
	message   string
	heading   string
	charts    []Chart
	renderErr error
}

func (f *fakeVisualizations) ShowLoading() { f.loading++ }

func (f *fakeVisualizations) ShowMessage(_ MessageKind, text string) { f.message = text }

func (f *fakeVisualizations) RenderCharts(heading string, charts []Chart) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.heading, f.charts = heading, charts
	return nil
}

type recommendCall struct {
	ctx   context.Context
	title string
}

type autocompleteCall struct {
	ctx   context.Context
	query string
}

// fakeAPI answers from scripted functions and records every call. It is
// only used from the test goroutine.
type fakeAPI struct {
	recommend      func(title string) (*models.RecommendationResult, error)
	autocomplete   func(query string) ([]string, error)
	visualizations func() (*models.VisualizationDataset, error)

	recommendCalls     []recommendCall
	autocompleteCalls  []autocompleteCall
	visualizationCalls int
}

func (f *fakeAPI) FetchRecommendations(ctx context.Context, title string) (*models.RecommendationResult, error) {
	f.recommendCalls = append(f.recommendCalls, recommendCall{ctx: ctx, title: title})
	if f.recommend == nil {
		return &models.RecommendationResult{Message: "Similar Movies"}, nil
	}
	return f.recommend(title)
}

func (f *fakeAPI) FetchAutocomplete(ctx context.Context, query string) ([]string, error) {
	f.autocompleteCalls = append(f.autocompleteCalls, autocompleteCall{ctx: ctx, query: query})
	if f.autocomplete == nil {
		return []string{}, nil
	}
	return f.autocomplete(query)
}

func (f *fakeAPI) FetchVisualizations(context.Context) (*models.VisualizationDataset, error) {
	f.visualizationCalls++
	if f.visualizations == nil {
		return sampleDataset(), nil
	}
	return f.visualizations()
}

func sampleDataset() *models.VisualizationDataset {
	return &models.VisualizationDataset{
		GenreDistribution: models.Distribution{{Label: "Dramas", Count: 12}, {Label: "Comedies", Count: 7}},
		TypeDistribution:  models.Distribution{{Label: "Movie", Count: 30}, {Label: "TV Show", Count: 11}},
		TopCountries:      models.Distribution{{Label: "United States", Count: 20}, {Label: "India", Count: 9}},
		Message:           "Success",
	}
}
