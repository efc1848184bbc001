// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package ui is the presentation-independent core of the Cinematch front end.
//
// The browser build (cmd/web) and the terminal shell (cmd/cinematch) both
// drive the same App; they only differ in the views they plug in:
//
//	app := ui.NewApp(ctx, apiClient, ui.Views{
//	    Input:          input,
//	    Results:        results,
//	    Suggestions:    suggestions,
//	    Visualizations: insights,
//	}, ui.Options{Delay: 300 * time.Millisecond, MinQueryLength: 2}, logger)
//	go app.Run(ctx)
//	app.Start()                  // page ready: load insights once
//	app.KeyUp("a", "Da")         // keystroke: debounced suggestions
//	app.KeyUp("Enter", "Dark")   // Enter: recommendation cycle
//	app.SelectSuggestion("Dark") // click on a suggestion
//
// Event methods may be called from any goroutine. They post to the App's
// event loop, so controller state is only ever touched by one goroutine.
// Network calls run off the loop and post their completion back; every
// response carries a sequence ticket and is dropped if a newer request has
// been issued since.
package ui

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tomtom215/cinematch/internal/debounce"
)

// KeyEnter is the key name that triggers a recommendation cycle.
const KeyEnter = "Enter"

// Views groups the presentation elements. Any of them may be nil; the
// operations that need a missing element are logged no-ops.
type Views struct {
	Input          InputField
	Results        ResultsView
	Suggestions    SuggestionView
	Visualizations VisualizationView
}

// Options configures an App.
type Options struct {
	Delay          time.Duration
	MinQueryLength int
	QueueSize      int
	AfterFunc      debounce.AfterFunc
}

// App wires the recommendation flow, autocomplete and insights loader to
// one event loop.
type App struct {
	loop          *Loop
	sched         Scheduler
	views         Views
	flow          *RecommendationFlow
	autocomplete  *Autocomplete
	visualization *VisualizationLoader
}

// NewApp creates the front-end core. ctx bounds every request the App issues.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewApp(ctx context.Context, api API, views Views, opts Options, logger zerolog.Logger) *App {
	loop := NewLoop(opts.QueueSize)
	return newApp(ctx, api, views, opts, loop, loop, logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, api API, views Views, opts Options, loop *Loop, sched Scheduler, logger zerolog.Logger) *App {
	return &App{
		loop:  loop,
		sched: sched,
		views: views,
		flow: NewRecommendationFlow(ctx, api, views.Input, views.Results, sched,
			logger.With().Str("component", "recommend").Logger()),
		autocomplete: NewAutocomplete(ctx, api, views.Suggestions, sched, AutocompleteOptions{
			Delay:          opts.Delay,
			MinQueryLength: opts.MinQueryLength,
			AfterFunc:      opts.AfterFunc,
		}, logger.With().Str("component", "autocomplete").Logger()),
		visualization: NewVisualizationLoader(ctx, api, views.Visualizations, sched,
			logger.With().Str("component", "insights").Logger()),
	}
}

// Run processes events until ctx is cancelled or Stop is called.
func (a *App) Run(ctx context.Context) error {
	return a.loop.Run(ctx)
}

// Stop stops the event loop.
func (a *App) Stop() {
	a.loop.Stop()
}

// Drain waits for queued events and in-flight requests to finish and
// render. Call it before Stop to keep the last cycle's output.
func (a *App) Drain(ctx context.Context) error {
	return a.loop.Drain(ctx)
}

// Do runs fn on the event loop and waits for it. Views use it to read
// state consistently.
func (a *App) Do(ctx context.Context, fn func()) error {
	return a.loop.Do(ctx, fn)
}

// Start loads the insights charts. Later calls do nothing.
func (a *App) Start() {
	a.sched.Post(a.visualization.Load)
}

// Recommend handles activation of the recommend button.
func (a *App) Recommend() {
	a.sched.Post(a.flow.Trigger)
}

// KeyUp handles a key release in the input; value is the input's value
// after the key. Enter starts a recommendation cycle, any other key feeds
// autocomplete.
func (a *App) KeyUp(key, value string) {
	if key == KeyEnter {
		a.Recommend()
		return
	}
	a.Input(value)
}

// Input handles a change of the input's value.
func (a *App) Input(value string) {
	a.sched.Post(func() { a.autocomplete.HandleInput(value) })
}

// SelectSuggestion puts title into the input, closes the suggestion list and
// starts a recommendation cycle for it.
func (a *App) SelectSuggestion(title string) {
	a.sched.Post(func() {
		if a.views.Input != nil {
			a.views.Input.SetValue(title)
		}
		a.autocomplete.Dismiss()
		a.flow.Trigger()
	})
}

// State returns the recommendation flow's state. Call it from the loop (via Do).
func (a *App) State() State {
	return a.flow.State()
}
