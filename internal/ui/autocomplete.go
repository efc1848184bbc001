// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/tomtom215/cinematch/internal/debounce"
)

// AutocompleteOptions configures an Autocomplete.
type AutocompleteOptions struct {
	// Delay is the quiet period before a suggestion request (default 300ms).
	Delay time.Duration
	// MinQueryLength is the minimum trimmed length, in characters, that
	// triggers a request (default 2).
	MinQueryLength int
	// AfterFunc replaces the timer source; nil uses real timers.
	AfterFunc debounce.AfterFunc
}

func (o AutocompleteOptions) withDefaults() AutocompleteOptions {
	if o.Delay <= 0 {
		o.Delay = 300 * time.Millisecond
	}
	if o.MinQueryLength < 1 {
		o.MinQueryLength = 2
	}
	return o
}

// Autocomplete turns input changes into debounced suggestion requests and
// renders the latest response. Methods must be called on the scheduler's UI
// goroutine; timer fires are posted back to it.
type Autocomplete struct {
	ctx    context.Context
	api    AutocompleteAPI
	view   SuggestionView
	sched  Scheduler
	logger zerolog.Logger
	minLen int

	debouncer *debounce.Debouncer
	seq       debounce.Sequence
	inflight  context.CancelFunc
}

// NewAutocomplete creates the suggestion controller. A nil view turns
// HandleInput into a logged no-op.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAutocomplete(ctx context.Context, api AutocompleteAPI, view SuggestionView, sched Scheduler, opts AutocompleteOptions, logger zerolog.Logger) *Autocomplete {
	opts = opts.withDefaults()

	debounceOpts := []debounce.Option{
		debounce.WithDispatch(func(fn func()) { sched.Post(fn) }),
	}
	if opts.AfterFunc != nil {
		debounceOpts = append(debounceOpts, debounce.WithAfterFunc(opts.AfterFunc))
	}

	return &Autocomplete{
		ctx:       ctx,
		api:       api,
		view:      view,
		sched:     sched,
		logger:    logger,
		minLen:    opts.MinQueryLength,
		debouncer: debounce.New(opts.Delay, debounceOpts...),
	}
}

// HandleInput reacts to one change of the input's value.
func (a *Autocomplete) HandleInput(value string) {
	if a.view == nil {
		a.logger.Warn().Msg("Autocomplete list not found, ignoring input")
		return
	}

	a.debouncer.Cancel()

	query := strings.TrimSpace(value)
	if utf8.RuneCountInString(query) < a.minLen {
		a.supersede()
		a.view.ClearSuggestions()
		return
	}

	// Replies for older text no longer match the input.
	a.supersede()
	a.debouncer.Schedule(query, a.request)
}

// Dismiss cancels pending and in-flight suggestion work and clears the list.
func (a *Autocomplete) Dismiss() {
	a.debouncer.Cancel()
	a.supersede()
	if a.view != nil {
		a.view.ClearSuggestions()
	}
}

// Pending reports whether a debounce timer is waiting to fire.
func (a *Autocomplete) Pending() bool {
	return a.debouncer.Pending()
}

// request runs on the UI goroutine when the debounce timer fires.
func (a *Autocomplete) request(query string) {
	a.supersede()
	ticket := a.seq.Next()

	ctx, cancel := context.WithCancel(a.ctx)
	a.inflight = cancel

	a.sched.Go(func() {
		titles, err := a.api.FetchAutocomplete(ctx, query)
		a.sched.Post(func() {
			cancel()
			a.complete(ticket, query, titles, err)
		})
	})
}

func (a *Autocomplete) complete(ticket uint64, query string, titles []string, err error) {
	if !a.seq.IsLatest(ticket) {
		a.logger.Debug().Str("query", query).Msg("Discarding superseded suggestions")
		return
	}
	a.inflight = nil

	if err != nil {
		a.logger.Error().Err(err).Str("query", query).Msg("Error fetching autocomplete suggestions")
		return
	}
	a.view.ShowSuggestions(titles)
}

// supersede invalidates outstanding tickets and cancels the in-flight request.
func (a *Autocomplete) supersede() {
	a.seq.Invalidate()
	if a.inflight != nil {
		a.inflight()
		a.inflight = nil
	}
}
