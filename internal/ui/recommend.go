// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tomtom215/cinematch/internal/debounce"
	"github.com/tomtom215/cinematch/internal/models"
)

// User-facing texts of the recommendation flow.
const (
	MsgEnterTitle         = "Please enter a title."
	MsgRecommendFailed    = "Error fetching recommendations."
	msgNoRecommendationsF = "No recommendations found for '%s'."
)

// NoRecommendationsMessage is the text shown when a title has no recommendations.
func NoRecommendationsMessage(title string) string {
	return fmt.Sprintf(msgNoRecommendationsF, title)
}

// State is the recommendation flow's display state.
type State int

const (
	StateReady State = iota
	StateLoading
	StateDisplaying
	StateErrorDisplayed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	case StateErrorDisplayed:
		return "error"
	default:
		return "unknown"
	}
}

// RecommendationFlow runs recommendation cycles: read the input, validate,
// show a loading indicator, fetch, render. All methods must be called on the
// scheduler's UI goroutine.
type RecommendationFlow struct {
	ctx     context.Context
	api     RecommendationsAPI
	input   InputField
	results ResultsView
	sched   Scheduler
	logger  zerolog.Logger

	seq      debounce.Sequence
	state    State
	inflight context.CancelFunc
}

// NewRecommendationFlow creates a flow. ctx bounds every request it issues.
// A nil input or results view turns Trigger into a logged no-op.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecommendationFlow(ctx context.Context, api RecommendationsAPI, input InputField, results ResultsView, sched Scheduler, logger zerolog.Logger) *RecommendationFlow {
	return &RecommendationFlow{
		ctx:     ctx,
		api:     api,
		input:   input,
		results: results,
		sched:   sched,
		logger:  logger,
	}
}

// State returns the current display state.
func (f *RecommendationFlow) State() State {
	return f.state
}

// Trigger starts a recommendation cycle for the current input value.
// A cycle started while another is in flight supersedes it.
func (f *RecommendationFlow) Trigger() {
	if f.input == nil || f.results == nil {
		f.logger.Warn().Msg("Recommendation controls not found, ignoring trigger")
		return
	}

	f.abandonInflight()
	ticket := f.seq.Next()

	title := strings.TrimSpace(f.input.Value())
	if title == "" {
		f.state = StateErrorDisplayed
		f.results.ShowMessage(MessageError, MsgEnterTitle)
		return
	}

	f.state = StateLoading
	f.results.ShowLoading()

	ctx, cancel := context.WithCancel(f.ctx)
	f.inflight = cancel

	f.sched.Go(func() {
		result, err := f.api.FetchRecommendations(ctx, title)
		f.sched.Post(func() {
			cancel()
			f.complete(ticket, title, result, err)
		})
	})
}

func (f *RecommendationFlow) complete(ticket uint64, title string, result *models.RecommendationResult, err error) {
	if !f.seq.IsLatest(ticket) {
		f.logger.Debug().Str("title", title).Msg("Discarding superseded recommendation response")
		return
	}
	f.inflight = nil

	if err != nil {
		f.state = StateErrorDisplayed
		f.logger.Error().Err(err).Str("title", title).Msg("Error fetching recommendations")
		f.results.ShowMessage(MessageError, MsgRecommendFailed)
		return
	}

	f.state = StateDisplaying
	if result == nil || len(result.Recommendations) == 0 {
		f.results.ShowMessage(MessageInfo, NoRecommendationsMessage(title))
		return
	}

	items := make([]ResultItem, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		items[i] = ResultItem{Title: rec.Title, Badge: SimilarityBadge(rec.Similarity)}
	}
	f.results.ShowRecommendations(result.Message, items)
}

func (f *RecommendationFlow) abandonInflight() {
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
}
