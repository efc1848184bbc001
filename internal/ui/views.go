// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinematch/internal/models"
)

// Element IDs the browser page provides. Other front ends use them only as names.
const (
	ElementRecommendButton = "recommend-btn"
	ElementInput           = "movie-input"
	ElementResults         = "results"
	ElementSuggestions     = "autocomplete-list"
	ElementVisualizations  = "visualizations"
	CanvasGenre            = "genreChart"
	CanvasType             = "typeChart"
	CanvasCountry          = "countryChart"
)

// RecommendationsAPI fetches recommendations for a title.
type RecommendationsAPI interface {
	FetchRecommendations(ctx context.Context, title string) (*models.RecommendationResult, error)
}

// AutocompleteAPI fetches title suggestions for a partial query.
type AutocompleteAPI interface {
	FetchAutocomplete(ctx context.Context, query string) ([]string, error)
}

// VisualizationsAPI fetches the aggregate chart dataset.
type VisualizationsAPI interface {
	FetchVisualizations(ctx context.Context) (*models.VisualizationDataset, error)
}

// API is everything the front end asks of the server. *client.Client implements it.
type API interface {
	RecommendationsAPI
	AutocompleteAPI
	VisualizationsAPI
}

// InputField is the title input.
type InputField interface {
	Value() string
	SetValue(value string)
}

// MessageKind distinguishes error text from informational text.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

func (k MessageKind) String() string {
	if k == MessageError {
		return "error"
	}
	return "info"
}

// ResultItem is one rendered recommendation.
type ResultItem struct {
	Title string
	// Badge is "Similarity: 87.00%", or "" when the similarity is zero or absent.
	Badge string
}

// ResultsView is the results region. Each call replaces the region's
// content, including any loading indicator.
type ResultsView interface {
	ShowLoading()
	ShowMessage(kind MessageKind, text string)
	ShowRecommendations(heading string, items []ResultItem)
}

// SuggestionView is the autocomplete list. ShowSuggestions with an empty
// slice hides the list.
type SuggestionView interface {
	ShowSuggestions(titles []string)
	ClearSuggestions()
}

// VisualizationView is the insights region and its chart renderer.
type VisualizationView interface {
	ShowLoading()
	ShowMessage(kind MessageKind, text string)
	RenderCharts(heading string, charts []Chart) error
}

// FormatSimilarity renders a similarity in [0, 1] as a percentage with two decimals.
func FormatSimilarity(similarity float64) string {
	return fmt.Sprintf("%.2f%%", similarity*100)
}

// SimilarityBadge returns the badge text for a similarity, or "" when it is zero.
func SimilarityBadge(similarity float64) string {
	if similarity == 0 {
		return ""
	}
	return "Similarity: " + FormatSimilarity(similarity)
}
