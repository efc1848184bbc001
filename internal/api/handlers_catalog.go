// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
)

// MessageSuccess is the message of a visualization dataset.
const MessageSuccess = "Success"

// Search handles GET /search?q=
// Returns up to the configured number of titles containing q, in catalog order.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	titles, err := h.catalog.Search(ctx, query, h.config.Catalog.SearchLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("query", sanitizeLogValue(query)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Search failed")
		respondJSON(w, http.StatusInternalServerError, []string{})
		return
	}
	if titles == nil {
		titles = []string{}
	}
	respondJSON(w, http.StatusOK, titles)
}

// Visualizations handles GET /visualizations
// Returns the genre, type and country distributions of the catalog.
func (h *Handler) Visualizations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	ds, err := h.catalog.Visualizations(ctx)
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Visualization query failed")
		respondJSON(w, http.StatusInternalServerError, messageResponse{
			Message: "Error generating visualizations: " + err.Error(),
		})
		return
	}

	out := *ds
	out.Message = MessageSuccess
	respondJSON(w, http.StatusOK, &out)
}
