// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Messages of the /recommend error responses.
const (
	MessageTitleRequired = "Title required"
	MessageNotReady      = "Recommendations are not ready yet"
)

// RecommendRequest holds the validated query parameters of /recommend.
type RecommendRequest struct {
	Title  string   `validate:"max=500"`
	Limit  int      `validate:"min=0,max=1000"`
	Offset int      `validate:"min=0,max=100000"`
	Type   string   `validate:"max=64"`
	Fields []string `validate:"max=11,dive,recfield"`
}

// NotFoundMessage is the message for a title without recommendations.
func NotFoundMessage(rawTitle string) string {
	return fmt.Sprintf("'%s' not found", rawTitle)
}

// Recommend handles GET /recommend?title=&limit=&offset=&type=&fields=
// Returns titles similar to the given one, most similar first.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("title"))
	if raw == "" {
		respondRecommendError(w, http.StatusBadRequest, MessageTitleRequired)
		return
	}

	req, err := parseRecommendRequest(r, raw)
	if err != nil {
		respondRecommendError(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("title", sanitizeLogValue(raw)).
		Int("limit", req.Limit).
		Int("offset", req.Offset).
		Str("type", sanitizeLogValue(req.Type)).
		Msg("Recommendation request")

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	res, err := h.engine.Recommend(ctx, recommend.Query{
		Title:  req.Title,
		Limit:  req.Limit,
		Offset: req.Offset,
		Type:   req.Type,
		Fields: req.Fields,
	})
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, res)
	case errors.Is(err, recommend.ErrTitleRequired):
		respondRecommendError(w, http.StatusBadRequest, MessageTitleRequired)
	case errors.Is(err, recommend.ErrTitleNotFound):
		logging.Ctx(r.Context()).Debug().Str("title", sanitizeLogValue(raw)).Msg("No recommendations")
		respondRecommendError(w, http.StatusNotFound, NotFoundMessage(raw))
	case errors.Is(err, recommend.ErrNotReady):
		respondRecommendError(w, http.StatusServiceUnavailable, MessageNotReady)
	default:
		logging.Ctx(r.Context()).Error().
			Str("title", sanitizeLogValue(raw)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Recommendation failed")
		respondRecommendError(w, http.StatusInternalServerError, "Server error: "+err.Error())
	}
}

func parseRecommendRequest(r *http.Request, raw string) (*RecommendRequest, error) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		return nil, err
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		return nil, err
	}

	req := &RecommendRequest{
		Title:  raw,
		Limit:  limit,
		Offset: offset,
		Type:   strings.TrimSpace(r.URL.Query().Get("type")),
		Fields: listParam(r, "fields"),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}
