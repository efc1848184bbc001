// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the validator in a thread-safe singleton (struct info is
// cached after the first use) and translates failures into short messages.
//
// # Custom Tags
//
//   - recfield: the value names a title field that can be requested in
//     recommendation results (see models.TitleFields). Use with dive on
//     slices.
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    Title  string   `validate:"required,max=500"`
//	    Limit  int      `validate:"min=0,max=1000"`
//	    Fields []string `validate:"max=11,dive,recfield"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Error())
//	    return
//	}
package validation
