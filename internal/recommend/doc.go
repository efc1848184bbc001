// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements content-based title recommendations.
//
// # Model
//
// Each title is described by its director, cast, genres and description.
// The descriptions are vectorized with TF-IDF (English stop words removed,
// unigrams and bigrams, terms in at least two titles) and titles are
// compared by cosine similarity. See the algorithms subpackage.
//
// # Lookup
//
// Titles are matched after NormalizeTitle, so "Carole & Tuesday",
// "carole and tuesday" and " CAROLE & TUESDAY!" name the same title.
//
// # Caching
//
// Fitted models are stored in BadgerDB keyed by the dataset checksum and
// the vectorizer settings, so restarting over an unchanged dataset skips
// the fit. Computed pages are kept in a TTL LRU that is purged on every
// rebuild.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Rebuild(ctx, titles, checksum); err != nil {
//	    return err
//	}
//	res, err := engine.Recommend(ctx, recommend.Query{Title: "Sherlock", Limit: 5})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Rebuilds are serialized and swap
// in a complete snapshot; queries never block on a rebuild.
package recommend
