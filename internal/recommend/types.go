// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"strconv"
	"strings"
)

// MessageSimilar is the message of a successful result.
const MessageSimilar = "Similar Movies"

var (
	// ErrTitleRequired is returned for an empty or blank title.
	ErrTitleRequired = errors.New("title required")
	// ErrTitleNotFound is returned when the title is not in the catalog.
	ErrTitleNotFound = errors.New("title not found")
	// ErrNotReady is returned before the first model is built.
	ErrNotReady = errors.New("recommendation model not ready")
)

// Query is one recommendation request.
type Query struct {
	// Title is matched against the catalog after NormalizeTitle.
	Title string

	// Limit is the page size; 0 means the configured default.
	Limit int

	// Offset skips that many recommendations.
	Offset int

	// Type keeps only titles of this content type, case-insensitively.
	Type string

	// Fields are extra title fields copied into each recommendation.
	Fields []string
}

// cacheKey identifies the page a query resolves to.
func (q *Query) cacheKey(normalized string) string {
	var b strings.Builder
	b.WriteString(normalized)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(q.Limit))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(q.Offset))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(q.Type))
	b.WriteByte(0)
	b.WriteString(strings.Join(q.Fields, ","))
	return b.String()
}

// Status describes the loaded model.
type Status struct {
	Ready      bool   `json:"ready"`
	Titles     int    `json:"titles"`
	Vocabulary int    `json:"vocabulary"`
	Checksum   string `json:"checksum,omitempty"`
	Version    int    `json:"version"`
}
