// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"strings"
	"unicode"

	"github.com/tomtom215/cinematch/internal/models"
)

// unknownValue stands in for missing text fields in the model features.
const unknownValue = "unknown"

// NormalizeTitle returns the lookup key of a title: lowercased and trimmed,
// characters other than letters, digits, underscore, whitespace and '&'
// removed, whitespace runs collapsed to one space, and '&' spelled "and".
//
// Removal happens after trimming, so "Dark!" and "Dark" match while a
// character removed at the edge can leave a single trailing space.
func NormalizeTitle(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		case r == '&':
			b.WriteString("and")
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			b.WriteRune(r)
		default:
			continue
		}
		inSpace = false
	}
	return b.String()
}

// Features returns the text the model is fitted on: director, cast, genres
// and description, lowercased, with missing values as "unknown".
func Features(t *models.Title) string {
	parts := [...]string{t.Director, t.Cast, t.ListedIn, t.Description}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			parts[i] = unknownValue
			continue
		}
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts[:], " ")
}
