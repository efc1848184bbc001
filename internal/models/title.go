// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package models holds the data types shared by the Cinematch server and its
// front ends: catalog titles and the JSON bodies of the /recommend, /search
// and /visualizations endpoints.
package models

import "strconv"

// Title is one row of the catalog dataset.
type Title struct {
	// Position is the row's order in the dataset (0-based, after dedupe).
	Position    int    `json:"-"`
	ShowID      string `json:"show_id,omitempty"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Director    string `json:"director,omitempty"`
	Cast        string `json:"cast,omitempty"`
	Country     string `json:"country,omitempty"`
	DateAdded   string `json:"date_added,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Duration    string `json:"duration,omitempty"`
	ListedIn    string `json:"listed_in,omitempty"`
	Description string `json:"description,omitempty"`
}

// Field names accepted by the recommendation endpoint's fields parameter.
const (
	FieldTitle       = "title"
	FieldType        = "type"
	FieldDirector    = "director"
	FieldCast        = "cast"
	FieldCountry     = "country"
	FieldDateAdded   = "date_added"
	FieldReleaseYear = "release_year"
	FieldRating      = "rating"
	FieldDuration    = "duration"
	FieldListedIn    = "listed_in"
	FieldDescription = "description"
)

// TitleFields lists every selectable field in dataset column order.
var TitleFields = []string{
	FieldTitle, FieldType, FieldDirector, FieldCast, FieldCountry, FieldDateAdded,
	FieldReleaseYear, FieldRating, FieldDuration, FieldListedIn, FieldDescription,
}

// IsTitleField reports whether name is a selectable field.
func IsTitleField(name string) bool {
	for _, f := range TitleFields {
		if f == name {
			return true
		}
	}
	return false
}

// FieldValue returns the string form of a named field, or "" for unknown names.
func (t *Title) FieldValue(name string) string {
	switch name {
	case FieldTitle:
		return t.Title
	case FieldType:
		return t.Type
	case FieldDirector:
		return t.Director
	case FieldCast:
		return t.Cast
	case FieldCountry:
		return t.Country
	case FieldDateAdded:
		return t.DateAdded
	case FieldReleaseYear:
		if t.ReleaseYear == 0 {
			return ""
		}
		return strconv.Itoa(t.ReleaseYear)
	case FieldRating:
		return t.Rating
	case FieldDuration:
		return t.Duration
	case FieldListedIn:
		return t.ListedIn
	case FieldDescription:
		return t.Description
	}
	return ""
}
