// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// Recommendation is one entry of a recommendation result.
// Similarity is the cosine similarity in [0, 1]; zero is omitted.
// The remaining fields are only present when requested.
type Recommendation struct {
	Title       string  `json:"title"`
	Similarity  float64 `json:"similarity,omitempty"`
	Type        string  `json:"type,omitempty"`
	Director    string  `json:"director,omitempty"`
	Cast        string  `json:"cast,omitempty"`
	Country     string  `json:"country,omitempty"`
	DateAdded   string  `json:"date_added,omitempty"`
	ReleaseYear int     `json:"release_year,omitempty"`
	Rating      string  `json:"rating,omitempty"`
	Duration    string  `json:"duration,omitempty"`
	ListedIn    string  `json:"listed_in,omitempty"`
	Description string  `json:"description,omitempty"`
}

// RecommendationResult is the body of GET /recommend.
type RecommendationResult struct {
	Message         string           `json:"message"`
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total,omitempty"`
}

// NewRecommendation copies the requested fields of t into a Recommendation.
// The title is always included.
func NewRecommendation(t *Title, similarity float64, fields []string) Recommendation {
	rec := Recommendation{Title: t.Title, Similarity: similarity}
	for _, f := range fields {
		switch f {
		case FieldType:
			rec.Type = t.Type
		case FieldDirector:
			rec.Director = t.Director
		case FieldCast:
			rec.Cast = t.Cast
		case FieldCountry:
			rec.Country = t.Country
		case FieldDateAdded:
			rec.DateAdded = t.DateAdded
		case FieldReleaseYear:
			rec.ReleaseYear = t.ReleaseYear
		case FieldRating:
			rec.Rating = t.Rating
		case FieldDuration:
			rec.Duration = t.Duration
		case FieldListedIn:
			rec.ListedIn = t.ListedIn
		case FieldDescription:
			rec.Description = t.Description
		}
	}
	return rec
}
