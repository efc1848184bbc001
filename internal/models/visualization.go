// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Bucket is one label/count pair of a distribution.
type Bucket struct {
	Label string
	Count int
}

// Distribution is an ordered label -> count mapping. On the wire it is a JSON
// object whose key order is significant (charts render in that order), so it
// marshals and unmarshals without going through a Go map.
type Distribution []Bucket

// Labels returns the labels in order.
func (d Distribution) Labels() []string {
	labels := make([]string, len(d))
	for i, b := range d {
		labels[i] = b.Label
	}
	return labels
}

// Counts returns the counts in order.
func (d Distribution) Counts() []int {
	counts := make([]int, len(d))
	for i, b := range d {
		counts[i] = b.Count
	}
	return counts
}

// MarshalJSON writes the distribution as an object preserving order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", b.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of numeric values in document order.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("distribution: invalid JSON")
	}
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*d = nil
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("distribution: expected object, got %s", parsed.Type)
	}

	out := Distribution{}
	var err error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = fmt.Errorf("distribution: value for %q is not a number", key.String())
			return false
		}
		out = append(out, Bucket{Label: key.String(), Count: int(value.Int())})
		return true
	})
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// VisualizationDataset is the body of GET /visualizations.
type VisualizationDataset struct {
	GenreDistribution Distribution `json:"genre_distribution"`
	TypeDistribution  Distribution `json:"type_distribution"`
	TopCountries      Distribution `json:"top_countries"`
	Message           string       `json:"message,omitempty"`
}
