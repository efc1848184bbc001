// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog loads the titles dataset and serves catalog queries.
//
// The dataset is a Netflix-style CSV. ReadCSV parses it, Store keeps it in
// DuckDB for title search and the aggregate insights, and Loader ties the
// file, the store and the recommendation engine together so that a changed
// file is picked up by a single Reload.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
)

// ErrMissingTitleColumn is returned when the CSV header has no title column.
var ErrMissingTitleColumn = errors.New("dataset has no title column")

// ReadCSV parses a titles CSV. Columns are located by header name, so their
// order does not matter and unknown columns are ignored. Rows without a
// title are skipped and only the first row of each title is kept.
func ReadCSV(r io.Reader) ([]models.Title, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	if _, ok := columns[models.FieldTitle]; !ok {
		return nil, ErrMissingTitleColumn
	}

	seen := make(map[string]struct{})
	var titles []models.Title
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(titles)+2, err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := field(models.FieldTitle)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		year, _ := strconv.Atoi(field(models.FieldReleaseYear)) //nolint:errcheck // missing year stays 0

		titles = append(titles, models.Title{
			Position:    len(titles),
			ShowID:      field("show_id"),
			Type:        field(models.FieldType),
			Title:       name,
			Director:    field(models.FieldDirector),
			Cast:        field(models.FieldCast),
			Country:     field(models.FieldCountry),
			DateAdded:   field(models.FieldDateAdded),
			ReleaseYear: year,
			Rating:      field(models.FieldRating),
			Duration:    field(models.FieldDuration),
			ListedIn:    field(models.FieldListedIn),
			Description: field(models.FieldDescription),
		})
	}
	return titles, nil
}
