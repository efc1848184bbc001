// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func loadSample(t *testing.T, store *Store) []models.Title {
	t.Helper()

	titles, err := ReadCSV(strings.NewReader(testinfra.SampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if err := store.Replace(context.Background(), titles, "sample"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	return titles
}

func TestStoreReplaceAndTitles(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if sum, err := store.Checksum(ctx); err != nil || sum != "" {
		t.Fatalf("fresh store checksum = %q, %v", sum, err)
	}

	want := loadSample(t, store)

	got, err := store.Titles(ctx)
	if err != nil {
		t.Fatalf("Titles: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Titles round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	n, err := store.Count(ctx)
	if err != nil || n != len(want) {
		t.Errorf("Count = %d, %v; want %d", n, err, len(want))
	}
	if sum, _ := store.Checksum(ctx); sum != "sample" {
		t.Errorf("checksum = %q, want %q", sum, "sample")
	}

	// A second replace swaps the contents entirely.
	if err := store.Replace(ctx, want[:2], "smaller"); err != nil {
		t.Fatalf("second Replace: %v", err)
	}
	if n, _ := store.Count(ctx); n != 2 {
		t.Errorf("Count after replace = %d, want 2", n)
	}
	if sum, _ := store.Checksum(ctx); sum != "smaller" {
		t.Errorf("checksum after replace = %q", sum)
	}
}

func TestStoreSearch(t *testing.T) {
	store := setupTestStore(t)
	loadSample(t, store)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case insensitive", "SHER", 10, []string{"Sherlock"}},
		{"dataset order", "o", 10, []string{"Sherlock", "Enola Holmes", "Cosmos Kitchen", "Knives Out & Secrets"}},
		{"limit", "o", 2, []string{"Sherlock", "Enola Holmes"}},
		{"trimmed", "  dark ", 10, []string{"Dark"}},
		{"special characters are literal", "& s", 10, []string{"Knives Out & Secrets"}},
		{"percent is literal", "%", 10, []string{}},
		{"empty", "", 10, []string{}},
		{"blank", "   ", 10, []string{}},
		{"no match", "zzz", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, tt.query, tt.limit)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestStoreVisualizations(t *testing.T) {
	store := setupTestStore(t)
	loadSample(t, store)

	ds, err := store.Visualizations(context.Background())
	if err != nil {
		t.Fatalf("Visualizations: %v", err)
	}

	wantTypes := models.Distribution{{Label: "Movie", Count: 3}, {Label: "TV Show", Count: 3}}
	if !reflect.DeepEqual(ds.TypeDistribution, wantTypes) {
		t.Errorf("types = %v, want %v", ds.TypeDistribution, wantTypes)
	}

	wantCountries := models.Distribution{
		{Label: "United Kingdom", Count: 3},
		{Label: "Germany", Count: 1},
		{Label: "Spain", Count: 1},
		{Label: "United States", Count: 1},
	}
	if !reflect.DeepEqual(ds.TopCountries, wantCountries) {
		t.Errorf("countries = %v, want %v", ds.TopCountries, wantCountries)
	}

	if len(ds.GenreDistribution) == 0 || len(ds.GenreDistribution) > TopGenres {
		t.Fatalf("genres = %v", ds.GenreDistribution)
	}
	top := ds.GenreDistribution[0]
	if top.Label != "Crime TV Shows" || top.Count != 3 {
		t.Errorf("top genre = %+v, want Crime TV Shows x3", top)
	}
	for _, b := range ds.GenreDistribution {
		if strings.TrimSpace(b.Label) != b.Label || b.Label == "" {
			t.Errorf("genre label %q not trimmed", b.Label)
		}
	}
}

func TestStoreVisualizationsTopLimits(t *testing.T) {
	store := setupTestStore(t)

	var titles []models.Title
	for i := 0; i < 12; i++ {
		titles = append(titles, models.Title{
			Position: i,
			Title:    "T" + string(rune('A'+i)),
			Type:     "Movie",
			Country:  "Country " + string(rune('A'+i)),
			ListedIn: "Genre " + string(rune('A'+i)),
		})
	}
	if err := store.Replace(context.Background(), titles, "many"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	ds, err := store.Visualizations(context.Background())
	if err != nil {
		t.Fatalf("Visualizations: %v", err)
	}
	if len(ds.GenreDistribution) != TopGenres {
		t.Errorf("genres = %d, want %d", len(ds.GenreDistribution), TopGenres)
	}
	if len(ds.TopCountries) != TopCountries {
		t.Errorf("countries = %d, want %d", len(ds.TopCountries), TopCountries)
	}
	if ds.TopCountries[0].Label != "Country A" {
		t.Errorf("ties not ordered by label: %v", ds.TopCountries)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := setupTestStore(t)

	ds, err := store.Visualizations(context.Background())
	if err != nil {
		t.Fatalf("Visualizations: %v", err)
	}
	if len(ds.GenreDistribution) != 0 || len(ds.TypeDistribution) != 0 || len(ds.TopCountries) != 0 {
		t.Errorf("empty store produced %+v", ds)
	}
}

func TestStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.duckdb")
	ctx := context.Background()

	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	loadSample(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if n, _ := reopened.Count(ctx); n != 6 {
		t.Errorf("Count after reopen = %d, want 6", n)
	}
	if sum, _ := reopened.Checksum(ctx); sum != "sample" {
		t.Errorf("checksum after reopen = %q", sum)
	}
}
