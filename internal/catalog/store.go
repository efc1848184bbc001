// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// Aggregate sizes of the insights dataset.
const (
	TopGenres    = 10
	TopCountries = 5
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS titles (
	position     INTEGER NOT NULL,
	show_id      VARCHAR,
	type         VARCHAR,
	title        VARCHAR NOT NULL,
	director     VARCHAR,
	cast_members VARCHAR,
	country      VARCHAR,
	date_added   VARCHAR,
	release_year INTEGER,
	rating       VARCHAR,
	duration     VARCHAR,
	listed_in    VARCHAR,
	description  VARCHAR
)`, `
CREATE TABLE IF NOT EXISTS dataset_meta (
	id        INTEGER NOT NULL,
	checksum  VARCHAR NOT NULL,
	loaded_at TIMESTAMP NOT NULL
)`}

const titleColumns = `position, show_id, type, title, director, cast_members, country,
	date_added, release_year, rating, duration, listed_in, description`

// splitCountsQuery counts the trimmed parts of a comma-separated column.
const splitCountsQuery = `
SELECT label, COUNT(*) AS n FROM (
	SELECT trim(unnest(string_split(%[1]s, ','))) AS label
	FROM titles
	WHERE %[1]s IS NOT NULL AND %[1]s <> ''
)
WHERE label <> ''
GROUP BY label
ORDER BY n DESC, label
LIMIT ?`

// Store keeps the catalog in DuckDB. It is safe for concurrent use.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) the DuckDB catalog at path. An empty path keeps
// the catalog in memory.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d", path, runtime.NumCPU())
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	logging.Debug().Str("path", path).Msg("Catalog store opened")
	return &Store{conn: conn, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database path, ":memory:" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Replace swaps the stored titles for titles in one transaction and records
// the dataset checksum.
func (s *Store) Replace(ctx context.Context, titles []models.Title, checksum string) (err error) {
	defer observe("replace", time.Now())

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Warn().Err(rbErr).Msg("Catalog rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM titles"); err != nil {
		return fmt.Errorf("clear titles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO titles ("+titleColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer closeQuietly(stmt)

	for i := range titles {
		t := &titles[i]
		if _, err = stmt.ExecContext(ctx,
			t.Position, t.ShowID, t.Type, t.Title, t.Director, t.Cast, t.Country,
			t.DateAdded, t.ReleaseYear, t.Rating, t.Duration, t.ListedIn, t.Description,
		); err != nil {
			return fmt.Errorf("insert %q: %w", t.Title, err)
		}
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM dataset_meta"); err != nil {
		return fmt.Errorf("clear dataset meta: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO dataset_meta (id, checksum, loaded_at) VALUES (1, ?, ?)", checksum, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record checksum: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Checksum returns the checksum recorded by the last Replace, or "" if the
// store has never been loaded.
func (s *Store) Checksum(ctx context.Context) (string, error) {
	var checksum string
	err := s.conn.QueryRowContext(ctx, "SELECT checksum FROM dataset_meta WHERE id = 1").Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read checksum: %w", err)
	}
	return checksum, nil
}

// Titles returns every title in dataset order.
func (s *Store) Titles(ctx context.Context) ([]models.Title, error) {
	defer observe("titles", time.Now())

	rows, err := s.conn.QueryContext(ctx, "SELECT "+titleColumns+" FROM titles ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer closeQuietly(rows)

	var titles []models.Title
	for rows.Next() {
		var (
			t    models.Title
			year sql.NullInt64
			cols [11]sql.NullString
		)
		if err := rows.Scan(&t.Position, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &year, &cols[7], &cols[8], &cols[9], &cols[10]); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		t.ShowID, t.Type, t.Title = cols[0].String, cols[1].String, cols[2].String
		t.Director, t.Cast, t.Country = cols[3].String, cols[4].String, cols[5].String
		t.DateAdded, t.Rating, t.Duration = cols[6].String, cols[7].String, cols[8].String
		t.ListedIn, t.Description = cols[9].String, cols[10].String
		t.ReleaseYear = int(year.Int64)
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return titles, nil
}

// Count returns the number of stored titles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM titles").Scan(&n); err != nil {
		return 0, fmt.Errorf("count titles: %w", err)
	}
	return n, nil
}

// Search returns up to limit titles containing query, case-insensitively, in
// dataset order. A blank query returns an empty list.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]string, error) {
	defer observe("search", time.Now())

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return []string{}, nil
	}

	rows, err := s.conn.QueryContext(ctx,
		"SELECT title FROM titles WHERE contains(lower(title), CAST(? AS VARCHAR)) ORDER BY position LIMIT ?", query, limit)
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	defer closeQuietly(rows)

	results := make([]string, 0, limit)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		results = append(results, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}
	return results, nil
}

// Visualizations computes the insights dataset: the top genres, every
// content type and the top countries, each ordered by count then label.
func (s *Store) Visualizations(ctx context.Context) (*models.VisualizationDataset, error) {
	defer observe("visualizations", time.Now())

	genres, err := s.distribution(ctx, fmt.Sprintf(splitCountsQuery, "listed_in"), TopGenres)
	if err != nil {
		return nil, fmt.Errorf("genre distribution: %w", err)
	}
	types, err := s.distribution(ctx, `
SELECT type AS label, COUNT(*) AS n
FROM titles
WHERE type IS NOT NULL AND type <> ''
GROUP BY type
ORDER BY n DESC, label`)
	if err != nil {
		return nil, fmt.Errorf("type distribution: %w", err)
	}
	countries, err := s.distribution(ctx, fmt.Sprintf(splitCountsQuery, "country"), TopCountries)
	if err != nil {
		return nil, fmt.Errorf("country distribution: %w", err)
	}

	return &models.VisualizationDataset{
		GenreDistribution: genres,
		TypeDistribution:  types,
		TopCountries:      countries,
	}, nil
}

func (s *Store) distribution(ctx context.Context, query string, args ...any) (models.Distribution, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	dist := models.Distribution{}
	for rows.Next() {
		var b models.Bucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, err
		}
		dist = append(dist, b)
	}
	return dist, rows.Err()
}

func observe(operation string, start time.Time) {
	metrics.RecordCatalogQuery(operation, time.Since(start))
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close() //nolint:errcheck // best-effort cleanup
	}
}
