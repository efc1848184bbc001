// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

var (
	// ErrDatasetNotFound is returned when the dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset file not found")
	// ErrEmptyDataset is returned when the dataset has no usable rows.
	ErrEmptyDataset = errors.New("dataset has no titles")
)

// Reload results recorded in metrics.
const (
	ReloadLoaded    = "loaded"
	ReloadUnchanged = "unchanged"
	ReloadFailed    = "failed"
)

// Indexer is rebuilt with the full title list after every change.
// *recommend.Engine implements it.
type Indexer interface {
	Rebuild(ctx context.Context, titles []models.Title, checksum string) error
}

// Status describes the last successful load.
type Status struct {
	Path     string    `json:"path"`
	Checksum string    `json:"checksum"`
	Titles   int       `json:"titles"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Loader keeps the store and the index in step with the dataset file.
// Reloads are serialized; it is safe for concurrent use.
type Loader struct {
	path   string
	store  *Store
	index  Indexer
	logger zerolog.Logger

	mu     sync.Mutex
	status Status
}

// NewLoader creates a loader for the dataset at path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(path string, store *Store, index Indexer, logger zerolog.Logger) *Loader {
	return &Loader{
		path:   path,
		store:  store,
		index:  index,
		logger: logger.With().Str("component", "catalog").Str("dataset", path).Logger(),
	}
}

// Path returns the dataset path.
func (l *Loader) Path() string {
	return l.path
}

// Status returns the state of the last successful load.
func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Reload reads the dataset and, if its checksum changed since the last load,
// replaces the store's contents and rebuilds the index. It reports whether
// anything changed.
func (l *Loader) Reload(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed, titles, err := l.reload(ctx)
	switch {
	case err != nil:
		metrics.RecordCatalogReload(ReloadFailed, 0)
		l.logger.Error().Err(err).Msg("Catalog reload failed")
	case changed:
		metrics.RecordCatalogReload(ReloadLoaded, titles)
	default:
		metrics.RecordCatalogReload(ReloadUnchanged, titles)
	}
	return changed, err
}

func (l *Loader) reload(ctx context.Context) (bool, int, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, 0, fmt.Errorf("%w: %s", ErrDatasetNotFound, l.path)
	}
	if err != nil {
		return false, 0, fmt.Errorf("read dataset: %w", err)
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	if checksum == l.status.Checksum {
		l.logger.Debug().Msg("Dataset unchanged, skipping reload")
		return false, l.status.Titles, nil
	}

	titles, stored, err := l.loadTitles(ctx, data, checksum)
	if err != nil {
		return false, 0, err
	}

	// The store is only written once the index accepted the titles, so a
	// failed rebuild leaves both on the previous dataset.
	start := time.Now()
	if err := l.index.Rebuild(ctx, titles, checksum); err != nil {
		return false, 0, fmt.Errorf("rebuild index: %w", err)
	}
	if !stored {
		if err := l.store.Replace(ctx, titles, checksum); err != nil {
			return false, 0, fmt.Errorf("store titles: %w", err)
		}
	}

	l.status = Status{Path: l.path, Checksum: checksum, Titles: len(titles), LoadedAt: time.Now()}
	l.logger.Info().
		Int("titles", len(titles)).
		Str("checksum", checksum[:12]).
		Dur("index_duration", time.Since(start)).
		Msg("Catalog loaded")
	return true, len(titles), nil
}

// loadTitles parses the dataset. If the store already holds this exact
// dataset the titles are read back from it and stored is true.
func (l *Loader) loadTitles(ctx context.Context, data []byte, checksum string) (titles []models.Title, stored bool, err error) {
	current, err := l.store.Checksum(ctx)
	if err != nil {
		return nil, false, err
	}
	if current == checksum {
		titles, err := l.store.Titles(ctx)
		if err != nil {
			return nil, false, err
		}
		if len(titles) > 0 {
			l.logger.Debug().Msg("Catalog store already current")
			return titles, true, nil
		}
	}

	titles, err = ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("parse dataset: %w", err)
	}
	if len(titles) == 0 {
		return nil, false, ErrEmptyDataset
	}
	return titles, false, nil
}
