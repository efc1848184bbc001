// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/debounce"
)

// Reloader re-reads the dataset. *catalog.Loader implements it.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// CatalogWatchConfig configures a CatalogWatchService.
type CatalogWatchConfig struct {
	// Path is the dataset file to watch.
	Path string

	// Debounce is the quiet period after the last change before reloading.
	// Default: 500ms
	Debounce time.Duration

	// AfterFunc replaces the debounce timer source in tests.
	AfterFunc debounce.AfterFunc
}

// CatalogWatchService reloads the catalog when the dataset file changes.
//
// It watches the file's directory rather than the file itself, so editors
// and tools that replace the file by rename are still seen. Bursts of events
// collapse into one reload once the file has been quiet for the debounce
// period.
type CatalogWatchService struct {
	loader Reloader
	config CatalogWatchConfig
	logger zerolog.Logger
	name   string
}

// NewCatalogWatchService creates a watcher for cfg.Path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogWatchService(loader Reloader, cfg CatalogWatchConfig, logger zerolog.Logger) *CatalogWatchService {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	cfg.Path = filepath.Clean(cfg.Path)
	return &CatalogWatchService{
		loader: loader,
		config: cfg,
		logger: logger.With().Str("service", "catalog-watch").Str("dataset", cfg.Path).Logger(),
		name:   "catalog-watch",
	}
}

// Serve implements suture.Service.
func (s *CatalogWatchService) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.config.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	pending := make(chan struct{}, 1)
	opts := []debounce.Option{}
	if s.config.AfterFunc != nil {
		opts = append(opts, debounce.WithAfterFunc(s.config.AfterFunc))
	}
	debouncer := debounce.New(s.config.Debounce, opts...)
	defer debouncer.Cancel()

	s.logger.Info().Dur("debounce", s.config.Debounce).Msg("Watching dataset for changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !s.relevant(event) {
				continue
			}
			s.logger.Debug().Str("op", event.Op.String()).Msg("Dataset changed")
			debouncer.Schedule(event.Name, func(string) {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			s.logger.Warn().Err(err).Msg("Watcher error")

		case <-pending:
			s.reload(ctx)
		}
	}
}

// relevant reports whether event may have changed the dataset's contents.
func (s *CatalogWatchService) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.config.Path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (s *CatalogWatchService) reload(ctx context.Context) {
	changed, err := s.loader.Reload(ctx)
	switch {
	case err != nil:
		// The loader keeps serving the previous catalog.
		s.logger.Warn().Err(err).Msg("Reload after change failed")
	case changed:
		s.logger.Info().Msg("Catalog reloaded after change")
	default:
		s.logger.Debug().Msg("Dataset contents unchanged")
	}
}

// String implements fmt.Stringer.
func (s *CatalogWatchService) String() string {
	return s.name
}
