// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// RefreshService reloads the catalog on a fixed interval. Reloads of an
// unchanged dataset are cheap no-ops, so it can back up the file watcher on
// filesystems without change notification.
type RefreshService struct {
	loader   Reloader
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewRefreshService creates a refresh loop. A non-positive interval disables
// it: Serve returns suture.ErrDoNotRestart at once.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRefreshService(loader Reloader, interval time.Duration, logger zerolog.Logger) *RefreshService {
	return &RefreshService{
		loader:   loader,
		interval: interval,
		logger:   logger.With().Str("service", "catalog-refresh").Logger(),
		name:     "catalog-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Debug().Msg("Periodic refresh disabled")
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Periodic refresh running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			changed, err := s.loader.Reload(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled reload failed")
				continue
			}
			if changed {
				s.logger.Info().Msg("Catalog refreshed")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *RefreshService) String() string {
	return s.name
}
