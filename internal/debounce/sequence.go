// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package debounce

import "sync/atomic"

// Sequence issues monotonically increasing request tickets.
// The zero value is ready to use.
type Sequence struct {
	latest atomic.Uint64
}

// Next issues a new ticket, superseding every earlier one.
func (s *Sequence) Next() uint64 {
	return s.latest.Add(1)
}

// Invalidate supersedes every outstanding ticket without issuing a new request.
func (s *Sequence) Invalidate() {
	s.latest.Add(1)
}

// IsLatest reports whether ticket is the most recent one issued.
func (s *Sequence) IsLatest(ticket uint64) bool {
	return s.latest.Load() == ticket
}
