// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package algorithms implements the similarity models behind the
// recommendation engine.
//
// # Thread Safety
//
// All algorithms are safe for concurrent use. Fitting acquires an exclusive
// lock while similarity queries use a shared lock.
package algorithms

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Score is the similarity of one document to the query document.
type Score struct {
	Doc   int
	Value float64
}

// BaseAlgorithm provides common state for all algorithms.
type BaseAlgorithm struct {
	name          string
	trained       bool
	version       int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsTrained returns whether the model has been fitted.
func (b *BaseAlgorithm) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns the number of fits so far.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the model was last fitted.
func (b *BaseAlgorithm) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained updates the trained state.
// Must be called while holding the training lock (acquireTrainLock).
func (b *BaseAlgorithm) markTrained() {
	b.trained = true
	b.version++
	b.lastTrainedAt = time.Now()
}

func (b *BaseAlgorithm) acquireTrainLock()   { b.mu.Lock() }
func (b *BaseAlgorithm) releaseTrainLock()   { b.mu.Unlock() }
func (b *BaseAlgorithm) acquirePredictLock() { b.mu.RLock() }
func (b *BaseAlgorithm) releasePredictLock() { b.mu.RUnlock() }

// ContextCancelled reports whether ctx is done, without blocking.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// rankScores sorts scores by value descending; ties keep document order.
func rankScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
}
