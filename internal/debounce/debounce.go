// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package debounce delays work until its input has been quiet for a while
// and tags requests so that late responses can be recognised.
//
// A Debouncer owns at most one live timer. Schedule replaces any pending
// timer; Cancel drops it. The callback runs only if its timer was the latest
// one scheduled and was not cancelled, even when the timer fired while a
// Cancel or Schedule was racing it.
//
//	d := debounce.New(300*time.Millisecond, debounce.WithDispatch(loop.Post))
//	d.Schedule(query, func(q string) { fetchSuggestions(q) })
//
// Sequence hands out monotonically increasing tickets. A response is applied
// only when its ticket is still the latest one issued.
package debounce

import (
	"sync"
	"time"
)

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a timer that calls f after d. time.AfterFunc satisfies it
// once wrapped; tests substitute a fake clock.
type AfterFunc func(d time.Duration, f func()) Timer

// Dispatcher runs fn on the goroutine that owns the debounced state,
// typically an event loop's Post. The default runs fn inline on the timer goroutine.
type Dispatcher func(fn func())

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(after AfterFunc) Option {
	return func(d *Debouncer) {
		if after != nil {
			d.after = after
		}
	}
}

// WithDispatch routes timer fires through dispatch.
func WithDispatch(dispatch Dispatcher) Option {
	return func(d *Debouncer) {
		if dispatch != nil {
			d.dispatch = dispatch
		}
	}
}

// Debouncer delays a callback until Schedule has not been called for Delay.
// It is safe for concurrent use.
type Debouncer struct {
	delay    time.Duration
	after    AfterFunc
	dispatch Dispatcher

	mu         sync.Mutex
	timer      Timer
	generation uint64
}

// New creates a Debouncer with the given quiet period.
func New(delay time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{
		delay: delay,
		after: func(delay time.Duration, f func()) Timer {
			return time.AfterFunc(delay, f)
		},
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending timer and starts a new one that calls
// callback(query) after the quiet period.
func (d *Debouncer) Schedule(query string, callback func(query string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.generation++
	gen := d.generation

	d.timer = d.after(d.delay, func() {
		d.dispatch(func() {
			if d.claim(gen) {
				callback(query)
			}
		})
	})
}

// Cancel drops the pending timer, if any. It reports whether a timer was pending.
// After Cancel returns, the dropped callback will not run.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	pending := d.timer != nil
	d.stopLocked()
	d.generation++
	return pending
}

// Pending reports whether a timer is scheduled and not yet claimed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// claim marks the timer for gen as fired. It fails if a later Schedule or
// Cancel superseded it.
func (d *Debouncer) claim(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation || d.timer == nil {
		return false
	}
	d.timer = nil
	return true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
