// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package testinfra provides shared test doubles: a manually advanced clock
// for debounce timing, a scripted API server that records requests, and a
// small titles dataset.
//
//	clock := testinfra.NewFakeClock()
//	d := debounce.New(300*time.Millisecond, debounce.WithAfterFunc(
//	    func(d time.Duration, f func()) debounce.Timer { return clock.AfterFunc(d, f) }))
//	d.Schedule("da", search)
//	clock.Advance(300 * time.Millisecond) // search("da") runs here
package testinfra

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a clock whose time only moves when Advance is called.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*FakeTimer
	seq    int
}

// FakeTimer is a timer created by FakeClock.AfterFunc.
type FakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	order    int
	fn       func()
	active   bool
}

// NewFakeClock returns a clock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to run once the clock has advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) *FakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &FakeTimer{clock: c, deadline: c.now.Add(d), order: c.seq, fn: fn, active: true}
	c.timers = append(c.timers, t)
	return t
}

// Stop deactivates the timer. It reports whether the timer was still pending.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	was := t.active
	t.active = false
	return was
}

// Advance moves the clock forward by d and runs every timer that became due,
// in deadline order, on the calling goroutine.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)

	var due []*FakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case !t.active:
		case !t.deadline.After(c.now):
			t.active = false
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].order < due[j].order
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of active timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if t.active {
			n++
		}
	}
	return n
}
