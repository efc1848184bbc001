// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package debounce_test

import (
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/debounce"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

const delay = 300 * time.Millisecond

func newTestDebouncer(clock *testinfra.FakeClock, opts ...debounce.Option) *debounce.Debouncer {
	opts = append([]debounce.Option{debounce.WithAfterFunc(func(d time.Duration, f func()) debounce.Timer {
		return clock.AfterFunc(d, f)
	})}, opts...)
	return debounce.New(delay, opts...)
}

func TestBurstProducesSingleCallAfterLastKeystroke(t *testing.T) {
	t.Parallel()

	clock := testinfra.NewFakeClock()
	d := newTestDebouncer(clock)

	var calls []string
	record := func(q string) { calls = append(calls, q) }

	for _, q := range []string{"da", "dar", "dark"} {
		d.Schedule(q, record)
		clock.Advance(100 * time.Millisecond)
	}

	if len(calls) != 0 {
		t.Fatalf("expected no calls during burst, got %v", calls)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected exactly one live timer, got %d", clock.Pending())
	}

	// 100ms have passed since the last keystroke.
	clock.Advance(199 * time.Millisecond)
	if len(calls) != 0 {
		t.Fatalf("fired early: %v", calls)
	}

	clock.Advance(time.Millisecond)
	if len(calls) != 1 || calls[0] != "dark" {
		t.Fatalf("expected one call with the last query, got %v", calls)
	}
	if d.Pending() {
		t.Error("expected debouncer to be idle after firing")
	}
}

func TestCancelDropsPendingCallback(t *testing.T) {
	t.Parallel()

	clock := testinfra.NewFakeClock()
	d := newTestDebouncer(clock)

	fired := false
	d.Schedule("dark", func(string) { fired = true })

	if !d.Cancel() {
		t.Error("Cancel should report a pending timer")
	}
	clock.Advance(time.Second)

	if fired {
		t.Error("cancelled callback ran")
	}
	if d.Cancel() {
		t.Error("second Cancel should report nothing pending")
	}
}

func TestCancelAfterFireBeforeDispatch(t *testing.T) {
	t.Parallel()

	clock := testinfra.NewFakeClock()

	// Queue dispatched work instead of running it, like an event loop with
	// a keystroke already ahead of the timer in its queue.
	var queue []func()
	d := newTestDebouncer(clock, debounce.WithDispatch(func(fn func()) {
		queue = append(queue, fn)
	}))

	fired := false
	d.Schedule("dark", func(string) { fired = true })
	clock.Advance(delay)

	if len(queue) != 1 {
		t.Fatalf("expected one dispatched fire, got %d", len(queue))
	}

	d.Cancel()
	queue[0]()

	if fired {
		t.Error("callback ran after Cancel even though dispatch was still queued")
	}
}

func TestRescheduleSupersedesDispatchedFire(t *testing.T) {
	t.Parallel()

	clock := testinfra.NewFakeClock()
	var queue []func()
	d := newTestDebouncer(clock, debounce.WithDispatch(func(fn func()) {
		queue = append(queue, fn)
	}))

	var calls []string
	record := func(q string) { calls = append(calls, q) }

	d.Schedule("da", record)
	clock.Advance(delay)
	d.Schedule("dar", record)
	clock.Advance(delay)

	for _, fn := range queue {
		fn()
	}

	if len(calls) != 1 || calls[0] != "dar" {
		t.Errorf("expected only the latest query to run, got %v", calls)
	}
}

func TestRealTimerFires(t *testing.T) {
	t.Parallel()

	d := debounce.New(5 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	got := make(chan string, 1)
	d.Schedule("dark", func(q string) {
		got <- q
		wg.Done()
	})
	wg.Wait()

	if q := <-got; q != "dark" {
		t.Errorf("got %q", q)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	var seq debounce.Sequence
	first := seq.Next()
	second := seq.Next()

	if seq.IsLatest(first) {
		t.Error("first ticket should be stale")
	}
	if !seq.IsLatest(second) {
		t.Error("second ticket should be latest")
	}

	seq.Invalidate()
	if seq.IsLatest(second) {
		t.Error("Invalidate should supersede outstanding tickets")
	}
}
