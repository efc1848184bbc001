// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Do once the loop has stopped.
var ErrLoopStopped = errors.New("ui loop stopped")

// Scheduler runs UI work. Post queues fn to run on the UI goroutine and
// reports whether it was accepted; Go runs blocking work (network calls)
// off the UI goroutine.
type Scheduler interface {
	Post(fn func()) bool
	Go(fn func())
}

// Loop is a single-goroutine event loop. Everything that touches view or
// controller state (input events, timer fires, network completions) is
// posted to it and runs one closure at a time, in order.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	busy    int
	started uint64
	idle    chan struct{}
}

// NewLoop creates a loop with a bounded queue. Post blocks while the queue is full.
func NewLoop(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = 256
	}
	return &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It returns false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Go runs fn on a new goroutine. Drain waits for it.
func (l *Loop) Go(fn func()) {
	l.mu.Lock()
	l.busy++
	l.started++
	l.mu.Unlock()
	go func() {
		defer l.finish()
		fn()
	}()
}

func (l *Loop) finish() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy--
	if l.busy == 0 && l.idle != nil {
		close(l.idle)
		l.idle = nil
	}
}

// idleState returns a channel closed once no Go work is running, and the
// number of Go calls so far.
func (l *Loop) idleState() (<-chan struct{}, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy == 0 {
		closed := make(chan struct{})
		close(closed)
		return closed, l.started
	}
	if l.idle == nil {
		l.idle = make(chan struct{})
	}
	return l.idle, l.started
}

// Drain waits until the queue is empty and all work started with Go has
// finished, including the closures that work posts back.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		idle, _ := l.idleState()
		select {
		case <-idle:
		case <-l.done:
			return ErrLoopStopped
		case <-ctx.Done():
			return ctx.Err()
		}

		// Completions were posted before the work finished, so they are
		// queued ahead of this round trip.
		_, before := l.idleState()
		if err := l.Do(ctx, func() {}); err != nil {
			return err
		}
		if idle, after := l.idleState(); after == before && isClosed(idle) {
			return nil
		}
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Do posts fn and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes posted closures until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop stops the loop. Queued closures that have not started are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
