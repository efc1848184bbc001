// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package ui

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopRunsInOrder(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}
	if err := loop.Do(ctx, func() {}); err != nil {
		t.Fatalf("Do: %v", err)
	}

	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v", got)
		}
	}
	if len(got) != 5 {
		t.Errorf("ran %d closures, want 5", len(got))
	}
}

func TestLoopStop(t *testing.T) {
	loop := NewLoop(1)
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(context.Background()) }()

	loop.Stop()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	if loop.Post(func() {}) {
		t.Errorf("Post accepted after Stop")
	}
	if err := loop.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("Do = %v, want ErrLoopStopped", err)
	}
}

func TestLoopRunReturnsOnCancel(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	select {
	case <-loop.Done():
	default:
		t.Errorf("loop not marked done")
	}
}

func TestLoopDrainWaitsForPostedCompletions(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	release := make(chan struct{})
	rendered := false
	loop.Post(func() {
		loop.Go(func() {
			<-release
			loop.Post(func() { rendered = true })
		})
	})

	drained := make(chan error, 1)
	go func() { drained <- loop.Drain(ctx) }()

	select {
	case err := <-drained:
		t.Fatalf("Drain returned %v while work was running", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-drained:
		if err != nil {
			t.Fatalf("Drain: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Drain did not return")
	}
	if !rendered {
		t.Errorf("completion posted by Go work did not run before Drain returned")
	}
}

func TestLoopDrainHonoursContext(t *testing.T) {
	loop := NewLoop(0)
	go func() { _ = loop.Run(context.Background()) }()
	defer loop.Stop()

	block := make(chan struct{})
	defer close(block)
	loop.Go(func() { <-block })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := loop.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Drain = %v, want context.DeadlineExceeded", err)
	}
}
