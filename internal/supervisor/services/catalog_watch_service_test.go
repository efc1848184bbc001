// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/debounce"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/testinfra"
)

type fakeReloader struct {
	calls   atomic.Int32
	err     error
	changed bool
	ch      chan struct{}
}

func newFakeReloader() *fakeReloader {
	return &fakeReloader{changed: true, ch: make(chan struct{}, 16)}
}

func (f *fakeReloader) Reload(context.Context) (bool, error) {
	f.calls.Add(1)
	f.ch <- struct{}{}
	return f.changed, f.err
}

func (f *fakeReloader) waitCall(t *testing.T) {
	t.Helper()
	select {
	case <-f.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("Reload was not called")
	}
}

func (f *fakeReloader) expectNoCall(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case <-f.ch:
		t.Fatal("unexpected Reload call")
	case <-time.After(wait):
	}
}

func fakeAfterFunc(clock *testinfra.FakeClock) debounce.AfterFunc {
	return func(d time.Duration, f func()) debounce.Timer { return clock.AfterFunc(d, f) }
}

// startWatch runs a watch service on a fresh dataset and waits until the
// watcher is registered.
func startWatch(t *testing.T, loader Reloader, clock *testinfra.FakeClock) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	path := testinfra.WriteDataset(t, testinfra.SampleCSV)
	svc := NewCatalogWatchService(loader, CatalogWatchConfig{
		Path:      path,
		Debounce:  time.Second,
		AfterFunc: fakeAfterFunc(clock),
	}, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	t.Cleanup(cancel)

	// fsnotify registers synchronously inside Serve; give it a moment.
	time.Sleep(100 * time.Millisecond)
	return path, cancel, errCh
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	if _, err := f.WriteString(line); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close dataset: %v", err)
	}
}

func TestCatalogWatchDebouncesWrites(t *testing.T) {
	clock := testinfra.NewFakeClock()
	loader := newFakeReloader()
	path, cancel, errCh := startWatch(t, loader, clock)

	for i := 0; i < 3; i++ {
		appendLine(t, path, "s9,Movie,Extra,,,,,2020,,,,More.\n")
	}
	time.Sleep(200 * time.Millisecond)

	if clock.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1 after a burst of writes", clock.Pending())
	}
	loader.expectNoCall(t, 50*time.Millisecond)

	clock.Advance(time.Second)
	loader.waitCall(t)
	loader.expectNoCall(t, 100*time.Millisecond)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestCatalogWatchIgnoresOtherFiles(t *testing.T) {
	clock := testinfra.NewFakeClock()
	loader := newFakeReloader()
	path, _, _ := startWatch(t, loader, clock)

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", clock.Pending())
	}
	clock.Advance(time.Second)
	loader.expectNoCall(t, 100*time.Millisecond)
}

func TestCatalogWatchReplaceByRename(t *testing.T) {
	clock := testinfra.NewFakeClock()
	loader := newFakeReloader()
	path, _, _ := startWatch(t, loader, clock)

	tmp := filepath.Join(filepath.Dir(path), "titles.csv.tmp")
	if err := os.WriteFile(tmp, []byte(testinfra.SampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	clock.Advance(time.Second)
	loader.waitCall(t)
}

func TestCatalogWatchSurvivesReloadErrors(t *testing.T) {
	clock := testinfra.NewFakeClock()
	loader := newFakeReloader()
	loader.err = errors.New("malformed csv")
	path, cancel, errCh := startWatch(t, loader, clock)

	appendLine(t, path, "broken\n")
	time.Sleep(200 * time.Millisecond)
	clock.Advance(time.Second)
	loader.waitCall(t)

	appendLine(t, path, "broken again\n")
	time.Sleep(200 * time.Millisecond)
	clock.Advance(time.Second)
	loader.waitCall(t)

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestCatalogWatchMissingDirectory(t *testing.T) {
	svc := NewCatalogWatchService(newFakeReloader(), CatalogWatchConfig{
		Path: filepath.Join(t.TempDir(), "missing", "titles.csv"),
	}, logging.Nop())

	if svc.config.Debounce != 500*time.Millisecond {
		t.Errorf("default debounce = %v", svc.config.Debounce)
	}
	if err := svc.Serve(context.Background()); err == nil {
		t.Error("Serve() on a missing directory returned nil")
	}
	var _ suture.Service = svc
}

func TestRefreshService(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc := NewRefreshService(newFakeReloader(), 0, logging.Nop())
		if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
		}
	})

	t.Run("reloads on every tick", func(t *testing.T) {
		loader := newFakeReloader()
		loader.changed = false
		svc := NewRefreshService(loader, 20*time.Millisecond, logging.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		loader.waitCall(t)
		loader.waitCall(t)
		cancel()

		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if svc.String() != "catalog-refresh" {
			t.Errorf("String() = %q", svc.String())
		}
	})

	t.Run("keeps running after a failed reload", func(t *testing.T) {
		loader := newFakeReloader()
		loader.err = errors.New("dataset file not found")
		svc := NewRefreshService(loader, 20*time.Millisecond, logging.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = svc.Serve(ctx) }()

		loader.waitCall(t)
		loader.waitCall(t)
	})
}
