// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/cinematch/internal/recommend/algorithms"
)

func TestModelStoreKeys(t *testing.T) {
	store, err := OpenModelStore(filepath.Join(t.TempDir(), "nested", "models"))
	if err != nil {
		t.Fatalf("OpenModelStore: %v", err)
	}
	defer store.Close()

	cfg := algorithms.TFIDFConfig{MinDF: 1, MaxNgram: 1}
	model := algorithms.NewTFIDF(cfg)
	if err := model.Fit(context.Background(), []string{"alpha beta", "alpha gamma"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	data, err := model.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if _, found, err := store.Get("abc", cfg); err != nil || found {
		t.Fatalf("Get on empty store = found %v, err %v", found, err)
	}

	if err := store.Put("abc", cfg, data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := store.Get("abc", cfg)
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if len(got.Terms) != len(data.Terms) || len(got.Rows) != 2 {
		t.Errorf("stored model = %+v", got)
	}

	// Other settings or another dataset are different keys.
	if _, found, _ := store.Get("abc", algorithms.TFIDFConfig{MinDF: 2, MaxNgram: 1}); found {
		t.Error("model found under different settings")
	}
	if _, found, _ := store.Get("def", cfg); found {
		t.Error("model found under a different checksum")
	}
}
