// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/recommend", "404"))
	RecordAPIRequest("GET", "/recommend", 404, 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/recommend", "404"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordCatalogReload(t *testing.T) {
	RecordCatalogReload("loaded", 42)
	if got := testutil.ToFloat64(CatalogTitles); got != 42 {
		t.Errorf("CatalogTitles = %v, want 42", got)
	}

	RecordCatalogReload("error", 0)
	if got := testutil.ToFloat64(CatalogTitles); got != 42 {
		t.Errorf("failed reload must not change size, got %v", got)
	}
}

func TestRecordClientRequest(t *testing.T) {
	RecordClientRequest("search", time.Millisecond, nil)
	RecordClientRequest("search", time.Millisecond, errors.New("boom"))

	if n := testutil.CollectAndCount(ClientRequestDuration); n < 2 {
		t.Errorf("expected at least 2 series, got %d", n)
	}
}

func TestCacheResult(t *testing.T) {
	if CacheResult(true) != "hit" || CacheResult(false) != "miss" {
		t.Error("unexpected cache labels")
	}
}
