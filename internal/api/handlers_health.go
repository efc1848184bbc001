// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Version is reported by the health endpoints; set at build time.
var Version = "dev"

// LiveStatus is the body of the liveness probe.
type LiveStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime_seconds"`
}

// ReadyStatus is the body of the readiness probe.
type ReadyStatus struct {
	Status   string           `json:"status"`
	Database bool             `json:"database"`
	Model    recommend.Status `json:"model"`
	Catalog  *catalog.Status  `json:"catalog,omitempty"`
}

// HealthLive handles GET /api/v1/health/live
// The process is up; dependencies are not checked.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, LiveStatus{
		Status:  "alive",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready
// Ready once the catalog database answers and a model has been built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := ReadyStatus{
		Database: h.catalog.Ping(ctx) == nil,
		Model:    h.engine.Status(),
	}
	if h.loader != nil {
		st := h.loader.Status()
		status.Catalog = &st
	}

	code := http.StatusOK
	status.Status = "ready"
	if !status.Database || !h.engine.Ready() {
		code = http.StatusServiceUnavailable
		status.Status = "not_ready"
	}
	respondJSON(w, code, status)
}
