// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/eventgraph/internal/metrics"
	"github.com/tomtom215/eventgraph/internal/models"
	"github.com/tomtom215/eventgraph/internal/store"
)

// Health handles GET /health (liveness probe).
// Returns 200 OK if the process is alive, regardless of dependencies.
// Each probe refreshes the uptime gauge, so any deployment with
// liveness checks keeps it current between scrapes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	metrics.UpdateUptime(h.startTime)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthResponse{
			Status:  "ok",
			Version: h.version,
			Uptime:  time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Ready handles GET /ready (readiness probe).
// Returns 200 OK only when the snapshot store and, if enabled, the
// activity log answer queries. An empty snapshot store is ready: a fresh
// deployment has nothing persisted yet.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	checks := make(map[string]string)
	ready := true

	if h.snapshots == nil {
		checks["snapshots"] = "not configured"
		ready = false
	} else if _, err := h.snapshots.Meta(); err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		checks["snapshots"] = err.Error()
		ready = false
	} else {
		checks["snapshots"] = "ok"
	}

	if h.history == nil {
		checks["history"] = "disabled"
	} else if _, err := h.history.Count(r.Context()); err != nil {
		checks["history"] = err.Error()
		ready = false
	} else {
		checks["history"] = "ok"
	}

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: models.ReadyResponse{
			Ready:  ready,
			Checks: checks,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
