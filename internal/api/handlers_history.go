// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/eventgraph/internal/models"
)

// historyQueryTimeout bounds one DuckDB query. Analytical scans over the
// activity log stay well under this on any reasonable log size.
const historyQueryTimeout = 15 * time.Second

// HistoryActivity handles GET /api/v1/history/activity.
//
// Query parameters:
//   - limit: maximum entries to return (default 50)
//
// Returns the newest graph mutations first, as consumed from the event
// bus by the history subscriber. Returns 503 when history is disabled.
func (h *Handler) HistoryActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Activity history is disabled", nil)
		return
	}

	limit := getIntParam(r, "limit", 50)

	ctx, cancel := context.WithTimeout(r.Context(), historyQueryTimeout)
	defer cancel()

	start := time.Now()
	entries, err := h.history.RecentActivity(ctx, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_ERROR", "Failed to query activity log", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"entries": entries,
			"count":   len(entries),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HistoryTopEvents handles GET /api/v1/history/top-events.
//
// Query parameters:
//   - limit: maximum events to return (default 10)
//   - days: restrict to attendances in the last N days (default 0, no filter)
//
// Aggregates attendance counts and average ratings per event from the
// activity log. Returns 503 when history is disabled.
func (h *Handler) HistoryTopEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Activity history is disabled", nil)
		return
	}

	limit := getIntParam(r, "limit", 10)
	days := getIntParam(r, "days", 0)

	ctx, cancel := context.WithTimeout(r.Context(), historyQueryTimeout)
	defer cancel()

	start := time.Now()
	top, err := h.history.TopEvents(ctx, limit, days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_ERROR", "Failed to query top events", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"events": top,
			"count":  len(top),
			"days":   days,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
