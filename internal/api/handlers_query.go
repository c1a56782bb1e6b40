// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/eventgraph/internal/graph"
	"github.com/tomtom215/eventgraph/internal/metrics"
	"github.com/tomtom215/eventgraph/internal/models"
)

// recommendTimeout bounds one BFS traversal. The graph is in-memory, so
// hitting this means the graph has grown far beyond design size.
const recommendTimeout = 10 * time.Second

// Recommendations handles GET /api/v1/recommendations/{userID}.
//
// Query parameters:
//   - max_depth: BFS depth bound (default from engine config; 0 or
//     negative yields an empty result)
//   - categories: comma-separated preferred categories, used for the
//     cold-start policy when the user has no attendance history
//
// A user with attendance history gets the friend-graph traversal; a user
// without history and with categories gets every event in those
// categories. Requests are throttled per user id.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	userID := chi.URLParam(r, "userID")

	// Throttle per normalized id so "Maya" and "maya" share one bucket.
	if !h.recommendLimiter.Allow(graph.Normalize(userID)) {
		metrics.RecordRateLimitHit("/api/v1/recommendations")
		respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many recommendation requests for this user", nil)
		return
	}

	maxDepth := h.svc.DefaultMaxDepth()
	if depthStr := r.URL.Query().Get("max_depth"); depthStr != "" {
		parsed, err := strconv.Atoi(depthStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "max_depth must be an integer", nil)
			return
		}
		// Zero and negative values pass through; the engine answers them
		// with an empty result rather than an error.
		maxDepth = parsed
	}

	categories := parseCommaSeparated(r.URL.Query().Get("categories"))

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	start := time.Now()
	h.mu.RLock()
	rec, err := h.svc.Recommend(ctx, userID, maxDepth, categories)
	h.mu.RUnlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   rec,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GraphAdjacency handles GET /api/v1/graph/adjacency.
// Returns the full adjacency view keyed by raw vertex id, neighbor lists
// in insertion order. Meant for debugging and demos, so it is unpaginated.
func (h *Handler) GraphAdjacency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	h.mu.RLock()
	view := h.svc.AdjacencyView()
	h.mu.RUnlock()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"adjacency": view,
			"vertices":  len(view),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GraphStats handles GET /api/v1/graph/stats.
// Returns vertex counts by kind and the total edge count.
func (h *Handler) GraphStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	h.mu.RLock()
	stats := h.svc.Stats()
	h.mu.RUnlock()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
