// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/eventgraph/internal/models"
)

// mutationTimeout bounds a mutation end to end, including the snapshot
// write to BadgerDB. In-memory graph work is microseconds; the budget is
// for the persistence path.
const mutationTimeout = 10 * time.Second

// CreateUser handles POST /api/v1/users.
// Adds a user vertex; the id is normalized (trimmed, lowercased) for
// lookups but stored as given.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.CreateUserRequest
	if apiErr := decodeRequest(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.AddUser(ctx, req.ID)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":   req.ID,
			"kind": "user",
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DeleteUser handles DELETE /api/v1/users/{id}.
// Removes the user vertex and every edge touching it, including reverse
// friendship edges held by other users.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.RemoveUser(ctx, id)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":      id,
			"deleted": true,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.CreateCategoryRequest
	if apiErr := decodeRequest(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.AddCategory(ctx, req.ID)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":   req.ID,
			"kind": "category",
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
// Events linked to the category keep their other category edges.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.RemoveCategory(ctx, id)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":      id,
			"deleted": true,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// CreateEvent handles POST /api/v1/events.
// Adds an event vertex and links it to its categories, creating category
// hubs that do not exist yet.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.CreateEventRequest
	if apiErr := decodeRequest(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.AddEvent(ctx, req.ID, req.Categories)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":         req.ID,
			"kind":       "event",
			"categories": req.Categories,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DeleteEvent handles DELETE /api/v1/events/{id}.
// Attendance edges pointing at the event are removed from every user.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.RemoveEvent(ctx, id)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"id":      id,
			"deleted": true,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// RecordAttendance handles POST /api/v1/attendance.
// Marks a user as having attended an event, optionally with a 1-5 rating.
// Recording the same pair again is a no-op that keeps the first rating.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.RecordAttendanceRequest
	if apiErr := decodeRequest(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.RecordAttendance(ctx, req.UserID, req.EventID, req.Rating)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data := map[string]interface{}{
		"user_id":  req.UserID,
		"event_id": req.EventID,
		"attended": true,
	}
	if req.Rating != nil {
		data["rating"] = *req.Rating
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// CreateFriendship handles POST /api/v1/friendships.
// Links two users in both directions; repeating the request in either
// order is a no-op.
func (h *Handler) CreateFriendship(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.CreateFriendshipRequest
	if apiErr := decodeRequest(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mutationTimeout)
	defer cancel()

	start := time.Now()
	h.mu.Lock()
	err := h.svc.AddFriendship(ctx, req.UserID, req.FriendID)
	h.mu.Unlock()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id":   req.UserID,
			"friend_id": req.FriendID,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
