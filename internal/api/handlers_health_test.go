// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tomtom215/eventgraph/internal/store"
)

// newSnapshotStore opens an empty BadgerDB store in a temp dir.
func newSnapshotStore(t *testing.T) *store.Store {
	t.Helper()

	cfg := store.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "graph")
	cfg.SyncWrites = false

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHealth(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "success" {
		t.Errorf("Status = %q, want %q", resp.Status, "success")
	}
	data := dataMap(t, resp)
	if data["status"] != "ok" {
		t.Errorf("status = %v, want ok", data["status"])
	}
	if data["version"] != "test" {
		t.Errorf("version = %v, want test", data["version"])
	}
}

func TestHealth_WrongMethod(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assertErrorCode(t, w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
}

func TestReady_NoSnapshotStore(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	handler.Ready(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusServiceUnavailable, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "not_ready" {
		t.Errorf("Status = %q, want %q", resp.Status, "not_ready")
	}
	data := dataMap(t, resp)
	if data["ready"] != false {
		t.Errorf("ready = %v, want false", data["ready"])
	}
	checks, ok := data["checks"].(map[string]interface{})
	if !ok {
		t.Fatalf("checks = %T, want map", data["checks"])
	}
	if checks["snapshots"] != "not configured" {
		t.Errorf("checks[snapshots] = %v, want %q", checks["snapshots"], "not configured")
	}
}

func TestReady_EmptySnapshotStore(t *testing.T) {
	// An empty store is ready: a fresh deployment has nothing persisted.
	handler, _ := newTestHandler(t, nil)
	handler.snapshots = newSnapshotStore(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	handler.Ready(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "ready" {
		t.Errorf("Status = %q, want %q", resp.Status, "ready")
	}
	data := dataMap(t, resp)
	checks, ok := data["checks"].(map[string]interface{})
	if !ok {
		t.Fatalf("checks = %T, want map", data["checks"])
	}
	if checks["snapshots"] != "ok" {
		t.Errorf("checks[snapshots] = %v, want ok", checks["snapshots"])
	}
	if checks["history"] != "disabled" {
		t.Errorf("checks[history] = %v, want disabled", checks["history"])
	}
}

func TestReady_AllStores(t *testing.T) {
	handler := newHistoryHandler(t)
	handler.snapshots = newSnapshotStore(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()

	handler.Ready(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}
	data := dataMap(t, decodeEnvelope(t, w))
	checks, ok := data["checks"].(map[string]interface{})
	if !ok {
		t.Fatalf("checks = %T, want map", data["checks"])
	}
	for _, name := range []string{"snapshots", "history"} {
		if checks[name] != "ok" {
			t.Errorf("checks[%s] = %v, want ok", name, checks[name])
		}
	}
}
