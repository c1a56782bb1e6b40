// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/eventgraph/internal/config"
	"github.com/tomtom215/eventgraph/internal/graph"
	"github.com/tomtom215/eventgraph/internal/logging"
	"github.com/tomtom215/eventgraph/internal/models"
	"github.com/tomtom215/eventgraph/internal/recommend"
	"github.com/tomtom215/eventgraph/internal/service"
)

func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

// stubGateway counts snapshot writes and can be told to fail.
type stubGateway struct {
	calls    int
	failWith error
}

func (g *stubGateway) Snapshot(_ *graph.Graph) error {
	g.calls++
	return g.failWith
}

func (g *stubGateway) Restore() (*graph.Graph, error) {
	return graph.New(), nil
}

// testConfig returns a config with CORS open and limits high enough to
// stay out of the way unless a test lowers them.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:                   "127.0.0.1",
			Port:                   8080,
			CORSOrigins:            []string{"*"},
			RateLimitRequests:      1000,
			RateLimitWindow:        time.Minute,
			RecommendRatePerSecond: 1000,
			RecommendRateBurst:     1000,
		},
	}
}

// newTestHandler builds a handler over a fresh graph service. The
// snapshot store, history store, and WebSocket hub are nil unless a test
// wires its own.
func newTestHandler(t *testing.T, cfg *config.Config) (*Handler, *stubGateway) {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logging.NewTestLogger(nil))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	gateway := &stubGateway{}
	svc, err := service.New(graph.New(), gateway, nil, engine)
	if err != nil {
		t.Fatalf("service.New() error = %v", err)
	}

	if cfg == nil {
		cfg = testConfig()
	}
	handler := NewHandler(svc, nil, nil, nil, cfg, "test")
	t.Cleanup(handler.Close)
	return handler, gateway
}

// seedSocialGraph populates the service with a small known graph:
//
//	users:      maya, noah
//	categories: music, comedy
//	events:     JazzNight [music], OpenMic [music], ComedyClash [comedy]
//	maya <-> noah friendship
//	maya attended OpenMic (4), noah attended JazzNight (5)
//
// Warm-start recommendations for maya reach JazzNight through noah.
func seedSocialGraph(t *testing.T, h *Handler) {
	t.Helper()
	ctx := context.Background()

	for _, id := range []string{"maya", "noah"} {
		if err := h.svc.AddUser(ctx, id); err != nil {
			t.Fatalf("AddUser(%q) error = %v", id, err)
		}
	}
	if err := h.svc.AddEvent(ctx, "JazzNight", []string{"music"}); err != nil {
		t.Fatalf("AddEvent(JazzNight) error = %v", err)
	}
	if err := h.svc.AddEvent(ctx, "OpenMic", []string{"music"}); err != nil {
		t.Fatalf("AddEvent(OpenMic) error = %v", err)
	}
	if err := h.svc.AddEvent(ctx, "ComedyClash", []string{"comedy"}); err != nil {
		t.Fatalf("AddEvent(ComedyClash) error = %v", err)
	}
	if err := h.svc.AddFriendship(ctx, "maya", "noah"); err != nil {
		t.Fatalf("AddFriendship() error = %v", err)
	}
	four, five := 4, 5
	if err := h.svc.RecordAttendance(ctx, "maya", "OpenMic", &four); err != nil {
		t.Fatalf("RecordAttendance(maya) error = %v", err)
	}
	if err := h.svc.RecordAttendance(ctx, "noah", "JazzNight", &five); err != nil {
		t.Fatalf("RecordAttendance(noah) error = %v", err)
	}
}

// withChiParam attaches a Chi route context carrying one URL parameter.
func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope unmarshals the standard response envelope.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) *models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v\nbody: %s", err, w.Body.String())
	}
	return &resp
}

// dataMap returns the envelope Data as a map, failing if it is not one.
func dataMap(t *testing.T, resp *models.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want map", resp.Data)
	}
	return m
}

// assertErrorCode checks status code and envelope error code together.
func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d (body: %s)", w.Code, wantStatus, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "error" {
		t.Errorf("Status = %q, want %q", resp.Status, "error")
	}
	if resp.Error == nil {
		t.Fatal("Error is nil, want populated")
	}
	if resp.Error.Code != wantCode {
		t.Errorf("Error.Code = %q, want %q", resp.Error.Code, wantCode)
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, nil)

	if handler.svc == nil {
		t.Error("Expected service to be set")
	}
	if handler.recommendLimiter == nil {
		t.Error("Expected recommendation limiter to be initialized")
	}
	if handler.startTime.IsZero() {
		t.Error("Expected start time to be set")
	}
	if handler.version != "test" {
		t.Errorf("version = %q, want %q", handler.version, "test")
	}
}

func TestNewHandler_NilConfigDefaults(t *testing.T) {
	t.Parallel()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logging.NewTestLogger(nil))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	svc, err := service.New(graph.New(), &stubGateway{}, nil, engine)
	if err != nil {
		t.Fatalf("service.New() error = %v", err)
	}

	handler := NewHandler(svc, nil, nil, nil, nil, "")
	t.Cleanup(handler.Close)

	if handler.recommendLimiter == nil {
		t.Fatal("Expected limiter to fall back to defaults with nil config")
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		corsOrigins    []string
		requestOrigin  string
		expectedResult bool
	}{
		{
			name:           "no origin header - must reject",
			corsOrigins:    []string{"http://localhost:8080"},
			requestOrigin:  "",
			expectedResult: false, // prevents CORS bypass from non-browser clients
		},
		{
			name:           "wildcard origin - allow any",
			corsOrigins:    []string{"*"},
			requestOrigin:  "http://example.com",
			expectedResult: true,
		},
		{
			name:           "exact match - allow",
			corsOrigins:    []string{"http://localhost:8080"},
			requestOrigin:  "http://localhost:8080",
			expectedResult: true,
		},
		{
			name:           "multiple origins - match second",
			corsOrigins:    []string{"http://localhost:8080", "http://example.com"},
			requestOrigin:  "http://example.com",
			expectedResult: true,
		},
		{
			name:           "origin not in list - reject",
			corsOrigins:    []string{"http://localhost:8080"},
			requestOrigin:  "http://evil.com",
			expectedResult: false,
		},
		{
			name:           "empty allowed origins - reject",
			corsOrigins:    []string{},
			requestOrigin:  "http://example.com",
			expectedResult: false,
		},
		{
			name:           "different protocol - reject",
			corsOrigins:    []string{"http://localhost:8080"},
			requestOrigin:  "https://localhost:8080",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Server: config.ServerConfig{
					CORSOrigins: tt.corsOrigins,
				},
			}
			handler := &Handler{config: cfg}

			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}

			if got := handler.checkWebSocketOrigin(req); got != tt.expectedResult {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.expectedResult)
			}
		})
	}
}

func TestCheckWebSocketOrigin_NilConfigAllows(t *testing.T) {
	t.Parallel()

	handler := &Handler{}
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "http://anywhere.example")

	if !handler.checkWebSocketOrigin(req) {
		t.Error("nil config should fail open for tests/development")
	}
}

func TestGetUpgrader(t *testing.T) {
	t.Parallel()

	handler := &Handler{config: testConfig()}
	upgrader := handler.getUpgrader()

	if upgrader.ReadBufferSize != 1024 {
		t.Errorf("ReadBufferSize = %d, want 1024", upgrader.ReadBufferSize)
	}
	if upgrader.WriteBufferSize != 1024 {
		t.Errorf("WriteBufferSize = %d, want 1024", upgrader.WriteBufferSize)
	}
	if upgrader.HandshakeTimeout != 10*time.Second {
		t.Errorf("HandshakeTimeout = %v, want 10s", upgrader.HandshakeTimeout)
	}
	if upgrader.CheckOrigin == nil {
		t.Error("CheckOrigin function should be set")
	}
}

func TestWebSocket_NilHub(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()

	handler.WebSocket(w, req)

	assertErrorCode(t, w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE")
}
