// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/eventgraph/internal/config"
	"github.com/tomtom215/eventgraph/internal/history"
	"github.com/tomtom215/eventgraph/internal/logging"
	"github.com/tomtom215/eventgraph/internal/service"
	"github.com/tomtom215/eventgraph/internal/store"
	ws "github.com/tomtom215/eventgraph/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: shared helper functions
//   - handlers_graph.go: graph mutation endpoints (8 methods)
//   - handlers_query.go: recommendation and graph view endpoints (3 methods)
//   - handlers_history.go: activity log endpoints (2 methods)
//   - handlers_health.go: health and readiness probes (2 methods)
type Handler struct {
	svc       *service.Service
	snapshots *store.Store
	history   *history.Store
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
	version   string

	// mu serializes access to svc. The graph core is single-writer and
	// not goroutine-safe; mutations take the write lock, traversals and
	// views the read lock. This is the only lock around the core.
	mu sync.RWMutex

	// recommendLimiter throttles recommendation traversals per user id.
	// BFS cost scales with graph size, so a single hot user must not be
	// able to monopolize the single-threaded core.
	recommendLimiter *UserRateLimiter
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - svc: graph service owning all mutations and traversals
//   - snapshots: BadgerDB snapshot store, probed by the readiness check
//   - historyStore: DuckDB activity log (nil when history is disabled)
//   - wsHub: WebSocket hub for live graph event broadcasts (nil disables /ws)
//   - cfg: application configuration
//
// The per-user recommendation limiter is sized from
// cfg.Server.RecommendRatePerSecond and RecommendRateBurst.
func NewHandler(svc *service.Service, snapshots *store.Store, historyStore *history.Store, wsHub *ws.Hub, cfg *config.Config, version string) *Handler {
	ratePerSecond := 5.0
	burst := 10
	if cfg != nil {
		ratePerSecond = cfg.Server.RecommendRatePerSecond
		burst = cfg.Server.RecommendRateBurst
	}

	return &Handler{
		svc:              svc,
		snapshots:        snapshots,
		history:          historyStore,
		wsHub:            wsHub,
		config:           cfg,
		startTime:        time.Now(),
		version:          version,
		recommendLimiter: NewUserRateLimiter(ratePerSecond, burst),
	}
}

// Close releases handler-owned resources (the limiter cleanup goroutine).
func (h *Handler) Close() {
	if h.recommendLimiter != nil {
		h.recommendLimiter.Stop()
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout for protection against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// If no origin header, REJECT - legitimate browser WebSockets ALWAYS
	// include Origin. Only non-browser clients (curl, scripts) omit it,
	// and allowing empty Origin would bypass CORS entirely.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (fail open for tests/development)
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Server.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	// Origin not in allowed list - sanitize origin to prevent log injection
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket handles GET /ws, upgrading the connection and attaching the
// client to the hub. Connected clients receive every graph mutation as a
// graph_event message.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		logging.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
