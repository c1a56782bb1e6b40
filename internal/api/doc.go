// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package api provides the HTTP surface of the event graph service.
//
// Routing uses Chi with production-hardened ecosystem middleware
// (go-chi/cors for CORS, go-chi/httprate for IP rate limiting) plus the
// in-house request-ID, Prometheus and gzip middleware from
// internal/middleware. Handlers are split by concern:
//
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_helpers.go: response envelope and shared helpers
//   - handlers_graph.go: vertex and edge mutations (users, categories,
//     events, attendance, friendships)
//   - handlers_query.go: recommendations and graph views
//   - handlers_history.go: DuckDB-backed activity log queries
//   - handlers_health.go: liveness and readiness probes
//
// Every endpoint responds with the models.APIResponse envelope; error
// codes map one-to-one onto the service error taxonomy (NOT_FOUND,
// ALREADY_EXISTS, INVALID_RATING, PERSISTENCE_ERROR).
//
// The graph core is single-writer and performs no locking of its own.
// The Handler owns the one RWMutex around the service: mutations take
// the write lock, traversals and views the read lock.
package api
