// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/eventgraph/internal/middleware"
)

// Router sets up HTTP routes using the Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from a handler and middleware factory.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler, so the internal/middleware package
// works with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order. RequestID first so every later
	// layer, including rate-limit rejections, carries the request id.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)    // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer) // Recover from panics
	r.Use(router.chiMiddleware.CORS())

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitoring tools can probe frequently.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.Ready)
	})

	// ========================
	// WebSocket Feed
	// ========================
	// Mounted at the root, outside the gzip/metrics stack: the connection
	// is hijacked on upgrade and must not be wrapped.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWebSocket())
		r.Get("/ws", router.handler.WebSocket)
	})

	// ========================
	// Graph API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		// Queries
		r.Get("/recommendations/{userID}", router.handler.Recommendations)
		r.Get("/graph/adjacency", router.handler.GraphAdjacency)
		r.Get("/graph/stats", router.handler.GraphStats)

		// Activity log
		r.Get("/history/activity", router.handler.HistoryActivity)
		r.Get("/history/top-events", router.handler.HistoryTopEvents)

		// Mutations carry the stricter write limit on top of the general
		// one; every write also costs a snapshot.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())

			r.Post("/users", router.handler.CreateUser)
			r.Delete("/users/{id}", router.handler.DeleteUser)
			r.Post("/categories", router.handler.CreateCategory)
			r.Delete("/categories/{id}", router.handler.DeleteCategory)
			r.Post("/events", router.handler.CreateEvent)
			r.Delete("/events/{id}", router.handler.DeleteEvent)
			r.Post("/attendance", router.handler.RecordAttendance)
			r.Post("/friendships", router.handler.CreateFriendship)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
