// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for request ID tracking,
Prometheus metrics instrumentation, and gzip compression. The api package
bridges these http.HandlerFunc middlewares into its Chi router; CORS and
rate limiting live in the api package because they are configured from the
server config.

Key Components:

  - Request ID: UUID-based request tracking for log correlation
  - Prometheus Metrics: HTTP request/response instrumentation plus
    slow-request logging
  - Compression: Gzip compression for large responses such as
    adjacency dumps

Middleware Stack:

The typical stack applied by the api router is:

	middleware.RequestID(                      // Layer 1: Request tracking
	    cors.Handler(                          // Layer 2: CORS headers
	        httprate.Limit(                    // Layer 3: Rate limiting
	            middleware.PrometheusMetrics(  // Layer 4: Metrics
	                middleware.Compression(    // Layer 5: Gzip
	                    handler,               // Layer 6: Business logic
	                ),
	            ),
	        ),
	    ),
	)

RequestID sits outermost so that every later layer, including the
slow-request log inside PrometheusMetrics, sees the request id in the
context.

Usage Example - Request ID:

	http.HandleFunc("/api/v1/users",
	    middleware.RequestID(handler),
	)

	// Access request ID in the handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Info().Str("request_id", requestID).Msg("processing")
	}

Usage Example - Compression:

	// Adjacency and recommendation payloads compress well; responses
	// are gzipped whenever the client sends Accept-Encoding: gzip.
	http.HandleFunc("/api/v1/graph/adjacency",
	    middleware.Compression(handler),
	)

Thread Safety:

All middleware components are thread-safe:
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations
  - Compression pools gzip writers with sync.Pool

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
  - internal/logging: request_id/correlation_id context helpers
*/
package middleware
