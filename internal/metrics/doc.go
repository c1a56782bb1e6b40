// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Graph size (vertices by kind, edges) and mutation throughput
  - Recommendation latency, policy mix and result counts
  - Snapshot persistence duration, size and failures
  - HTTP request latency and throughput
  - Event bus publish counts and failures
  - Activity history writes and query performance
  - WebSocket connection counts
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

All metrics are registered with the default Prometheus registry at package
init via promauto, so importing the package is enough to make them visible.
Helper functions (RecordGraphMutation, RecordRecommendation, ...) are the
preferred way to update them; direct access to the exported collectors is
available for cases the helpers do not cover.
*/
package metrics
