// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Graph store size and mutation throughput
// - Recommendation engine latency and result counts
// - Snapshot persistence (BadgerDB)
// - API endpoint latency and throughput
// - Event bus publishing
// - Activity history (DuckDB)
// - WebSocket connections

var (
	// Graph Store Metrics
	GraphVertices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_vertices",
			Help: "Current number of vertices in the graph by kind",
		},
		[]string{"kind"}, // "user", "event", "category"
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "graph_edges",
			Help: "Current number of directed edges in the graph",
		},
	)

	GraphMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_mutations_total",
			Help: "Total number of graph mutations",
		},
		[]string{"operation", "status"}, // status: "success", "error"
	)

	// Recommendation Metrics
	RecommendationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by policy",
		},
		[]string{"policy"}, // "cold_start", "warm_start"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation traversals in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}, // In-memory traversal, sub-millisecond expected
		},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of events returned per recommendation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	// Snapshot Persistence Metrics
	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_duration_seconds",
			Help:    "Duration of graph snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_failures_total",
			Help: "Total number of failed graph snapshot writes",
		},
	)

	SnapshotSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_size_bytes",
			Help: "Size of the last serialized graph snapshot in bytes",
		},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp",
			Help: "Unix timestamp of last successful snapshot write",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of graph events published to the bus",
		},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Total number of failed graph event publishes",
		},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of graph events consumed from the bus",
		},
		[]string{"consumer"}, // "history", "websocket"
	)

	// Activity History Metrics (DuckDB)
	HistoryRowsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_rows_written_total",
			Help: "Total number of activity rows written to the history store",
		},
	)

	HistoryWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_write_errors_total",
			Help: "Total number of failed activity row writes",
		},
	)

	HistoryQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "history_query_duration_seconds",
			Help:    "Duration of history store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"}, // "recent_activity", "top_events"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Total number of WebSocket broadcasts dropped due to full buffers",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordGraphMutation records a graph mutation and its outcome.
func RecordGraphMutation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	GraphMutationsTotal.WithLabelValues(operation, status).Inc()
}

// UpdateGraphSize updates the vertex and edge gauges after a mutation.
func UpdateGraphSize(users, events, categories, edges int) {
	GraphVertices.WithLabelValues("user").Set(float64(users))
	GraphVertices.WithLabelValues("event").Set(float64(events))
	GraphVertices.WithLabelValues("category").Set(float64(categories))
	GraphEdges.Set(float64(edges))
}

// RecordRecommendation records a recommendation request metric.
func RecordRecommendation(policy string, results int, duration time.Duration) {
	RecommendationRequestsTotal.WithLabelValues(policy).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationResults.Observe(float64(results))
}

// RecordSnapshot records a snapshot write metric.
func RecordSnapshot(duration time.Duration, sizeBytes int, err error) {
	SnapshotDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotFailures.Inc()
		return
	}
	SnapshotSizeBytes.Set(float64(sizeBytes))
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection for an endpoint.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordEventPublish records a graph event publish and its outcome.
func RecordEventPublish(err error) {
	if err != nil {
		EventPublishFailures.Inc()
		return
	}
	EventsPublished.Inc()
}

// RecordEventConsumed records a graph event consumed by a named consumer.
func RecordEventConsumed(consumer string) {
	EventsConsumed.WithLabelValues(consumer).Inc()
}

// RecordHistoryWrite records an activity history insert and its outcome.
func RecordHistoryWrite(err error) {
	if err != nil {
		HistoryWriteErrors.Inc()
		return
	}
	HistoryRowsWritten.Inc()
}

// RecordHistoryQuery records a history store query metric.
func RecordHistoryQuery(query string, duration time.Duration) {
	HistoryQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// TrackWSConnection tracks WebSocket connection counts.
func TrackWSConnection(inc bool) {
	if inc {
		WSConnections.Inc()
	} else {
		WSConnections.Dec()
	}
}

// RecordWSMessageSent records a WebSocket message delivery.
func RecordWSMessageSent() {
	WSMessagesSent.Inc()
}

// RecordWSMessageDropped records a dropped WebSocket broadcast.
func RecordWSMessageDropped() {
	WSMessagesDropped.Inc()
}

// RecordBreakerTransition records a circuit breaker state change.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// SetAppInfo publishes version and build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// UpdateUptime sets the uptime gauge from a start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
