// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with
// metadata for observability.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Fields:
//   - Status: Response status ("success" or "error")
//   - Data: Response payload (any JSON-serializable type)
//   - Metadata: Request execution metadata (timing, timestamp)
//   - Error: Error details (populated only when Status is "error")
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "alice", "policy": "warm_start", "events": [...]},
//	  "metadata": {
//	    "timestamp": "2026-08-23T12:00:00Z",
//	    "query_time_ms": 2
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "user \"ghost\" not found",
//	    "details": {"id": "ghost"}
//	  },
//	  "metadata": {"timestamp": "2026-08-23T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when the response was generated (RFC3339 format)
//   - QueryTimeMS: Time spent executing the operation in milliseconds
//
// Example:
//
//	{
//	  "timestamp": "2026-08-23T12:00:00Z",
//	  "query_time_ms": 2
//	}
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
// Provides consistent error format across all API endpoints for better client handling.
//
// Fields:
//   - Code: Machine-readable error code (e.g., "NOT_FOUND", "INVALID_RATING")
//   - Message: Human-readable error message
//   - Details: Additional context (field names, constraints, etc.)
//
// Error codes:
//   - NOT_FOUND: Referenced vertex doesn't exist (or holds the wrong kind)
//   - ALREADY_EXISTS: Vertex with the same normalized id already present
//   - VALIDATION_ERROR: Invalid request parameters
//   - INVALID_RATING: Rating outside the 1 to 5 range
//   - PERSISTENCE_ERROR: Mutation applied but the snapshot write failed
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected server failure
//
// Example:
//
//	{
//	  "code": "INVALID_RATING",
//	  "message": "rating 9 out of range",
//	  "details": {"rating": 9}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse reports liveness for the /health endpoint.
//
// Example:
//
//	{"status": "ok", "version": "1.2.0", "uptime_seconds": 4042.7}
type HealthResponse struct {
	Status  string  `json:"status"`
	Version string  `json:"version,omitempty"`
	Uptime  float64 `json:"uptime_seconds,omitempty"`
}

// ReadyResponse reports readiness for the /ready endpoint. Checks maps
// component names to "ok" or a short failure description; Ready is false
// when any check failed.
//
// Example:
//
//	{
//	  "ready": true,
//	  "checks": {"store": "ok", "history": "ok"}
//	}
type ReadyResponse struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}
