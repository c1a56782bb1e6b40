// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package models defines the wire types shared by the HTTP API.
//
// It contains the standardized response envelope (APIResponse, Metadata,
// APIError) and the request DTOs for every mutating endpoint, each
// carrying the validate tags that internal/validation enforces before a
// request reaches the service layer.
//
// Domain results (recommendations, graph statistics, activity history)
// are returned by their owning packages and travel inside the envelope's
// Data field; this package deliberately holds only the shared wire
// surface so that it can be imported from anywhere without cycles.
package models
