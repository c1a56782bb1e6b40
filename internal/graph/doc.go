// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package graph implements the in-memory social/event graph at the core of
// the service: a labeled, directed, optionally weighted graph of users,
// events, and categories.
//
// # Model
//
// Vertices are a tagged variant over three kinds (user, event, category),
// carrying kind-specific payload: users track an ordered attendance list,
// events carry their category names, categories are bare topical hubs.
// Edges are directed and live only on their source vertex's outgoing list;
// an undirected relation (friendship, event↔category membership) is two
// directed edges.
//
// # Identity
//
// The store is the sole authority over identifier normalization: lookup
// keys are lowercased and whitespace-trimmed, while the raw id used at
// creation time is retained on the vertex for display. Vertex equality is
// the stricter raw-id comparison; edge equality compares endpoints only
// and deliberately ignores weight, so re-adding an existing edge with a
// different weight is a no-op that keeps the first weight.
//
// # Concurrency
//
// Graph is not goroutine-safe. Callers that expose it to concurrent
// requests must serialize access one layer above (see internal/api).
package graph
