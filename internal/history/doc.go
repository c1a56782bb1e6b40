// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package history persists graph activity to DuckDB for analytical queries.
//
// Every mutation and recommendation published on the event bus is
// appended to the graph_activity table by a Consumer subscribed to the
// bus. The table feeds two read endpoints: recent activity (a reverse
// chronological feed) and top events (attendance counts with average
// ratings over a window).
//
// The store is an append-only side channel: the graph itself is
// persisted by internal/store, and losing the history database loses
// analytics, never graph state. History can be disabled entirely in
// configuration, in which case neither the store nor the consumer is
// started.
//
// Queries are parameterized and context-scoped with a 30-second default
// timeout. The DuckDB connection string carries thread and memory
// limits from configuration.
package history
