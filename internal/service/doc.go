// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package service implements the command surface over the graph store.

Every operation follows the same shape: validate the referenced
vertices, apply the in-memory mutation, write a full snapshot through
the persistence gateway, then publish a change event on the bus.
Snapshot failures surface as ErrPersistenceFailure but the in-memory
mutation is never rolled back; the store stays authoritative and the
next successful mutation re-persists everything.

Vertex references are kind-checked: removing a user by an event's id,
or recording attendance against a category, reports ErrNotFound — the
vertex of the requested kind does not exist, whatever else occupies
that id.

The service is single-writer. It performs no locking of its own;
concurrent callers must serialize access (the API layer does this with
one RWMutex).
*/
package service
