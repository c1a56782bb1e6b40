// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package recommend implements the event recommendation engine.
//
// # Policies
//
// Two selection policies, chosen by whether the user has attendance
// history:
//
//   - Cold start: the user has attended nothing. The caller supplies a
//     set of category names and the engine returns every event whose
//     category list intersects it, in graph-iteration order, with no
//     depth bound.
//
//   - Warm start: breadth-first traversal from the user vertex, bounded
//     by a maximum hop depth. The user's preferred categories are the
//     union of categories across attended events. Rating edges (any
//     user→event edge on the path, including friends' ratings) admit an
//     event when its rating clears the configured minimum; category→event
//     edges admit when the event's categories intersect the preferred
//     set. Admitted events are excluded if already attended or already
//     recommended. Categories and other users are explored exactly once;
//     events are never marked visited, so multiple paths may consider the
//     same event before deduplication.
//
// Result order is first-admission (discovery) order in both policies.
// The engine never mutates the graph.
package recommend
