// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package recommend

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/eventgraph/internal/graph"
)

// Policy identifies which selection policy produced a result.
type Policy int

const (
	// PolicyColdStart selects events by caller-chosen categories when
	// the user has no attendance history.
	PolicyColdStart Policy = iota
	// PolicyWarmStart selects events by bounded BFS over ratings,
	// categories, and friendships.
	PolicyWarmStart
)

// String returns the policy name used in logs and metrics labels.
func (p Policy) String() string {
	switch p {
	case PolicyColdStart:
		return "cold_start"
	case PolicyWarmStart:
		return "warm_start"
	default:
		return "unknown"
	}
}

// Engine runs the recommendation policies. It holds no graph state of its
// own; each call reads the graph passed to it, so the engine is safe to
// share as long as callers serialize graph access.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine validates cfg and returns a ready engine.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend dispatches on the user's attendance history: cold start when
// it is empty (using the caller-chosen categories), warm start otherwise.
// Returns the recommended events in discovery order plus the policy used.
func (e *Engine) Recommend(g *graph.Graph, user *graph.Vertex, maxDepth int, coldCategories []string) ([]*graph.Vertex, Policy) {
	if len(user.Attended) == 0 {
		return e.ColdStart(g, coldCategories), PolicyColdStart
	}
	return e.WarmStart(g, user, maxDepth), PolicyWarmStart
}

// ColdStart returns every event whose category list intersects the chosen
// set, in graph-iteration order. No depth bound and no exclusions beyond
// the category match; category names are compared in normalized form.
func (e *Engine) ColdStart(g *graph.Graph, categories []string) []*graph.Vertex {
	chosen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		chosen[graph.Normalize(c)] = struct{}{}
	}

	results := make([]*graph.Vertex, 0)
	for _, v := range g.Vertices() {
		if v.Kind != graph.KindEvent {
			continue
		}
		if intersects(v.Categories, chosen) {
			results = append(results, v)
		}
	}

	e.logger.Debug().
		Int("chosen_categories", len(chosen)).
		Int("results", len(results)).
		Msg("cold-start selection complete")
	return results
}

// frontierItem pairs a vertex with its BFS depth.
type frontierItem struct {
	vertex *graph.Vertex
	depth  int
}

// WarmStart runs the bounded BFS policy from the user vertex.
//
// The frontier is processed FIFO. A vertex popped at depth d is expanded
// only while d < maxDepth; nodes already enqueued stay eligible once the
// bound is hit, so maxDepth <= 0 yields an empty result.
//
// Categories and other users are marked visited at first reach and
// explored exactly once. Events are never marked visited: a rating path
// and a category path may each consider the same event, with the admitted
// set deduplicating the result. Every unvisited neighbor joins the
// frontier one hop deeper, which is what carries the search through an
// attended event to its category hub and onward to sibling events.
func (e *Engine) WarmStart(g *graph.Graph, user *graph.Vertex, maxDepth int) []*graph.Vertex {
	preferred := preferredCategories(user)

	visited := map[string]struct{}{graph.Normalize(user.ID): {}}
	queue := []frontierItem{{vertex: user, depth: 0}}

	results := make([]*graph.Vertex, 0)
	admitted := make(map[string]struct{})

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.depth >= maxDepth {
			continue
		}

		for _, edge := range item.vertex.Out {
			neighbor := edge.To
			if _, ok := visited[graph.Normalize(neighbor.ID)]; ok {
				continue
			}

			if neighbor.Kind == graph.KindEvent {
				switch item.vertex.Kind {
				case graph.KindUser:
					// Rating edge: the seed's or a friend's
					// scored attendance.
					if edge.Rated && edge.Weight >= e.cfg.MinRating &&
						!user.HasAttended(neighbor) {
						admit(neighbor, &results, admitted)
					}
				case graph.KindCategory:
					if intersects(neighbor.Categories, preferred) &&
						!user.HasAttended(neighbor) {
						admit(neighbor, &results, admitted)
					}
				}
			} else {
				visited[graph.Normalize(neighbor.ID)] = struct{}{}
			}

			queue = append(queue, frontierItem{vertex: neighbor, depth: item.depth + 1})
		}
	}

	e.logger.Debug().
		Str("user", user.ID).
		Int("max_depth", maxDepth).
		Int("preferred_categories", len(preferred)).
		Int("results", len(results)).
		Msg("warm-start traversal complete")
	return results
}

// admit appends event to results unless it was already recommended.
func admit(event *graph.Vertex, results *[]*graph.Vertex, admitted map[string]struct{}) {
	key := graph.Normalize(event.ID)
	if _, dup := admitted[key]; dup {
		return
	}
	admitted[key] = struct{}{}
	*results = append(*results, event)
}

// preferredCategories is the union of normalized category names across
// the user's attended events.
func preferredCategories(user *graph.Vertex) map[string]struct{} {
	set := make(map[string]struct{})
	for _, event := range user.Attended {
		for _, c := range event.Categories {
			set[graph.Normalize(c)] = struct{}{}
		}
	}
	return set
}

// intersects reports whether any of the names, once normalized, is in set.
func intersects(names []string, set map[string]struct{}) bool {
	for _, name := range names {
		if _, ok := set[graph.Normalize(name)]; ok {
			return true
		}
	}
	return false
}
