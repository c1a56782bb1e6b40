// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package graph

import "sort"

// Graph is the vertex registry and adjacency store. Vertices are keyed by
// their normalized id; edges live on their source vertex's Out list, so
// the graph as a whole is an adjacency list keyed by source.
//
// Graph is not goroutine-safe; see the package documentation.
type Graph struct {
	vertices map[string]*Vertex
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{vertices: make(map[string]*Vertex)}
}

// AddVertex inserts v at its normalized id, silently replacing any vertex
// already in that slot. Callers that must not overwrite check
// ContainsVertex first; the replaced vertex's edges are only cleaned up
// by a later RemoveVertex.
func (g *Graph) AddVertex(v *Vertex) {
	g.vertices[Normalize(v.ID)] = v
}

// GetVertex looks up a vertex by any case/whitespace variant of its id.
func (g *Graph) GetVertex(id string) (*Vertex, bool) {
	v, ok := g.vertices[Normalize(id)]
	return v, ok
}

// ContainsVertex reports whether a vertex exists at the normalized id.
func (g *Graph) ContainsVertex(id string) bool {
	_, ok := g.vertices[Normalize(id)]
	return ok
}

// RemoveVertex deletes the vertex at the normalized id and strips every
// edge referencing it, in either direction, from all remaining vertices.
// The scan compares endpoints by raw-id equality. Removing an absent id
// is a no-op.
func (g *Graph) RemoveVertex(id string) {
	removed, ok := g.vertices[Normalize(id)]
	if !ok {
		return
	}
	delete(g.vertices, Normalize(id))

	for _, v := range g.vertices {
		kept := v.Out[:0]
		for _, e := range v.Out {
			if e.From.Equal(removed) || e.To.Equal(removed) {
				continue
			}
			kept = append(kept, e)
		}
		// Release dropped tail entries so they do not pin vertices.
		for i := len(kept); i < len(v.Out); i++ {
			v.Out[i] = nil
		}
		v.Out = kept
	}
}

// AddEdge appends an unrated edge from → to unless an edge with the same
// endpoints already exists. The duplicate check ignores weight. Edges are
// directed; callers wanting a bidirectional relation call twice with the
// arguments swapped. Returns true if an edge was added.
func (g *Graph) AddEdge(from, to *Vertex) bool {
	return g.addEdge(&Edge{From: from, To: to})
}

// AddRatedEdge appends a weighted edge from → to, with the same duplicate
// rule as AddEdge: if any (from, to) edge exists the call is a no-op and
// the existing edge keeps its original weight.
func (g *Graph) AddRatedEdge(from, to *Vertex, weight int) bool {
	return g.addEdge(&Edge{From: from, To: to, Weight: weight, Rated: true})
}

func (g *Graph) addEdge(e *Edge) bool {
	for _, existing := range e.From.Out {
		if existing.Equal(e) {
			return false
		}
	}
	e.From.Out = append(e.From.Out, e)
	return true
}

// RemoveEdge removes the single from → to edge if present. Returns true
// if an edge was removed.
func (g *Graph) RemoveEdge(from, to *Vertex) bool {
	for i, e := range from.Out {
		if e.To.Equal(to) {
			from.Out = append(from.Out[:i], from.Out[i+1:]...)
			return true
		}
	}
	return false
}

// Vertices returns all vertices ordered by normalized id. The ordering
// makes traversals and views deterministic regardless of map iteration.
func (g *Graph) Vertices() []*Vertex {
	keys := make([]string, 0, len(g.vertices))
	for k := range g.vertices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Vertex, len(keys))
	for i, k := range keys {
		out[i] = g.vertices[k]
	}
	return out
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, v := range g.vertices {
		n += len(v.Out)
	}
	return n
}

// CountByKind returns the number of vertices of each kind.
func (g *Graph) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, v := range g.vertices {
		counts[v.Kind]++
	}
	return counts
}

// AdjacencyView returns a display mapping from each vertex's raw id to
// the raw ids of its outgoing neighbors in edge insertion order. The map
// is a copy; mutating it does not affect the graph.
func (g *Graph) AdjacencyView() map[string][]string {
	view := make(map[string][]string, len(g.vertices))
	for _, v := range g.vertices {
		neighbors := make([]string, len(v.Out))
		for i, e := range v.Out {
			neighbors[i] = e.To.ID
		}
		view[v.ID] = neighbors
	}
	return view
}
