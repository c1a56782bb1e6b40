// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package graph

import "strings"

// Kind identifies the variant of a Vertex.
type Kind int

const (
	// KindUser is a person who attends events and has friends.
	KindUser Kind = iota
	// KindEvent is an attendable event tagged with category names.
	KindEvent
	// KindCategory is a topical hub linking events that share a topic.
	KindCategory
)

// String returns the lowercase name of the kind for logging and views.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindEvent:
		return "event"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Vertex is a node in the graph. It is a tagged variant: Kind selects
// which payload fields are meaningful. ID holds the raw identifier exactly
// as given at creation time; lookups go through Normalize instead.
type Vertex struct {
	// ID is the raw identifier, preserved for display.
	ID string

	// Kind selects the variant.
	Kind Kind

	// Out is the ordered outgoing edge list. Insertion order is
	// preserved and no two edges share the same (from, to) pair.
	Out []*Edge

	// Attended is the ordered attendance history. Meaningful only for
	// KindUser; nil otherwise.
	Attended []*Vertex

	// Categories holds the event's topic names as given at creation.
	// Meaningful only for KindEvent; nil otherwise.
	Categories []string
}

// NewUser returns a user vertex with an empty attendance history.
func NewUser(id string) *Vertex {
	return &Vertex{ID: id, Kind: KindUser}
}

// NewEvent returns an event vertex tagged with the given category names.
// The names are stored as given; they need not correspond to existing
// category vertices at construction time.
func NewEvent(id string, categories []string) *Vertex {
	return &Vertex{ID: id, Kind: KindEvent, Categories: categories}
}

// NewCategory returns a category vertex.
func NewCategory(id string) *Vertex {
	return &Vertex{ID: id, Kind: KindCategory}
}

// Equal reports whether two vertices are the same entity. Equality is by
// raw id, deliberately stricter than the normalized lookup equality used
// for store keys.
func (v *Vertex) Equal(other *Vertex) bool {
	return v != nil && other != nil && v.ID == other.ID
}

// HasAttended reports whether the user's attendance history contains the
// given event, by vertex equality.
func (v *Vertex) HasAttended(event *Vertex) bool {
	for _, attended := range v.Attended {
		if attended.Equal(event) {
			return true
		}
	}
	return false
}

// RecordAttendance appends event to the user's attendance history unless
// it is already present. Returns true if the history changed.
func (v *Vertex) RecordAttendance(event *Vertex) bool {
	if v.HasAttended(event) {
		return false
	}
	v.Attended = append(v.Attended, event)
	return true
}

// Edge is a directed arc between two vertices. Weight is meaningful only
// when Rated is true (user→event rating edges); structural edges such as
// friendship and event↔category links are unrated.
type Edge struct {
	From   *Vertex
	To     *Vertex
	Weight int
	Rated  bool
}

// Equal reports whether two edges connect the same endpoints. Weight is
// ignored: an (a, b) edge equals any other (a, b) edge regardless of
// rating, which makes duplicate insertion a no-op that keeps the first
// weight.
func (e *Edge) Equal(other *Edge) bool {
	return e != nil && other != nil && e.From.Equal(other.From) && e.To.Equal(other.To)
}

// Normalize maps an identifier to its lookup key: lowercased and stripped
// of surrounding whitespace. Two ids that normalize identically address
// the same vertex slot.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
