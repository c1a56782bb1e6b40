// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package events

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
// Increment this when making breaking changes to GraphEvent.
const SchemaVersion = 1

// TopicGraphEvents is the topic all graph events are published on.
const TopicGraphEvents = "graph.events"

// Event type constants.
const (
	// TypeUserAdded indicates a user vertex was created.
	TypeUserAdded = "user.added"
	// TypeUserRemoved indicates a user vertex was removed.
	TypeUserRemoved = "user.removed"
	// TypeCategoryAdded indicates a category vertex was created.
	TypeCategoryAdded = "category.added"
	// TypeCategoryRemoved indicates a category vertex was removed.
	TypeCategoryRemoved = "category.removed"
	// TypeEventAdded indicates an event vertex was created.
	TypeEventAdded = "event.added"
	// TypeEventRemoved indicates an event vertex was removed.
	TypeEventRemoved = "event.removed"
	// TypeAttendanceRecorded indicates a user attended an event.
	TypeAttendanceRecorded = "attendance.recorded"
	// TypeFriendshipAdded indicates a bidirectional friendship was created.
	TypeFriendshipAdded = "friendship.added"
	// TypeRecommendationServed indicates a recommendation request completed.
	TypeRecommendationServed = "recommendation.served"
)

// GraphEvent is the canonical change notification emitted by the
// command service. One event is published per successful mutation and
// per recommendation request.
type GraphEvent struct {
	// Schema version for forward/backward compatibility
	SchemaVersion int `json:"schema_version,omitempty"`

	// Identification
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// VertexID is the raw id of the primary vertex the operation touched.
	VertexID string `json:"vertex_id,omitempty"`

	// RelatedID carries the second vertex for two-vertex operations
	// (the event for attendance, the friend for friendships).
	RelatedID string `json:"related_id,omitempty"`

	// Categories carries the category list for event.added.
	Categories []string `json:"categories,omitempty"`

	// Rating carries the attendance rating; nil means unrated.
	Rating *int `json:"rating,omitempty"`

	// Recommendation details for recommendation.served.
	Policy  string `json:"policy,omitempty"`
	Results int    `json:"results,omitempty"`
}

// NewGraphEvent creates an event with a unique ID, timestamp, and schema version.
func NewGraphEvent(eventType, vertexID string) *GraphEvent {
	return &GraphEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Type:          eventType,
		VertexID:      vertexID,
		Timestamp:     time.Now().UTC(),
	}
}

// GetSchemaVersion returns the schema version, defaulting to 1 for legacy events.
func (e *GraphEvent) GetSchemaVersion() int {
	if e.SchemaVersion == 0 {
		return 1
	}
	return e.SchemaVersion
}

// Validate checks required fields and returns an error if validation fails.
func (e *GraphEvent) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.Type == "" {
		return &ValidationError{Field: "type", Message: "required"}
	}
	return nil
}

// Topic returns the topic this event is published on.
func (e *GraphEvent) Topic() string {
	return TopicGraphEvents
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
