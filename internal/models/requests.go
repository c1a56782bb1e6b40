// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package models

// CreateUserRequest adds a user vertex to the graph.
//
// The id is stored as given; lookups normalize it (trim, lowercase), so
// "  Alice " and "alice" refer to the same vertex. A whitespace-only id
// would normalize to the empty key and is rejected by notblank.
//
// Example:
//
//	{"id": "alice"}
type CreateUserRequest struct {
	ID string `json:"id" validate:"required,notblank,max=256"`
}

// CreateCategoryRequest adds a category vertex to the graph.
//
// Example:
//
//	{"id": "comedy"}
type CreateCategoryRequest struct {
	ID string `json:"id" validate:"required,notblank,max=256"`
}

// CreateEventRequest adds an event vertex and links it to its categories.
//
// Category hubs that do not exist yet are created on the fly; names that
// normalize to the same key are linked once. Categories may be empty for
// an uncategorized event.
//
// Example:
//
//	{"id": "ComedyClash", "categories": ["comedy", "theatre"]}
type CreateEventRequest struct {
	ID         string   `json:"id" validate:"required,notblank,max=256"`
	Categories []string `json:"categories" validate:"omitempty,max=64,dive,notblank,max=256"`
}

// RecordAttendanceRequest marks a user as having attended an event,
// optionally with a rating.
//
// Rating is intentionally unbounded here: the service enforces the 1 to 5
// range so that an out-of-range value surfaces as INVALID_RATING rather
// than a generic VALIDATION_ERROR.
//
// Example:
//
//	{"user_id": "alice", "event_id": "ComedyClash", "rating": 4}
type RecordAttendanceRequest struct {
	UserID  string `json:"user_id" validate:"required,notblank,max=256"`
	EventID string `json:"event_id" validate:"required,notblank,max=256"`
	Rating  *int   `json:"rating,omitempty"`
}

// CreateFriendshipRequest links two users in both directions. Repeating
// the request (in either order) is a no-op.
//
// Example:
//
//	{"user_id": "alice", "friend_id": "bob"}
type CreateFriendshipRequest struct {
	UserID   string `json:"user_id" validate:"required,notblank,max=256"`
	FriendID string `json:"friend_id" validate:"required,notblank,max=256"`
}
