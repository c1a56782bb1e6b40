// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package service

import "errors"

// Service errors
var (
	// ErrNotFound is returned when a referenced vertex of the required
	// kind does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a vertex whose id is
	// already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidRating is returned when an attendance rating is outside [1, 5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrPersistenceFailure is returned when the write-through snapshot
	// fails. The in-memory mutation has already been applied.
	ErrPersistenceFailure = errors.New("snapshot persistence failed")

	// ErrNilGraph is returned when constructing a service without a graph.
	ErrNilGraph = errors.New("graph cannot be nil")

	// ErrNilGateway is returned when constructing a service without a
	// persistence gateway.
	ErrNilGateway = errors.New("persistence gateway cannot be nil")

	// ErrNilEngine is returned when constructing a service without a
	// recommendation engine.
	ErrNilEngine = errors.New("recommendation engine cannot be nil")
)
