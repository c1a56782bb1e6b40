// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/eventgraph/internal/events"
	"github.com/tomtom215/eventgraph/internal/graph"
	"github.com/tomtom215/eventgraph/internal/logging"
	"github.com/tomtom215/eventgraph/internal/metrics"
	"github.com/tomtom215/eventgraph/internal/recommend"
)

// Operation names used in logs and metric labels.
const (
	opAddUser          = "add_user"
	opRemoveUser       = "remove_user"
	opAddCategory      = "add_category"
	opRemoveCategory   = "remove_category"
	opAddEvent         = "add_event"
	opRemoveEvent      = "remove_event"
	opRecordAttendance = "record_attendance"
	opAddFriendship    = "add_friendship"
)

// Gateway persists graph snapshots. Implementations must serialize the
// whole graph on Snapshot and rebuild it on Restore.
type Gateway interface {
	Snapshot(g *graph.Graph) error
	Restore() (*graph.Graph, error)
}

// Service is the command surface over the graph store.
type Service struct {
	graph     *graph.Graph
	gateway   Gateway
	publisher events.Publisher
	engine    *recommend.Engine
	logger    zerolog.Logger
}

// New creates a service over an existing graph. A nil publisher
// disables event publishing.
func New(g *graph.Graph, gateway Gateway, publisher events.Publisher, engine *recommend.Engine) (*Service, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if gateway == nil {
		return nil, ErrNilGateway
	}
	if engine == nil {
		return nil, ErrNilEngine
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &Service{
		graph:     g,
		gateway:   gateway,
		publisher: publisher,
		engine:    engine,
		logger:    logging.With().Str("component", "service").Logger(),
	}
	s.recordGraphSize()
	return s, nil
}

// DefaultMaxDepth returns the traversal depth used when a request does
// not specify one.
func (s *Service) DefaultMaxDepth() int {
	return s.engine.Config().DefaultMaxDepth
}

// AddUser creates a user vertex.
func (s *Service) AddUser(ctx context.Context, id string) error {
	if s.graph.ContainsVertex(id) {
		metrics.RecordGraphMutation(opAddUser, ErrAlreadyExists)
		return fmt.Errorf("user %q: %w", id, ErrAlreadyExists)
	}

	s.graph.AddVertex(graph.NewUser(id))
	s.logger.Info().Str("user", id).Msg("user added")
	return s.commit(ctx, opAddUser, events.NewGraphEvent(events.TypeUserAdded, id))
}

// RemoveUser deletes a user vertex and every edge referencing it.
func (s *Service) RemoveUser(ctx context.Context, id string) error {
	if _, err := s.vertexOfKind(id, graph.KindUser); err != nil {
		metrics.RecordGraphMutation(opRemoveUser, err)
		return err
	}

	s.graph.RemoveVertex(id)
	s.logger.Info().Str("user", id).Msg("user removed")
	return s.commit(ctx, opRemoveUser, events.NewGraphEvent(events.TypeUserRemoved, id))
}

// AddCategory creates a category vertex.
func (s *Service) AddCategory(ctx context.Context, id string) error {
	if s.graph.ContainsVertex(id) {
		metrics.RecordGraphMutation(opAddCategory, ErrAlreadyExists)
		return fmt.Errorf("category %q: %w", id, ErrAlreadyExists)
	}

	s.graph.AddVertex(graph.NewCategory(id))
	s.logger.Info().Str("category", id).Msg("category added")
	return s.commit(ctx, opAddCategory, events.NewGraphEvent(events.TypeCategoryAdded, id))
}

// RemoveCategory deletes a category vertex and every edge referencing it.
// Events keep the category name in their own category lists.
func (s *Service) RemoveCategory(ctx context.Context, id string) error {
	if _, err := s.vertexOfKind(id, graph.KindCategory); err != nil {
		metrics.RecordGraphMutation(opRemoveCategory, err)
		return err
	}

	s.graph.RemoveVertex(id)
	s.logger.Info().Str("category", id).Msg("category removed")
	return s.commit(ctx, opRemoveCategory, events.NewGraphEvent(events.TypeCategoryRemoved, id))
}

// AddEvent creates an event vertex, materializes any missing category
// vertices, and links event and categories in both directions.
func (s *Service) AddEvent(ctx context.Context, id string, categories []string) error {
	if s.graph.ContainsVertex(id) {
		metrics.RecordGraphMutation(opAddEvent, ErrAlreadyExists)
		return fmt.Errorf("event %q: %w", id, ErrAlreadyExists)
	}

	event := graph.NewEvent(id, categories)
	s.graph.AddVertex(event)

	seen := make(map[string]struct{}, len(categories))
	for _, name := range categories {
		key := graph.Normalize(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		hub, ok := s.graph.GetVertex(name)
		if !ok {
			hub = graph.NewCategory(name)
			s.graph.AddVertex(hub)
		} else if hub.Kind != graph.KindCategory {
			// The id is taken by a user or event; the name stays in the
			// event's category list but gets no hub links.
			s.logger.Warn().Str("event", id).Str("category", name).
				Msg("category id held by non-category vertex, skipping links")
			continue
		}
		s.graph.AddEdge(event, hub)
		s.graph.AddEdge(hub, event)
	}

	s.logger.Info().Str("event", id).Strs("categories", categories).Msg("event added")
	change := events.NewGraphEvent(events.TypeEventAdded, id)
	change.Categories = append([]string(nil), categories...)
	return s.commit(ctx, opAddEvent, change)
}

// RemoveEvent deletes an event vertex and every edge referencing it.
// Attendance lists shrink through the cascade as well.
func (s *Service) RemoveEvent(ctx context.Context, id string) error {
	event, err := s.vertexOfKind(id, graph.KindEvent)
	if err != nil {
		metrics.RecordGraphMutation(opRemoveEvent, err)
		return err
	}

	s.graph.RemoveVertex(id)
	s.dropAttendance(event)
	s.logger.Info().Str("event", id).Msg("event removed")
	return s.commit(ctx, opRemoveEvent, events.NewGraphEvent(events.TypeEventRemoved, id))
}

// RecordAttendance marks a user as having attended an event, with an
// optional rating in [1, 5]. Re-recording an existing attendance is a
// no-op: neither the attendance entry nor the stored rating changes.
func (s *Service) RecordAttendance(ctx context.Context, userID, eventID string, rating *int) error {
	user, err := s.vertexOfKind(userID, graph.KindUser)
	if err != nil {
		metrics.RecordGraphMutation(opRecordAttendance, err)
		return err
	}
	event, err := s.vertexOfKind(eventID, graph.KindEvent)
	if err != nil {
		metrics.RecordGraphMutation(opRecordAttendance, err)
		return err
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		metrics.RecordGraphMutation(opRecordAttendance, ErrInvalidRating)
		return fmt.Errorf("rating %d: %w", *rating, ErrInvalidRating)
	}

	if !user.RecordAttendance(event) {
		// Already attended; nothing changed, nothing to persist.
		metrics.RecordGraphMutation(opRecordAttendance, nil)
		s.logger.Debug().Str("user", userID).Str("event", eventID).Msg("attendance already recorded")
		return nil
	}

	if rating != nil {
		s.graph.AddRatedEdge(user, event, *rating)
	} else {
		s.graph.AddEdge(user, event)
	}

	s.logger.Info().Str("user", userID).Str("event", eventID).Msg("attendance recorded")
	change := events.NewGraphEvent(events.TypeAttendanceRecorded, user.ID)
	change.RelatedID = event.ID
	change.Rating = rating
	return s.commit(ctx, opRecordAttendance, change)
}

// AddFriendship links two users with a pair of directed, unrated edges.
// Adding an existing friendship is a no-op.
func (s *Service) AddFriendship(ctx context.Context, userID, friendID string) error {
	user, err := s.vertexOfKind(userID, graph.KindUser)
	if err != nil {
		metrics.RecordGraphMutation(opAddFriendship, err)
		return err
	}
	friend, err := s.vertexOfKind(friendID, graph.KindUser)
	if err != nil {
		metrics.RecordGraphMutation(opAddFriendship, err)
		return err
	}

	added := s.graph.AddEdge(user, friend)
	added = s.graph.AddEdge(friend, user) || added
	if !added {
		metrics.RecordGraphMutation(opAddFriendship, nil)
		s.logger.Debug().Str("user", userID).Str("friend", friendID).Msg("friendship already exists")
		return nil
	}

	s.logger.Info().Str("user", userID).Str("friend", friendID).Msg("friendship added")
	change := events.NewGraphEvent(events.TypeFriendshipAdded, user.ID)
	change.RelatedID = friend.ID
	return s.commit(ctx, opAddFriendship, change)
}

// Recommendation is the outcome of one recommendation request.
type Recommendation struct {
	UserID   string             `json:"user_id"`
	Policy   string             `json:"policy"`
	MaxDepth int                `json:"max_depth"`
	Events   []RecommendedEvent `json:"events"`
}

// RecommendedEvent is one recommended event in discovery order.
type RecommendedEvent struct {
	ID         string   `json:"id"`
	Categories []string `json:"categories,omitempty"`
}

// Recommend runs the recommendation policies for a user. Cold-start
// users (no attendance) are matched against coldCategories; everyone
// else gets the bounded traversal. maxDepth above the configured limit
// is clamped; maxDepth <= 0 yields an empty warm-start result.
func (s *Service) Recommend(ctx context.Context, userID string, maxDepth int, coldCategories []string) (*Recommendation, error) {
	user, err := s.vertexOfKind(userID, graph.KindUser)
	if err != nil {
		return nil, err
	}

	if limit := s.engine.Config().MaxDepthLimit; maxDepth > limit {
		maxDepth = limit
	}

	start := time.Now()
	results, policy := s.engine.Recommend(s.graph, user, maxDepth, coldCategories)
	metrics.RecordRecommendation(policy.String(), len(results), time.Since(start))

	change := events.NewGraphEvent(events.TypeRecommendationServed, user.ID)
	change.Policy = policy.String()
	change.Results = len(results)
	s.publish(ctx, change)

	rec := &Recommendation{
		UserID:   user.ID,
		Policy:   policy.String(),
		MaxDepth: maxDepth,
		Events:   make([]RecommendedEvent, len(results)),
	}
	for i, v := range results {
		rec.Events[i] = RecommendedEvent{
			ID:         v.ID,
			Categories: append([]string(nil), v.Categories...),
		}
	}
	return rec, nil
}

// AdjacencyView returns the raw-id adjacency mapping for display.
func (s *Service) AdjacencyView() map[string][]string {
	return s.graph.AdjacencyView()
}

// Stats summarizes the graph's size.
type Stats struct {
	Users      int `json:"users"`
	Events     int `json:"events"`
	Categories int `json:"categories"`
	Edges      int `json:"edges"`
}

// Stats returns vertex counts by kind and the total edge count.
func (s *Service) Stats() Stats {
	counts := s.graph.CountByKind()
	return Stats{
		Users:      counts[graph.KindUser],
		Events:     counts[graph.KindEvent],
		Categories: counts[graph.KindCategory],
		Edges:      s.graph.EdgeCount(),
	}
}

// vertexOfKind looks up id and checks its kind; a wrong-kind match
// reports not-found for the requested kind.
func (s *Service) vertexOfKind(id string, kind graph.Kind) (*graph.Vertex, error) {
	v, ok := s.graph.GetVertex(id)
	if !ok || v.Kind != kind {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return v, nil
}

// dropAttendance strips a removed event from every user's attendance
// list. Edge cleanup is RemoveVertex's job; attendance lists are not
// edges and need their own sweep.
func (s *Service) dropAttendance(event *graph.Vertex) {
	for _, v := range s.graph.Vertices() {
		if v.Kind != graph.KindUser {
			continue
		}
		kept := v.Attended[:0]
		for _, attended := range v.Attended {
			if attended.Equal(event) {
				continue
			}
			kept = append(kept, attended)
		}
		for i := len(kept); i < len(v.Attended); i++ {
			v.Attended[i] = nil
		}
		v.Attended = kept
	}
}

// commit runs the write-through snapshot and emits the change event.
// The in-memory mutation has already been applied and is never rolled
// back.
func (s *Service) commit(ctx context.Context, operation string, change *events.GraphEvent) error {
	err := s.snapshotGraph()
	metrics.RecordGraphMutation(operation, err)
	s.recordGraphSize()
	s.publish(ctx, change)
	return err
}

// snapshotGraph writes the full graph through the gateway.
func (s *Service) snapshotGraph() error {
	if err := s.gateway.Snapshot(s.graph); err != nil {
		s.logger.Error().Err(err).Msg("graph snapshot failed")
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}

// publish sends the change event; failures are logged but never
// surface to the caller.
func (s *Service) publish(ctx context.Context, change *events.GraphEvent) {
	if err := s.publisher.Publish(ctx, change); err != nil {
		s.logger.Warn().Err(err).Str("type", change.Type).Msg("publish graph event failed")
	}
}

func (s *Service) recordGraphSize() {
	counts := s.graph.CountByKind()
	metrics.UpdateGraphSize(
		counts[graph.KindUser],
		counts[graph.KindEvent],
		counts[graph.KindCategory],
		s.graph.EdgeCount(),
	)
}
