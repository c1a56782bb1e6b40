// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package service

import (
	"context"
	"fmt"
)

// seedAttendance pairs a user with an event and a rating for the demo
// dataset.
type seedAttendance struct {
	user   string
	event  string
	rating int
}

// SeedDemoGraph populates an empty graph with the demo dataset:
// five categories, three users, eight events and a handful of rated
// attendances. Applied through the regular operations, so persistence
// and events behave exactly as for live mutations. A non-empty graph
// is left untouched.
func (s *Service) SeedDemoGraph(ctx context.Context) error {
	if s.graph.Len() > 0 {
		s.logger.Debug().Int("vertices", s.graph.Len()).Msg("graph not empty, skipping demo seed")
		return nil
	}

	for _, category := range []string{"concert", "comedy", "charity", "theatre", "workshops"} {
		if err := s.AddCategory(ctx, category); err != nil {
			return fmt.Errorf("seed category %q: %w", category, err)
		}
	}

	for _, user := range []string{"A", "B", "C"} {
		if err := s.AddUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", user, err)
		}
	}

	demoEvents := []struct {
		id         string
		categories []string
	}{
		{"ComedyClash", []string{"comedy", "theatre"}},
		{"KIDULTING! Comedy Special", []string{"comedy", "theatre"}},
		{"Mads Comedy Night", []string{"comedy", "theatre"}},
		{"FantasticDuoConcert", []string{"concert"}},
		{"Lovely Day Charity Concert", []string{"charity", "concert"}},
		{"VarietyCharityConcert", []string{"charity", "concert", "theatre"}},
		{"PythonWorkshop", []string{"workshops"}},
		{"AI Bootcamp", []string{"workshops"}},
	}
	for _, e := range demoEvents {
		if err := s.AddEvent(ctx, e.id, e.categories); err != nil {
			return fmt.Errorf("seed event %q: %w", e.id, err)
		}
	}

	attendances := []seedAttendance{
		{"A", "ComedyClash", 4},
		{"B", "FantasticDuoConcert", 5},
		{"B", "VarietyCharityConcert", 3},
		{"C", "PythonWorkshop", 5},
		{"C", "AI Bootcamp", 4},
		{"C", "Mads Comedy Night", 2},
	}
	for _, a := range attendances {
		rating := a.rating
		if err := s.RecordAttendance(ctx, a.user, a.event, &rating); err != nil {
			return fmt.Errorf("seed attendance %s -> %s: %w", a.user, a.event, err)
		}
	}

	s.logger.Info().
		Int("vertices", s.graph.Len()).
		Int("edges", s.graph.EdgeCount()).
		Msg("demo graph seeded")
	return nil
}
