// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package recommend

import "fmt"

// Config holds the engine's tuning knobs.
type Config struct {
	// DefaultMaxDepth is the traversal bound used when a request does
	// not specify one.
	DefaultMaxDepth int

	// MinRating is the minimum edge weight for a rating edge to admit
	// its event as a recommendation.
	MinRating int

	// MaxDepthLimit caps the depth a caller may request.
	MaxDepthLimit int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultMaxDepth: 6,
		MinRating:       3,
		MaxDepthLimit:   25,
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.DefaultMaxDepth < 1 {
		return fmt.Errorf("default max depth must be >= 1, got %d", c.DefaultMaxDepth)
	}
	if c.MinRating < 1 || c.MinRating > 5 {
		return fmt.Errorf("min rating must be in [1,5], got %d", c.MinRating)
	}
	if c.MaxDepthLimit < c.DefaultMaxDepth {
		return fmt.Errorf("max depth limit %d below default max depth %d", c.MaxDepthLimit, c.DefaultMaxDepth)
	}
	return nil
}
