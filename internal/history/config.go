// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package history

// Config holds the DuckDB connection settings for the activity store.
type Config struct {
	// Path is the DuckDB database file. ":memory:" creates an
	// in-process database that vanishes on close.
	Path string

	// MaxMemory caps DuckDB's memory usage (e.g. "2GB").
	MaxMemory string

	// Threads limits DuckDB's worker threads. Zero means one per CPU.
	Threads int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Path:      "/data/eventgraph.duckdb",
		MaxMemory: "2GB",
		Threads:   0,
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	if c.Path == "" {
		return &ConfigError{Field: "Path", Message: "database path is required"}
	}
	if c.MaxMemory == "" {
		return &ConfigError{Field: "MaxMemory", Message: "memory limit is required"}
	}
	if c.Threads < 0 {
		return &ConfigError{Field: "Threads", Message: "thread count cannot be negative"}
	}
	return nil
}

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "history config error: " + e.Field + ": " + e.Message
}
