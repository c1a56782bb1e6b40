// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file for persistent settings
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	History   HistoryConfig   `koanf:"history"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Listen address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
//   - RECOMMEND_RATE_PER_SECOND: Per-client recommendation rate (default: 5)
//   - RECOMMEND_RATE_BURST: Per-client recommendation burst (default: 10)
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// Recommendation traversals are the most expensive requests, so they
	// carry their own per-client token bucket on top of the group limit.
	RecommendRatePerSecond float64 `koanf:"recommend_rate_per_second"`
	RecommendRateBurst     int     `koanf:"recommend_rate_burst"`
}

// DataConfig holds graph snapshot storage settings.
//
// Environment Variables:
//   - DATA_DIR: Directory for BadgerDB snapshot storage (default: /data/graph)
//   - DATA_SYNC_WRITES: fsync every snapshot write (default: true)
//   - SEED_DEMO_GRAPH: Seed a demo graph when the store is empty (default: false)
type DataConfig struct {
	Dir           string `koanf:"dir"`
	SyncWrites    bool   `koanf:"sync_writes"`
	SeedDemoGraph bool   `koanf:"seed_demo_graph"`
}

// RecommendConfig holds recommendation traversal settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_MAX_DEPTH: Depth used when a request omits one (default: 6)
//   - RECOMMEND_MIN_RATING: Minimum rating for an edge to recommend through (default: 3)
//   - RECOMMEND_MAX_DEPTH_LIMIT: Hard cap on requested depth (default: 25)
type RecommendConfig struct {
	DefaultMaxDepth int `koanf:"default_max_depth"`
	MinRating       int `koanf:"min_rating"`
	MaxDepthLimit   int `koanf:"max_depth_limit"`
}

// EventsConfig holds event pipeline settings. The default in-process bus
// needs only a buffer size; the NATS section applies to builds with the
// nats tag or deployments pointing at an external server.
//
// Environment Variables:
//   - EVENTS_ENABLED: Publish graph change events (default: true)
//   - EVENTS_BUFFER_SIZE: In-process bus buffer (default: 256)
//   - NATS_ENABLED: Use NATS JetStream transport (default: false)
//   - NATS_URL: External server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: Run an embedded server (default: true)
//   - NATS_STORE_DIR: JetStream storage directory (default: /data/nats/jetstream)
//   - NATS_MAX_MEMORY / NATS_MAX_STORE: JetStream limits
//   - NATS_RETENTION_DAYS: Stream retention in days (default: 7)
//   - NATS_DURABLE_NAME / NATS_QUEUE_GROUP / NATS_SUBSCRIBERS
type EventsConfig struct {
	Enabled    bool       `koanf:"enabled"`
	BufferSize int        `koanf:"buffer_size"`
	NATS       NATSConfig `koanf:"nats"`
}

// NATSConfig holds NATS JetStream transport settings.
type NATSConfig struct {
	Enabled             bool   `koanf:"enabled"`
	URL                 string `koanf:"url"`
	EmbeddedServer      bool   `koanf:"embedded_server"`
	StoreDir            string `koanf:"store_dir"`
	MaxMemory           int64  `koanf:"max_memory"`
	MaxStore            int64  `koanf:"max_store"`
	StreamRetentionDays int    `koanf:"stream_retention_days"`
	DurableName         string `koanf:"durable_name"`
	QueueGroup          string `koanf:"queue_group"`
	SubscribersCount    int    `koanf:"subscribers_count"`
}

// HistoryConfig holds activity history settings (DuckDB).
//
// Environment Variables:
//   - HISTORY_ENABLED: Record graph activity to DuckDB (default: true)
//   - DUCKDB_PATH: Database file path (default: /data/eventgraph.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
//   - DUCKDB_THREADS: DuckDB thread count, 0 = NumCPU (default: 0)
type HistoryConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that the configuration is coherent. It is called by
// Load, so a *Config obtained from Load is always valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1 second")
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Server.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1 second")
		}
	}
	if c.Server.RecommendRatePerSecond <= 0 {
		return fmt.Errorf("RECOMMEND_RATE_PER_SECOND must be positive")
	}
	if c.Server.RecommendRateBurst < 1 {
		return fmt.Errorf("RECOMMEND_RATE_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultMaxDepth < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_MAX_DEPTH must be at least 1")
	}
	if c.Recommend.MinRating < 1 || c.Recommend.MinRating > 5 {
		return fmt.Errorf("RECOMMEND_MIN_RATING must be between 1 and 5, got %d", c.Recommend.MinRating)
	}
	if c.Recommend.MaxDepthLimit < c.Recommend.DefaultMaxDepth {
		return fmt.Errorf("RECOMMEND_MAX_DEPTH_LIMIT must be at least RECOMMEND_DEFAULT_MAX_DEPTH")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be at least 1")
	}
	if c.Events.NATS.Enabled {
		if !c.Events.NATS.EmbeddedServer && c.Events.NATS.URL == "" {
			return fmt.Errorf("NATS_URL is required when NATS_ENABLED=true and NATS_EMBEDDED=false")
		}
		if c.Events.NATS.SubscribersCount < 1 {
			return fmt.Errorf("NATS_SUBSCRIBERS must be at least 1")
		}
		if c.Events.NATS.StreamRetentionDays < 1 {
			return fmt.Errorf("NATS_RETENTION_DAYS must be at least 1")
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required when HISTORY_ENABLED=true")
	}
	if c.History.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
