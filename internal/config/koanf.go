// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/eventgraph/config.yaml",
	"/etc/eventgraph/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "EVENTGRAPH_CONFIG"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   8080,
			Timeout:                30 * time.Second,
			CORSOrigins:            []string{"*"},
			RateLimitRequests:      100,
			RateLimitWindow:        1 * time.Minute,
			RateLimitDisabled:      false,
			RecommendRatePerSecond: 5,
			RecommendRateBurst:     10,
		},
		Data: DataConfig{
			Dir:           "/data/graph",
			SyncWrites:    true,
			SeedDemoGraph: false,
		},
		Recommend: RecommendConfig{
			DefaultMaxDepth: 6,
			MinRating:       3,
			MaxDepthLimit:   25,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 256,
			NATS: NATSConfig{
				Enabled:             false,
				URL:                 "nats://127.0.0.1:4222",
				EmbeddedServer:      true,
				StoreDir:            "/data/nats/jetstream",
				MaxMemory:           1 << 30,  // 1GB
				MaxStore:            10 << 30, // 10GB
				StreamRetentionDays: 7,
				DurableName:         "graph-processor",
				QueueGroup:          "processors",
				SubscribersCount:    1,
			},
		},
		History: HistoryConfig{
			Enabled:   true,
			Path:      "/data/eventgraph.duckdb",
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices when supplied via environment variables.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so that random environment variables do
// not pollute the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DATA_DIR -> data.dir
//   - NATS_URL -> events.nats.url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":                 "server.host",
		"http_port":                 "server.port",
		"http_timeout":              "server.timeout",
		"cors_origins":              "server.cors_origins",
		"rate_limit_requests":       "server.rate_limit_requests",
		"rate_limit_window":         "server.rate_limit_window",
		"disable_rate_limit":        "server.rate_limit_disabled",
		"recommend_rate_per_second": "server.recommend_rate_per_second",
		"recommend_rate_burst":      "server.recommend_rate_burst",

		// Data mappings
		"data_dir":         "data.dir",
		"data_sync_writes": "data.sync_writes",
		"seed_demo_graph":  "data.seed_demo_graph",

		// Recommendation mappings
		"recommend_default_max_depth": "recommend.default_max_depth",
		"recommend_min_rating":        "recommend.min_rating",
		"recommend_max_depth_limit":   "recommend.max_depth_limit",

		// Event pipeline mappings
		"events_enabled":      "events.enabled",
		"events_buffer_size":  "events.buffer_size",
		"nats_enabled":        "events.nats.enabled",
		"nats_url":            "events.nats.url",
		"nats_embedded":       "events.nats.embedded_server",
		"nats_store_dir":      "events.nats.store_dir",
		"nats_max_memory":     "events.nats.max_memory",
		"nats_max_store":      "events.nats.max_store",
		"nats_retention_days": "events.nats.stream_retention_days",
		"nats_durable_name":   "events.nats.durable_name",
		"nats_queue_group":    "events.nats.queue_group",
		"nats_subscribers":    "events.nats.subscribers_count",

		// History mappings
		"history_enabled":   "history.enabled",
		"duckdb_path":       "history.path",
		"duckdb_max_memory": "history.max_memory",
		"duckdb_threads":    "history.threads",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Skip unmapped keys.
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for mutex protection when swapping
// configuration during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
