// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package events

import (
	"fmt"
	"time"
)

// Config holds event bus configuration.
type Config struct {
	// BufferSize is the per-subscriber output buffer of the in-process bus.
	BufferSize int

	// NATS holds the NATS transport configuration. Only consulted when
	// NATS.Enabled is true and the binary was built with -tags=nats.
	NATS NATSConfig
}

// NATSConfig holds NATS JetStream transport configuration.
type NATSConfig struct {
	// Enabled selects the NATS transport over the in-process bus.
	Enabled bool

	// URL is the NATS server connection URL. Ignored when EmbeddedServer
	// is true; the embedded server's client URL is used instead.
	URL string

	// EmbeddedServer runs a nats-server instance inside this process.
	EmbeddedServer bool

	// StoreDir is the JetStream storage directory.
	StoreDir string

	// MaxMemory is the maximum memory for JetStream in bytes.
	MaxMemory int64

	// MaxStore is the maximum disk storage for JetStream in bytes.
	MaxStore int64

	// StreamRetention is how long to keep events in the stream.
	StreamRetention time.Duration

	// DurableName is the consumer durable name for message tracking.
	DurableName string

	// QueueGroup is the queue group for load balancing.
	QueueGroup string

	// SubscribersCount is the number of concurrent message processors.
	SubscribersCount int

	// MaxReconnects bounds client reconnect attempts (-1 = unlimited).
	MaxReconnects int

	// ReconnectWait is the delay between reconnect attempts.
	ReconnectWait time.Duration
}

// DefaultConfig returns production defaults for the event bus.
func DefaultConfig() Config {
	return Config{
		BufferSize: 256,
		NATS: NATSConfig{
			Enabled:          false,
			URL:              "nats://127.0.0.1:4222",
			EmbeddedServer:   true,
			StoreDir:         "/data/nats/jetstream",
			MaxMemory:        1 << 30,  // 1GB
			MaxStore:         10 << 30, // 10GB
			StreamRetention:  7 * 24 * time.Hour,
			DurableName:      "graph-processor",
			QueueGroup:       "processors",
			SubscribersCount: 1, // Single consumer preserves event order
			MaxReconnects:    -1,
			ReconnectWait:    2 * time.Second,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer size must be non-negative, got %d", ErrInvalidConfig, c.BufferSize)
	}
	if c.NATS.Enabled {
		if !c.NATS.EmbeddedServer && c.NATS.URL == "" {
			return fmt.Errorf("%w: NATS URL required when embedded server is disabled", ErrInvalidConfig)
		}
		if c.NATS.SubscribersCount < 1 {
			return fmt.Errorf("%w: subscribers count must be at least 1, got %d", ErrInvalidConfig, c.NATS.SubscribersCount)
		}
	}
	return nil
}

// CircuitBreakerConfig holds circuit breaker settings for the NATS publisher.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}
