// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

//go:build !nats

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
)

// NATSSubscriber is a stub when NATS dependencies are not available.
// Build with -tags=nats to enable the NATS transport.
type NATSSubscriber struct{}

// NewNATSSubscriber returns an error when NATS dependencies are not available.
func NewNATSSubscriber(cfg NATSConfig, url string, logger watermill.LoggerAdapter) (*NATSSubscriber, error) {
	return nil, ErrNATSNotEnabled
}

// Subscribe is a stub that returns an error.
func (s *NATSSubscriber) Subscribe(ctx context.Context, consumer string) (<-chan *GraphEvent, error) {
	return nil, ErrNATSNotEnabled
}

// Close is a no-op stub.
func (s *NATSSubscriber) Close() error {
	return nil
}
