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

// NATSPublisher is a stub when NATS dependencies are not available.
// Build with -tags=nats to enable the NATS transport.
type NATSPublisher struct{}

// NewNATSPublisher returns an error when NATS dependencies are not available.
func NewNATSPublisher(cfg NATSConfig, url string, logger watermill.LoggerAdapter) (*NATSPublisher, error) {
	return nil, ErrNATSNotEnabled
}

// Publish is a stub that returns an error.
func (p *NATSPublisher) Publish(ctx context.Context, event *GraphEvent) error {
	return ErrNATSNotEnabled
}

// Close is a no-op stub.
func (p *NATSPublisher) Close() error {
	return nil
}
