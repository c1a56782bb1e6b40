// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

//go:build !nats

package events

import "github.com/ThreeDotsLabs/watermill"

// newNATSBus returns an error when NATS dependencies are not available.
// Build with -tags=nats to enable the NATS transport.
func newNATSBus(cfg Config, logger watermill.LoggerAdapter) (Bus, error) {
	return nil, ErrNATSNotEnabled
}
