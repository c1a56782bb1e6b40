// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package websocket

import (
	"context"
	"fmt"

	"github.com/tomtom215/eventgraph/internal/events"
	"github.com/tomtom215/eventgraph/internal/logging"
)

// subscriberName identifies this consumer on the bus and in metrics.
const subscriberName = "websocket"

// Subscriber bridges the graph event bus to the hub. Every event from
// the bus is handed to the hub for best-effort fan-out; the transport
// behind the bus (in-process or NATS) is invisible here.
type Subscriber struct {
	hub        *Hub
	subscriber events.Subscriber
}

// NewSubscriber wires a hub to a bus subscription.
func NewSubscriber(hub *Hub, subscriber events.Subscriber) *Subscriber {
	return &Subscriber{
		hub:        hub,
		subscriber: subscriber,
	}
}

// String names the subscriber in supervisor logs.
func (s *Subscriber) String() string { return "websocket-subscriber" }

// Serve forwards bus events to the hub until ctx is cancelled or the
// bus closes. It satisfies the supervisor's service contract.
func (s *Subscriber) Serve(ctx context.Context) error {
	ch, err := s.subscriber.Subscribe(ctx, subscriberName)
	if err != nil {
		return fmt.Errorf("websocket subscriber subscribe: %w", err)
	}

	logging.Info().Msg("websocket subscriber started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				// Bus closed underneath us; only happens on shutdown.
				logging.Info().Msg("websocket subscriber stopped: bus closed")
				return nil
			}
			s.hub.BroadcastGraphEvent(ev)
		}
	}
}
