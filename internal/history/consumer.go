// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package history

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/eventgraph/internal/events"
)

// consumerName identifies this subscriber on the bus and in metrics.
const consumerName = "history"

// Consumer subscribes to the graph event bus and appends every event to
// the activity store. A failed insert is logged and skipped; the
// activity log is best-effort and must never stall the bus.
type Consumer struct {
	store      *Store
	subscriber events.Subscriber
	log        zerolog.Logger
}

// NewConsumer wires a store to a bus subscription.
func NewConsumer(store *Store, subscriber events.Subscriber, logger zerolog.Logger) *Consumer {
	return &Consumer{
		store:      store,
		subscriber: subscriber,
		log:        logger.With().Str("component", "history-consumer").Logger(),
	}
}

// String names the consumer in supervisor logs.
func (c *Consumer) String() string { return "history-consumer" }

// Serve consumes events until ctx is cancelled or the bus closes. It
// satisfies the supervisor's service contract.
func (c *Consumer) Serve(ctx context.Context) error {
	ch, err := c.subscriber.Subscribe(ctx, consumerName)
	if err != nil {
		return fmt.Errorf("history consumer subscribe: %w", err)
	}

	c.log.Info().Msg("History consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				// Bus closed underneath us; only happens on shutdown.
				c.log.Info().Msg("History consumer stopped: bus closed")
				return nil
			}
			if err := c.store.RecordEvent(ctx, ev); err != nil {
				c.log.Warn().
					Err(err).
					Str("event_id", ev.EventID).
					Str("type", ev.Type).
					Msg("Failed to record activity")
			}
		}
	}
}
