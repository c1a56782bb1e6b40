// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package events

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/eventgraph/internal/metrics"
)

// Publisher publishes graph events to the bus.
type Publisher interface {
	Publish(ctx context.Context, event *GraphEvent) error
	Close() error
}

// Subscriber delivers decoded graph events to named consumers.
type Subscriber interface {
	Subscribe(ctx context.Context, consumer string) (<-chan *GraphEvent, error)
	Close() error
}

// Bus combines publishing and subscribing over one transport.
type Bus interface {
	Publisher
	Subscriber
}

// New builds the process event bus. The NATS transport is selected when
// cfg.NATS.Enabled and the binary was built with -tags=nats; otherwise
// the in-process channel bus is used.
func New(cfg Config, logger watermill.LoggerAdapter) (Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NATS.Enabled {
		return newNATSBus(cfg, logger)
	}
	return NewChannelBus(cfg, logger), nil
}

// ChannelBus is the in-process transport built on Watermill's GoChannel
// pub/sub. Messages fan out to every subscriber; nothing is persisted.
type ChannelBus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// Compile-time interface compliance check.
var _ Bus = (*ChannelBus)(nil)

// NewChannelBus creates an in-process event bus.
func NewChannelBus(cfg Config, logger watermill.LoggerAdapter) *ChannelBus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.BufferSize),
	}, logger)

	return &ChannelBus{
		pubsub: pubsub,
		logger: logger,
	}
}

// Publish serializes the event and hands it to every subscriber.
func (b *ChannelBus) Publish(ctx context.Context, event *GraphEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	b.mu.RUnlock()

	data, err := SerializeEvent(event)
	if err != nil {
		metrics.RecordEventPublish(err)
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("event_type", event.Type)

	err = b.pubsub.Publish(TopicGraphEvents, msg)
	metrics.RecordEventPublish(err)
	return err
}

// Subscribe returns a channel of decoded graph events for one consumer.
// The channel closes when ctx is cancelled or the bus is closed.
func (b *ChannelBus) Subscribe(ctx context.Context, consumer string) (<-chan *GraphEvent, error) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil, ErrBusClosed
	}
	b.mu.RUnlock()

	msgs, err := b.pubsub.Subscribe(ctx, TopicGraphEvents)
	if err != nil {
		return nil, err
	}

	out := make(chan *GraphEvent)
	go b.decodeLoop(ctx, consumer, msgs, out)
	return out, nil
}

// decodeLoop decodes raw messages and forwards them until the
// subscription or context ends. Undecodable messages are acked and
// dropped so they cannot wedge the subscription.
func (b *ChannelBus) decodeLoop(ctx context.Context, consumer string, msgs <-chan *message.Message, out chan<- *GraphEvent) {
	defer close(out)

	for msg := range msgs {
		event, err := DeserializeEvent(msg.Payload)
		if err != nil {
			b.logger.Error("decode graph event", err, watermill.LogFields{
				"uuid":     msg.UUID,
				"consumer": consumer,
			})
			msg.Ack()
			continue
		}

		select {
		case out <- event:
			metrics.RecordEventConsumed(consumer)
			msg.Ack()
		case <-ctx.Done():
			msg.Nack()
			return
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *ChannelBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.pubsub.Close()
}

// NopPublisher discards all events. Used when the event pipeline is
// disabled in configuration.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, *GraphEvent) error { return nil }

// Close is a no-op.
func (NopPublisher) Close() error { return nil }
