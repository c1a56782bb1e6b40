// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

//go:build nats

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/eventgraph/internal/metrics"
)

// NATSSubscriber wraps the Watermill NATS subscriber with durable
// JetStream consumption.
type NATSSubscriber struct {
	subscriber message.Subscriber
	logger     watermill.LoggerAdapter
}

var _ Subscriber = (*NATSSubscriber)(nil)

// NewNATSSubscriber creates a durable JetStream subscriber.
func NewNATSSubscriber(cfg NATSConfig, url string, logger watermill.LoggerAdapter) (*NATSSubscriber, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("Subscriber disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("Subscriber reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.SubscriberConfig{
		URL:              url,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			DurablePrefix: cfg.DurableName,
		},
	}

	sub, err := wmNats.NewSubscriber(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	return &NATSSubscriber{
		subscriber: sub,
		logger:     logger,
	}, nil
}

// Subscribe returns a channel of decoded graph events for one consumer.
func (s *NATSSubscriber) Subscribe(ctx context.Context, consumer string) (<-chan *GraphEvent, error) {
	msgs, err := s.subscriber.Subscribe(ctx, TopicGraphEvents)
	if err != nil {
		return nil, err
	}

	out := make(chan *GraphEvent)
	go s.decodeLoop(ctx, consumer, msgs, out)
	return out, nil
}

func (s *NATSSubscriber) decodeLoop(ctx context.Context, consumer string, msgs <-chan *message.Message, out chan<- *GraphEvent) {
	defer close(out)

	for msg := range msgs {
		event, err := DeserializeEvent(msg.Payload)
		if err != nil {
			s.logger.Error("decode graph event", err, watermill.LogFields{
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

// Close gracefully shuts down the subscriber.
func (s *NATSSubscriber) Close() error {
	return s.subscriber.Close()
}
