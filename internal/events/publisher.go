// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

//go:build nats

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/eventgraph/internal/metrics"
)

// NATSPublisher wraps the Watermill NATS publisher with resilience
// patterns: circuit breaker protection and automatic reconnection.
type NATSPublisher struct {
	publisher      message.Publisher
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]
	logger         watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher creates a resilient Watermill NATS publisher.
// The publisher is configured for JetStream with message ID tracking
// for deduplication.
func NewNATSPublisher(cfg NATSConfig, url string, logger watermill.LoggerAdapter) (*NATSPublisher, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			TrackMsgId:    true,
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &NATSPublisher{
		publisher:      pub,
		circuitBreaker: NewCircuitBreaker(DefaultCircuitBreakerConfig("events")),
		logger:         logger,
	}, nil
}

// Publish serializes and publishes a graph event with circuit breaker
// protection. The event ID doubles as Nats-Msg-Id for deduplication.
func (p *NATSPublisher) Publish(ctx context.Context, event *GraphEvent) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrBusClosed
	}
	p.mu.RUnlock()

	data, err := SerializeEvent(event)
	if err != nil {
		metrics.RecordEventPublish(err)
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set(natsgo.MsgIdHdr, event.EventID)

	_, err = p.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(TopicGraphEvents, msg)
	})

	metrics.RecordEventPublish(err)
	return err
}

// Close gracefully shuts down the publisher.
func (p *NATSPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.publisher.Close()
}
