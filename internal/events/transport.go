// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

//go:build nats

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// natsBus assembles the embedded server, publisher and subscriber into
// one Bus. Closing the bus tears all three down in reverse order.
type natsBus struct {
	server     *EmbeddedServer
	publisher  *NATSPublisher
	subscriber *NATSSubscriber
}

var _ Bus = (*natsBus)(nil)

// newNATSBus builds the NATS transport: an embedded JetStream server
// when configured, then publisher and subscriber against it.
func newNATSBus(cfg Config, logger watermill.LoggerAdapter) (Bus, error) {
	url := cfg.NATS.URL

	var srv *EmbeddedServer
	if cfg.NATS.EmbeddedServer {
		var err error
		srv, err = NewEmbeddedServer(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		url = srv.ClientURL()
	}

	pub, err := NewNATSPublisher(cfg.NATS, url, logger)
	if err != nil {
		shutdownServer(srv)
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	sub, err := NewNATSSubscriber(cfg.NATS, url, logger)
	if err != nil {
		_ = pub.Close()
		shutdownServer(srv)
		return nil, fmt.Errorf("create NATS subscriber: %w", err)
	}

	return &natsBus{
		server:     srv,
		publisher:  pub,
		subscriber: sub,
	}, nil
}

func (b *natsBus) Publish(ctx context.Context, event *GraphEvent) error {
	return b.publisher.Publish(ctx, event)
}

func (b *natsBus) Subscribe(ctx context.Context, consumer string) (<-chan *GraphEvent, error) {
	return b.subscriber.Subscribe(ctx, consumer)
}

func (b *natsBus) Close() error {
	err := b.subscriber.Close()
	if cerr := b.publisher.Close(); cerr != nil && err == nil {
		err = cerr
	}
	shutdownServer(b.server)
	return err
}

func shutdownServer(srv *EmbeddedServer) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
