// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package events provides the graph event bus built on Watermill.

Every successful graph mutation and every recommendation request is
published as a GraphEvent on the "graph.events" topic. Consumers (the
activity history store, the WebSocket hub) subscribe through the same
bus and receive decoded events on a typed channel.

# Transports

The default build uses Watermill's in-process GoChannel pub/sub: no
external broker, fan-out to all subscribers, suitable for the
single-instance deployments this service targets.

Building with -tags=nats swaps in a NATS JetStream transport: an
embedded nats-server instance (or an external server via Events.NATS.URL),
a Watermill NATS publisher with reconnect handling and a circuit
breaker, and durable subscribers. Files guarded by the nats build tag
have _stub.go fallbacks so the default build stays dependency-light.

Publish failures never fail the originating mutation; they are logged
and counted via the metrics package.
*/
package events
