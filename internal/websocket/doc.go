// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package websocket streams live graph activity to browser clients.
//
// A Hub fans messages out to every connected client. The Subscriber
// consumes the graph event bus and hands each event to the hub, so a
// dashboard connected to /ws sees mutations and recommendations as they
// happen.
//
// # Message Format
//
// Every frame is a JSON object with a type and a payload:
//
//	{"type": "graph_event", "data": {"type": "user.added", "vertex_id": "alice", ...}}
//
// Clients may send {"type": "ping"} and receive {"type": "pong"}; all
// other inbound frames are ignored.
//
// # Backpressure
//
// Delivery is best-effort. The hub's broadcast buffer and each client's
// send buffer hold 256 messages; when a client cannot keep up its
// connection is dropped, and when the broadcast buffer is full the
// message is dropped and counted. A slow dashboard can never stall the
// event bus.
//
// # Shutdown
//
// The hub runs under the supervision tree via RunWithContext. Selection
// is priority ordered (shutdown, then client lifecycle, then broadcast)
// so behavior stays deterministic when several channels are ready, and
// cancellation closes every client before returning.
package websocket
