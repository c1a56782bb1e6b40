// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package services adapts components with non-suture lifecycles to the
// suture.Service contract so the supervisor tree can manage them.
//
// Three wrappers exist:
//
//   - HTTPServerService: translates http.Server's blocking
//     ListenAndServe / Shutdown pair into a context-aware Serve.
//   - WebSocketHubService: delegates to the hub's RunWithContext loop.
//   - SnapshotGCService: runs BadgerDB value-log GC on a ticker.
//
// The event-bus consumers (websocket.Subscriber, history.Consumer)
// implement suture.Service themselves and need no wrapper here.
//
// Each wrapper declares a small interface for its dependency rather than
// importing the concrete package, which keeps this package free of
// import cycles and makes the wrappers trivially testable.
package services
