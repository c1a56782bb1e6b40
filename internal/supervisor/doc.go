// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package supervisor provides process supervision for Eventgraph using suture v4.

The supervisor tree organizes the long-running services into three layers
for failure isolation:

	RootSupervisor ("eventgraph")
	├── DataSupervisor ("data-layer")
	│   └── SnapshotGCService (BadgerDB value-log GC)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   ├── websocket.Subscriber (bus -> hub fan-out)
	│   └── history.Consumer (bus -> DuckDB activity log)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in a bus consumer doesn't take down WebSocket connections
  - Snapshot-store GC failures don't impact API availability
  - Each layer restarts independently with its own failure counter

Crashed services restart automatically with exponential backoff; the
thresholds in TreeConfig control when a layer enters backoff. Context
cancellation triggers an orderly shutdown, and UnstoppedServiceReport
names any service that ignored it.

Services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil means the service finished cleanly and is not restarted;
returning an error schedules a restart. The bus consumers in
internal/websocket and internal/history implement this contract directly
and are added to the tree without wrappers; the wrappers in the services
subpackage adapt components with other lifecycles (http.Server's
ListenAndServe/Shutdown pair, the hub's run loop, the snapshot store's
on-demand GC).

Supervision events are logged through sutureslog; pass a logger from
logging.NewSlogLogger so they land in the same zerolog stream as the
rest of the application.

The graph service itself is not supervised: it is a synchronous library
called from HTTP handlers, not a run loop. The same goes for the DuckDB
and BadgerDB handles, which are closed by main after the tree stops.
*/
package supervisor
