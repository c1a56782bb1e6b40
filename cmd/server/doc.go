// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

/*
Package main is the entry point for the Eventgraph server application.

Eventgraph is a self-hosted event recommendation service built on a labeled
social graph. Users, events, and categories are vertices; friendships,
attendances, and category links are edges. Recommendations are produced by
a bounded breadth-first traversal that follows friends' highly rated
events, with a category-based cold start for users with no history.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("eventgraph")
	├── DataSupervisor ("data-layer")
	│   └── Snapshot GC (BadgerDB value log compaction)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub (real-time graph change notifications)
	│   ├── WebSocket Subscriber (bus -> hub bridge)
	│   └── History Consumer (bus -> DuckDB, optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + WebSocket upgrade)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Snapshot store: BadgerDB write-through persistence for the graph
 4. Graph restore: latest snapshot, or an empty graph on a fresh store
 5. Event bus: Watermill channel transport, or NATS JetStream (-tags nats)
 6. Recommendation engine: BFS traversal with rating threshold
 7. Graph service: single-writer command surface over the graph
 8. History store: DuckDB activity log fed from the bus (optional)
 9. Supervisor tree: Suture v4 process supervision
 10. HTTP server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_HOST=0.0.0.0            # Listen address
	HTTP_PORT=8080               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Graph persistence
	DATA_DIR=/data/graph         # BadgerDB snapshot directory
	DATA_SYNC_WRITES=true        # fsync after every snapshot
	SEED_DEMO_GRAPH=false        # Seed a small demo graph when empty

	# Recommendations
	RECOMMEND_DEFAULT_MAX_DEPTH=6
	RECOMMEND_MIN_RATING=3       # Minimum rating for an edge to recommend
	RECOMMEND_MAX_DEPTH_LIMIT=25 # Cap on client-requested depth

	# Event pipeline
	EVENTS_ENABLED=true
	NATS_ENABLED=false           # Requires a -tags nats build

	# Activity history (DuckDB)
	HISTORY_ENABLED=false
	DUCKDB_PATH=/data/eventgraph.duckdb

See internal/config for the complete reference.

# Build Tags

Optional build tags enable additional functionality:

	go build ./cmd/server              # Standard build (in-process bus)
	go build -tags nats ./cmd/server   # Enable NATS JetStream transport

With -tags nats and NATS_ENABLED=true, graph change events flow through
JetStream (embedded server by default) instead of the in-process channel
bus, surviving restarts and allowing external consumers.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Broadcasts shutdown to WebSocket clients
 3. Waits for in-flight requests (10s timeout)
 4. Drains bus consumers and closes the history store
 5. Flushes pending writes and closes the snapshot store
 6. Reports any services that failed to stop

# Usage Examples

Development (in-memory bus, demo data):

	export SEED_DEMO_GRAPH=true
	export LOG_FORMAT=console
	go run ./cmd/server

Production (NATS + history):

	export DATA_DIR=/data/graph
	export HISTORY_ENABLED=true DUCKDB_PATH=/data/history.db
	export NATS_ENABLED=true NATS_STORE_DIR=/data/nats
	./eventgraph

Docker:

	docker run -d \
	  -e DATA_DIR=/data/graph \
	  -e HISTORY_ENABLED=true \
	  -v eventgraph-data:/data \
	  -p 8080:8080 \
	  ghcr.io/tomtom215/eventgraph

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/service: Graph command surface
  - internal/recommend: Recommendation traversal
*/
package main
