// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/eventgraph/internal/api"
	"github.com/tomtom215/eventgraph/internal/config"
	"github.com/tomtom215/eventgraph/internal/events"
	"github.com/tomtom215/eventgraph/internal/graph"
	"github.com/tomtom215/eventgraph/internal/history"
	"github.com/tomtom215/eventgraph/internal/logging"
	"github.com/tomtom215/eventgraph/internal/metrics"
	"github.com/tomtom215/eventgraph/internal/recommend"
	"github.com/tomtom215/eventgraph/internal/service"
	"github.com/tomtom215/eventgraph/internal/store"
	"github.com/tomtom215/eventgraph/internal/supervisor"
	"github.com/tomtom215/eventgraph/internal/supervisor/services"
	ws "github.com/tomtom215/eventgraph/internal/websocket"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Eventgraph with supervisor tree")
	metrics.SetAppInfo(version, runtime.Version())
	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Bool("events_enabled", cfg.Events.Enabled).
		Bool("nats_enabled", cfg.Events.NATS.Enabled).
		Bool("history_enabled", cfg.History.Enabled).
		Msg("Configuration loaded")

	// Open the snapshot store. Every graph mutation is persisted here,
	// so a failure to open is fatal.
	storeCfg := store.DefaultConfig()
	storeCfg.Path = cfg.Data.Dir
	storeCfg.SyncWrites = cfg.Data.SyncWrites
	snapshots, err := store.Open(storeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()
	logging.Info().Str("path", storeCfg.Path).Msg("Snapshot store opened")

	// Restore the graph from the latest snapshot. A fresh store or an
	// unreadable snapshot starts the service with an empty graph rather
	// than refusing to boot.
	g, err := snapshots.Restore()
	switch {
	case err == nil:
		logging.Info().
			Int("vertices", g.Len()).
			Int("edges", g.EdgeCount()).
			Msg("Graph restored from snapshot")
	case errors.Is(err, store.ErrNoSnapshot):
		logging.Info().Msg("No snapshot found, starting with an empty graph")
		g = graph.New()
	default:
		logging.Error().Err(err).Msg("Snapshot restore failed, starting with an empty graph")
		g = graph.New()
	}

	// Event bus: in-process channel transport by default, NATS JetStream
	// when enabled and built with -tags nats. A disabled bus leaves the
	// service publishing nothing.
	var bus events.Bus
	if cfg.Events.Enabled {
		bus, err = events.New(busConfig(cfg), logging.NewWatermillLogger())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event bus")
		}
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		logging.Info().Bool("nats", cfg.Events.NATS.Enabled).Msg("Event bus created")
	} else {
		logging.Info().Msg("Event bus disabled, graph changes will not be published")
	}

	engine, err := recommend.NewEngine(recommend.Config{
		DefaultMaxDepth: cfg.Recommend.DefaultMaxDepth,
		MinRating:       cfg.Recommend.MinRating,
		MaxDepthLimit:   cfg.Recommend.MaxDepthLimit,
	}, logging.With().Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	var publisher events.Publisher
	if bus != nil {
		publisher = bus
	}
	svc, err := service.New(g, snapshots, publisher, engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create graph service")
	}

	// Seed the demo graph if enabled (for local development and
	// screenshot tests). Only an empty graph is seeded.
	if cfg.Data.SeedDemoGraph {
		if g.Len() > 0 {
			logging.Info().Msg("Demo graph seeding skipped, graph is not empty")
		} else if err := svc.SeedDemoGraph(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo graph")
		} else {
			logging.Info().Int("vertices", g.Len()).Msg("Demo graph seeded")
		}
	}

	// Activity history: DuckDB-backed analytical store fed from the
	// event bus. Optional; the API returns 503 for history queries when
	// disabled.
	var historyStore *history.Store
	if cfg.History.Enabled {
		historyStore, err = history.Open(history.Config{
			Path:      cfg.History.Path,
			MaxMemory: cfg.History.MaxMemory,
			Threads:   cfg.History.Threads,
		}, logging.With().Logger())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open history store")
		}
		defer func() {
			if err := historyStore.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing history store")
			}
		}()
		logging.Info().Str("path", cfg.History.Path).Msg("History store opened")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// WebSocket hub for real-time graph change notifications. Created
	// before the handler so the API can attach upgrade endpoints.
	wsHub := ws.NewHub()

	handler := api.NewHandler(svc, snapshots, historyStore, wsHub, cfg, version)
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Server))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer services
	tree.AddDataService(services.NewSnapshotGCService(snapshots, 10*time.Minute))

	// Messaging layer services
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	if bus != nil {
		tree.AddMessagingService(ws.NewSubscriber(wsHub, bus))
		if historyStore != nil {
			tree.AddMessagingService(history.NewConsumer(historyStore, bus, logging.With().Logger()))
		}
	}
	logging.Info().Msg("WebSocket hub and bus consumers added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// busConfig maps the application's event settings onto the bus package's
// configuration, starting from its defaults so tuning knobs the app does
// not expose (reconnect policy) keep sane values.
func busConfig(cfg *config.Config) events.Config {
	busCfg := events.DefaultConfig()
	if cfg.Events.BufferSize > 0 {
		busCfg.BufferSize = cfg.Events.BufferSize
	}
	busCfg.NATS.Enabled = cfg.Events.NATS.Enabled
	if cfg.Events.NATS.URL != "" {
		busCfg.NATS.URL = cfg.Events.NATS.URL
	}
	busCfg.NATS.EmbeddedServer = cfg.Events.NATS.EmbeddedServer
	if cfg.Events.NATS.StoreDir != "" {
		busCfg.NATS.StoreDir = cfg.Events.NATS.StoreDir
	}
	if cfg.Events.NATS.MaxMemory > 0 {
		busCfg.NATS.MaxMemory = cfg.Events.NATS.MaxMemory
	}
	if cfg.Events.NATS.MaxStore > 0 {
		busCfg.NATS.MaxStore = cfg.Events.NATS.MaxStore
	}
	if days := cfg.Events.NATS.StreamRetentionDays; days > 0 {
		busCfg.NATS.StreamRetention = time.Duration(days) * 24 * time.Hour
	}
	if cfg.Events.NATS.DurableName != "" {
		busCfg.NATS.DurableName = cfg.Events.NATS.DurableName
	}
	if cfg.Events.NATS.QueueGroup != "" {
		busCfg.NATS.QueueGroup = cfg.Events.NATS.QueueGroup
	}
	if cfg.Events.NATS.SubscribersCount > 0 {
		busCfg.NATS.SubscribersCount = cfg.Events.NATS.SubscribersCount
	}
	return busCfg
}
