// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package services

import (
	"context"
	"time"

	"github.com/tomtom215/eventgraph/internal/logging"
)

// ValueLogGC matches *store.Store's RunGC method.
type ValueLogGC interface {
	RunGC() error
}

// SnapshotGCService runs BadgerDB value-log garbage collection on a
// ticker. Every graph mutation writes a fresh snapshot, so the value log
// accumulates dead versions quickly on write-heavy workloads; periodic
// GC keeps the on-disk size bounded.
//
//	svc := services.NewSnapshotGCService(store, 10*time.Minute)
//	tree.AddDataService(svc)
type SnapshotGCService struct {
	store    ValueLogGC
	interval time.Duration
	name     string
}

// NewSnapshotGCService creates a snapshot GC service wrapper.
func NewSnapshotGCService(store ValueLogGC, interval time.Duration) *SnapshotGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SnapshotGCService{
		store:    store,
		interval: interval,
		name:     "snapshot-gc",
	}
}

// Serve implements suture.Service.
//
// A GC pass that fails is logged and retried at the next tick rather
// than returned: returning would make suture restart the service, and a
// restart cannot fix a GC error any better than the next tick can.
func (s *SnapshotGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", s.interval).Msg("snapshot GC loop started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("snapshot GC pass failed")
				continue
			}
			logging.Debug().Dur("took", time.Since(start)).Msg("snapshot GC pass complete")
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *SnapshotGCService) String() string {
	return s.name
}
