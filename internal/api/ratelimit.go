// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UserRateLimiter implements per-user token bucket rate limiting with
// automatic cleanup. The IP limits in the router protect the server from
// one client; this protects the single-threaded graph core from one user
// id being hammered through many clients.
type UserRateLimiter struct {
	limiters  map[string]*userLimiterEntry
	mu        sync.RWMutex
	rate      rate.Limit
	burst     int
	stopClean chan struct{}
}

// userLimiterEntry wraps a rate limiter with last access time.
type userLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewUserRateLimiter creates a limiter allowing ratePerSecond sustained
// requests per user with the given burst, and starts the background
// cleanup of stale per-user buckets.
func NewUserRateLimiter(ratePerSecond float64, burst int) *UserRateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}

	rl := &UserRateLimiter{
		limiters:  make(map[string]*userLimiterEntry),
		rate:      rate.Limit(ratePerSecond),
		burst:     burst,
		stopClean: make(chan struct{}),
	}
	go rl.startCleanup(10 * time.Minute)
	return rl
}

// Allow checks if a request for the given user id is allowed.
func (rl *UserRateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	entry, exists := rl.limiters[userID]
	if !exists {
		entry = &userLimiterEntry{
			limiter:    rate.NewLimiter(rl.rate, rl.burst),
			lastAccess: time.Now(),
		}
		rl.limiters[userID] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// startCleanup periodically removes stale per-user buckets.
func (rl *UserRateLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopClean:
			return
		}
	}
}

// cleanup removes buckets that haven't been accessed in the last hour.
func (rl *UserRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	for id, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, id)
		}
	}
}

// size returns the number of tracked user buckets.
func (rl *UserRateLimiter) size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

// Stop stops the cleanup goroutine.
func (rl *UserRateLimiter) Stop() {
	close(rl.stopClean)
}
