// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package store persists graph snapshots in BadgerDB.
//
// The store keeps exactly one snapshot: the full graph serialized to JSON
// under a fixed key, replaced on every write. A metadata record with a
// BLAKE2b-256 checksum is written in the same transaction and verified on
// restore, so a torn or corrupted snapshot is detected rather than loaded.
//
// Snapshots are write-through: the service calls Snapshot after every
// mutation, and Restore rebuilds the in-memory graph once at startup.
package store
