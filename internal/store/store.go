// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/tomtom215/eventgraph/internal/graph"
	"github.com/tomtom215/eventgraph/internal/logging"
	"github.com/tomtom215/eventgraph/internal/metrics"
)

// Storage keys. The snapshot and its metadata are written in one
// transaction, so a valid store holds both or neither.
const (
	keySnapshot = "snapshot:current"
	keyMeta     = "snapshot:meta"

	// snapshotVersion is bumped when the document layout changes.
	snapshotVersion = 1
)

// Errors
var (
	// ErrNoSnapshot is returned by Restore and Meta when the store holds
	// no snapshot yet (first boot).
	ErrNoSnapshot = errors.New("no snapshot present")

	// ErrCorruptSnapshot is returned when a stored snapshot fails its
	// checksum or cannot be decoded.
	ErrCorruptSnapshot = errors.New("snapshot is corrupted")

	// ErrStoreClosed is returned when the store is closed.
	ErrStoreClosed = errors.New("store is closed")
)

// vertexRecord is one vertex in the snapshot document. Attendance is
// stored as raw event ids and resolved back to vertices on restore.
type vertexRecord struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
	Attended   []string `json:"attended,omitempty"`
}

// edgeRecord is one directed edge in the snapshot document.
type edgeRecord struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight,omitempty"`
	Rated  bool   `json:"rated,omitempty"`
}

// snapshotDocument is the serialized form of the whole graph.
type snapshotDocument struct {
	Version  int            `json:"version"`
	SavedAt  time.Time      `json:"saved_at"`
	Vertices []vertexRecord `json:"vertices"`
	Edges    []edgeRecord   `json:"edges"`
}

// Meta describes the stored snapshot without loading it.
type Meta struct {
	Version   int       `json:"version"`
	Checksum  string    `json:"checksum"`
	SizeBytes int       `json:"size_bytes"`
	SavedAt   time.Time `json:"saved_at"`
	Vertices  int       `json:"vertices"`
	Edges     int       `json:"edges"`
}

// Store is a BadgerDB-backed snapshot gateway for the graph.
type Store struct {
	db     *badger.DB
	config Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open creates or opens the snapshot store at the configured path.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites
	opts.MemTableSize = cfg.MemTableSize
	opts.ValueLogFileSize = cfg.ValueLogFileSize
	opts.NumCompactors = cfg.NumCompactors
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		config: cfg,
		logger: logging.With().Str("component", "store").Logger(),
	}

	s.logger.Info().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Bool("compression", cfg.Compression).
		Msg("snapshot store opened")
	return s, nil
}

// Snapshot serializes the whole graph and replaces the stored snapshot.
// The document and its metadata are written in a single transaction.
func (s *Store) Snapshot(g *graph.Graph) (err error) {
	start := time.Now()
	size := 0
	defer func() {
		metrics.RecordSnapshot(time.Since(start), size, err)
	}()

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	if g == nil {
		return errors.New("graph cannot be nil")
	}

	doc := encodeGraph(g)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	size = len(data)

	sum := blake2b.Sum256(data)
	meta := Meta{
		Version:   snapshotVersion,
		Checksum:  hex.EncodeToString(sum[:]),
		SizeBytes: len(data),
		SavedAt:   doc.SavedAt,
		Vertices:  len(doc.Vertices),
		Edges:     len(doc.Edges),
	}
	metaData, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal snapshot meta: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keySnapshot), data); err != nil {
			return fmt.Errorf("set snapshot: %w", err)
		}
		if err := txn.Set([]byte(keyMeta), metaData); err != nil {
			return fmt.Errorf("set snapshot meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Debug().
		Int("vertices", meta.Vertices).
		Int("edges", meta.Edges).
		Int("size_bytes", meta.SizeBytes).
		Msg("snapshot written")
	return nil
}

// Restore loads the stored snapshot, verifies its checksum, and rebuilds
// the graph. A store with no snapshot returns ErrNoSnapshot; a snapshot
// that fails verification returns an error wrapping ErrCorruptSnapshot.
func (s *Store) Restore() (*graph.Graph, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	s.mu.RUnlock()

	var data, metaData []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySnapshot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		data, err = item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}

		item, err = txn.Get([]byte(keyMeta))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("snapshot present without metadata: %w", ErrCorruptSnapshot)
		}
		if err != nil {
			return fmt.Errorf("get snapshot meta: %w", err)
		}
		metaData, err = item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read snapshot meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot meta: %w", ErrCorruptSnapshot)
	}

	sum := blake2b.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != meta.Checksum {
		return nil, fmt.Errorf("checksum mismatch (stored %s, computed %s): %w", meta.Checksum, got, ErrCorruptSnapshot)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", ErrCorruptSnapshot)
	}
	if doc.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d: %w", doc.Version, ErrCorruptSnapshot)
	}

	g, err := decodeGraph(&doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("vertices", g.Len()).
		Int("edges", g.EdgeCount()).
		Time("saved_at", doc.SavedAt).
		Msg("graph restored from snapshot")
	return g, nil
}

// Meta returns the stored snapshot's metadata without loading the
// snapshot itself. Returns ErrNoSnapshot when the store is empty.
func (s *Store) Meta() (*Meta, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	s.mu.RUnlock()

	var meta Meta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyMeta))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get snapshot meta: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// RunGC triggers BadgerDB value log garbage collection. Should be called
// periodically; snapshots overwrite the same keys so the value log grows
// with every mutation until collected.
func (s *Store) RunGC() error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	for {
		err := s.db.RunValueLogGC(s.config.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close gracefully shuts down the store with the configured timeout.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	timeout := s.config.CloseTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		s.logger.Info().Msg("snapshot store closed")
		return nil
	case <-time.After(timeout):
		s.logger.Warn().Dur("timeout", timeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", timeout)
	}
}

// encodeGraph flattens the graph into a snapshot document. Vertices are
// emitted in normalized-id order and edges in adjacency order, so the
// same graph always serializes to the same bytes.
func encodeGraph(g *graph.Graph) *snapshotDocument {
	vertices := g.Vertices()

	doc := &snapshotDocument{
		Version:  snapshotVersion,
		SavedAt:  time.Now().UTC(),
		Vertices: make([]vertexRecord, 0, len(vertices)),
		Edges:    make([]edgeRecord, 0, g.EdgeCount()),
	}

	for _, v := range vertices {
		rec := vertexRecord{
			ID:   v.ID,
			Kind: v.Kind.String(),
		}
		if len(v.Categories) > 0 {
			rec.Categories = append([]string(nil), v.Categories...)
		}
		for _, attended := range v.Attended {
			rec.Attended = append(rec.Attended, attended.ID)
		}
		doc.Vertices = append(doc.Vertices, rec)

		for _, e := range v.Out {
			doc.Edges = append(doc.Edges, edgeRecord{
				From:   e.From.ID,
				To:     e.To.ID,
				Weight: e.Weight,
				Rated:  e.Rated,
			})
		}
	}
	return doc
}

// decodeGraph rebuilds a graph from a snapshot document. References to
// vertices that are not in the document mean the snapshot is corrupt.
func decodeGraph(doc *snapshotDocument) (*graph.Graph, error) {
	g := graph.New()

	for _, rec := range doc.Vertices {
		switch rec.Kind {
		case graph.KindUser.String():
			g.AddVertex(graph.NewUser(rec.ID))
		case graph.KindEvent.String():
			g.AddVertex(graph.NewEvent(rec.ID, append([]string(nil), rec.Categories...)))
		case graph.KindCategory.String():
			g.AddVertex(graph.NewCategory(rec.ID))
		default:
			return nil, fmt.Errorf("unknown vertex kind %q: %w", rec.Kind, ErrCorruptSnapshot)
		}
	}

	for _, rec := range doc.Edges {
		from, ok := g.GetVertex(rec.From)
		if !ok {
			return nil, fmt.Errorf("edge from unknown vertex %q: %w", rec.From, ErrCorruptSnapshot)
		}
		to, ok := g.GetVertex(rec.To)
		if !ok {
			return nil, fmt.Errorf("edge to unknown vertex %q: %w", rec.To, ErrCorruptSnapshot)
		}
		if rec.Rated {
			g.AddRatedEdge(from, to, rec.Weight)
		} else {
			g.AddEdge(from, to)
		}
	}

	for _, rec := range doc.Vertices {
		if len(rec.Attended) == 0 {
			continue
		}
		user, ok := g.GetVertex(rec.ID)
		if !ok || user.Kind != graph.KindUser {
			return nil, fmt.Errorf("attendance on non-user vertex %q: %w", rec.ID, ErrCorruptSnapshot)
		}
		for _, eventID := range rec.Attended {
			event, ok := g.GetVertex(eventID)
			if !ok {
				return nil, fmt.Errorf("attendance of unknown event %q: %w", eventID, ErrCorruptSnapshot)
			}
			user.RecordAttendance(event)
		}
	}

	return g, nil
}
