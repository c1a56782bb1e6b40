// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/eventgraph/internal/events"
	"github.com/tomtom215/eventgraph/internal/metrics"
)

// ErrNilEvent is returned when a nil event is handed to the store.
var ErrNilEvent = errors.New("history: nil event")

// ActivityEntry is one row of the graph_activity table.
type ActivityEntry struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	VertexID  string    `json:"vertex_id,omitempty"`
	RelatedID string    `json:"related_id,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPopularity aggregates attendance for one event vertex.
// AvgRating is nil when no attendance carried a rating.
type EventPopularity struct {
	EventID     string   `json:"event_id"`
	Attendances int      `json:"attendances"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
}

// Store wraps the DuckDB connection holding the activity log.
type Store struct {
	conn *sql.DB
	cfg  Config
	log  zerolog.Logger
}

// Open creates the DuckDB connection and initializes the schema.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure the parent directory exists for file-backed databases.
	// filepath.Dir(":memory:") is "." so in-memory databases skip this.
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory %s: %w", dbDir, err)
		}
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	s := &Store{
		conn: conn,
		cfg:  cfg,
		log:  logger.With().Str("component", "history").Logger(),
	}

	if err := s.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	s.log.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("History store opened")

	return s, nil
}

// createSchema creates the activity table and its indexes.
func (s *Store) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS graph_activity (
			event_id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			vertex_id TEXT,
			related_id TEXT,
			rating INTEGER,
			detail TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_graph_activity_created ON graph_activity(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_graph_activity_type ON graph_activity(event_type, related_id)`,
	}

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// ensureContext creates a context with 30-second timeout if none provided.
func (s *Store) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// RecordEvent appends a bus event to the activity log. Re-recording the
// same event id is a no-op so redelivered messages cannot duplicate rows.
func (s *Store) RecordEvent(ctx context.Context, ev *events.GraphEvent) (err error) {
	defer func() { metrics.RecordHistoryWrite(err) }()

	if ev == nil {
		return ErrNilEvent
	}

	entry, err := entryFromEvent(ev)
	if err != nil {
		return err
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO graph_activity (
			event_id, event_type, vertex_id, related_id, rating, detail, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err = s.conn.ExecContext(ctx, query,
		entry.EventID, entry.EventType,
		nullString(entry.VertexID), nullString(entry.RelatedID),
		nullInt(entry.Rating), nullString(entry.Detail),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// entryFromEvent maps a bus event onto an activity row. Fields that do
// not fit a column travel in the detail JSON blob.
func entryFromEvent(ev *events.GraphEvent) (ActivityEntry, error) {
	entry := ActivityEntry{
		EventID:   ev.EventID,
		EventType: ev.Type,
		VertexID:  ev.VertexID,
		RelatedID: ev.RelatedID,
		Rating:    ev.Rating,
		CreatedAt: ev.Timestamp,
	}

	if entry.EventID == "" {
		return ActivityEntry{}, fmt.Errorf("history: event without id (type %q)", ev.Type)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	detail := map[string]interface{}{}
	if len(ev.Categories) > 0 {
		detail["categories"] = ev.Categories
	}
	if ev.Policy != "" {
		detail["policy"] = ev.Policy
		detail["results"] = ev.Results
	}
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err != nil {
			return ActivityEntry{}, fmt.Errorf("failed to marshal detail: %w", err)
		}
		entry.Detail = string(raw)
	}

	return entry, nil
}

// RecentActivity returns the newest entries, most recent first.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	start := time.Now()
	defer func() { metrics.RecordHistoryQuery("recent_activity", time.Since(start)) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT event_id, event_type, vertex_id, related_id, rating, detail, created_at
		FROM graph_activity
		ORDER BY created_at DESC, event_id
		LIMIT ?
	`

	rows, err := s.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		entry, err := scanActivityRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}

	if entries == nil {
		entries = []ActivityEntry{}
	}

	return entries, nil
}

// TopEvents returns the most attended events within the last days,
// ordered by attendance count then id. days <= 0 means no time filter.
func (s *Store) TopEvents(ctx context.Context, limit, days int) ([]EventPopularity, error) {
	start := time.Now()
	defer func() { metrics.RecordHistoryQuery("top_events", time.Since(start)) }()

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}

	// Attendance events carry the attended event in related_id and the
	// rating column; AVG skips NULL ratings and is NULL when none exist.
	query := `
		SELECT related_id, COUNT(*) AS attendances, AVG(rating) AS avg_rating
		FROM graph_activity
		WHERE event_type = ? AND related_id IS NOT NULL
	`
	args := []interface{}{events.TypeAttendanceRecorded}

	if days > 0 {
		query += ` AND created_at >= ?`
		args = append(args, time.Now().UTC().AddDate(0, 0, -days))
	}

	query += `
		GROUP BY related_id
		ORDER BY attendances DESC, related_id
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top events: %w", err)
	}
	defer rows.Close()

	var top []EventPopularity
	for rows.Next() {
		var pop EventPopularity
		var avg sql.NullFloat64

		if err := rows.Scan(&pop.EventID, &pop.Attendances, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan top event: %w", err)
		}
		if avg.Valid {
			pop.AvgRating = &avg.Float64
		}
		top = append(top, pop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top events: %w", err)
	}

	if top == nil {
		top = []EventPopularity{}
	}

	return top, nil
}

// Count returns the number of activity rows, used by readiness checks.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM graph_activity").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return count, nil
}

// Checkpoint forces a WAL checkpoint for a consistent on-disk state.
func (s *Store) Checkpoint(ctx context.Context) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close history database: %w", err)
	}
	s.log.Info().Msg("History store closed")
	return nil
}

// scanActivityRow scans one activity entry from a row iterator.
func scanActivityRow(rows *sql.Rows) (ActivityEntry, error) {
	var entry ActivityEntry
	var vertexID, relatedID, detail sql.NullString
	var rating sql.NullInt64

	err := rows.Scan(
		&entry.EventID, &entry.EventType,
		&vertexID, &relatedID, &rating, &detail,
		&entry.CreatedAt,
	)
	if err != nil {
		return ActivityEntry{}, fmt.Errorf("failed to scan activity: %w", err)
	}

	entry.VertexID = vertexID.String
	entry.RelatedID = relatedID.String
	entry.Detail = detail.String
	if rating.Valid {
		r := int(rating.Int64)
		entry.Rating = &r
	}

	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
