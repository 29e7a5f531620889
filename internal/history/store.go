package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one persisted transition event.
type Record struct {
	ID         int64     `json:"id"`
	Sport      string    `json:"sport"`
	Kind       string    `json:"type"`
	FromValue  string    `json:"from"`
	ToValue    string    `json:"to"`
	Season     string    `json:"season,omitempty"`
	Phase      string    `json:"phase,omitempty"`
	OccurredAt time.Time `json:"timestamp"`
}

// Store keeps transition events in a sqlite database with a rolling
// retention window, so history survives restarts without growing unbounded.
type Store struct {
	sql           *sql.DB
	retentionDays int
}

const defaultRetentionDays = 90

// Open opens (or creates) the event database at path and ensures the schema.
func Open(path string, retentionDays int) (*Store, error) {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS season_transitions (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  sport       TEXT NOT NULL,
  kind        TEXT NOT NULL CHECK (kind IN ('season_change','phase_change','week_change')),
  from_value  TEXT NOT NULL,
  to_value    TEXT NOT NULL,
  season      TEXT,
  phase       TEXT
);
CREATE INDEX IF NOT EXISTS idx_transitions_time ON season_transitions(occurred_at);
CREATE INDEX IF NOT EXISTS idx_transitions_sport ON season_transitions(sport, occurred_at);
	`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{sql: db, retentionDays: retentionDays}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Append stores one event and prunes entries older than the retention window.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if s == nil || s.sql == nil {
		return errors.New("history store not configured")
	}
	occurred := rec.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	_, err := s.sql.ExecContext(ctx, `
INSERT INTO season_transitions (occurred_at, sport, kind, from_value, to_value, season, phase)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		occurred.UTC(), rec.Sport, rec.Kind, rec.FromValue, rec.ToValue, rec.Season, rec.Phase)
	if err != nil {
		return err
	}
	return s.prune(ctx)
}

func (s *Store) prune(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	_, err := s.sql.ExecContext(ctx,
		"DELETE FROM season_transitions WHERE occurred_at < $1", cutoff)
	return err
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything retained.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.sql == nil {
		return nil, errors.New("history store not configured")
	}
	query := "SELECT id, occurred_at, sport, kind, from_value, to_value, COALESCE(season, ''), COALESCE(phase, '') FROM season_transitions ORDER BY occurred_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	rows, err := s.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OccurredAt, &rec.Sport, &rec.Kind,
			&rec.FromValue, &rec.ToValue, &rec.Season, &rec.Phase); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RecentForSport returns up to limit events for one sport, newest first.
func (s *Store) RecentForSport(ctx context.Context, sport string, limit int) ([]Record, error) {
	if s == nil || s.sql == nil {
		return nil, errors.New("history store not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.sql.QueryContext(ctx, `
SELECT id, occurred_at, sport, kind, from_value, to_value, COALESCE(season, ''), COALESCE(phase, '')
FROM season_transitions WHERE sport = $1
ORDER BY occurred_at DESC, id DESC LIMIT $2`, sport, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OccurredAt, &rec.Sport, &rec.Kind,
			&rec.FromValue, &rec.ToValue, &rec.Season, &rec.Phase); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
