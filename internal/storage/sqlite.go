// Package storage provides SQLite-based persistence for the round journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records how rounds ended and the seed that reproduces them.
// Scores are deliberately not stored: a score lives only as long as the
// game that earned it.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-crossing/internal/crossing"
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// RoundEntry is one journaled round.
type RoundEntry struct {
	ID        int64
	Session   string
	Round     int
	Seed      int64
	Layout    string
	Outcome   string
	Enemies   int
	Duration  time.Duration
	CreatedAt time.Time
}

// Summary aggregates the journal.
type Summary struct {
	Rounds     int
	Goals      int
	Collisions int
	Sessions   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			round INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			layout TEXT NOT NULL,
			outcome TEXT NOT NULL,
			enemies INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session);
		CREATE INDEX IF NOT EXISTS idx_rounds_outcome ON rounds(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRound journals a finished round for session.
// Returns the ID of the inserted record.
func (s *Store) RecordRound(session string, r crossing.RoundReport) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (session, round, seed, layout, outcome, enemies, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session, r.Round, r.Seed, r.Layout, r.Result, r.Enemies, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds returns the latest rounds across all sessions, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT id, session, round, seed, layout, outcome, enemies, duration_ms, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// SessionRounds returns every round of one session in play order.
func (s *Store) SessionRounds(session string) ([]RoundEntry, error) {
	return s.queryRounds(
		`SELECT id, session, round, seed, layout, outcome, enemies, duration_ms, created_at
		 FROM rounds
		 WHERE session = ?
		 ORDER BY round ASC`,
		session,
	)
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Session, &e.Round, &e.Seed, &e.Layout,
			&e.Outcome, &e.Enemies, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Summarize counts rounds by outcome.
func (s *Store) Summarize() (Summary, error) {
	var sum Summary
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COUNT(DISTINCT session)
		 FROM rounds`,
		crossing.OutcomeGoal.String(), crossing.OutcomeCollision.String(),
	).Scan(&sum.Rounds, &sum.Goals, &sum.Collisions, &sum.Sessions)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot summarize rounds: %w", err)
	}
	return sum, nil
}

// ClearRounds deletes the whole journal.
func (s *Store) ClearRounds() error {
	_, err := s.db.Exec("DELETE FROM rounds")
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
