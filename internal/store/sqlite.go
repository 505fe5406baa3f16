// internal/store/sqlite.go
//
// SQLite-backed implementation of the Store interface.
//
// Characteristics:
//   - Owns its schema: tables are created on construction.
//   - Guess history and stats are stored as JSON blobs; a row that fails to
//     decode reads back as absent, so corrupt state silently falls back to a
//     fresh session/record instead of failing the request.
//   - One row per (owner, date) for sessions, one row per owner for
//     stats/prefs.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/villaindle/go-server/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle and ensures the schema
// exists. The caller owns the handle's lifecycle.
func NewSQLiteStore(db *sql.DB) (Store, error) {
	s := &sqliteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			owner_id  TEXT NOT NULL,
			date      TEXT NOT NULL,
			version   INTEGER NOT NULL,
			target_id TEXT NOT NULL,
			status    TEXT NOT NULL,
			guesses   TEXT NOT NULL,
			PRIMARY KEY (owner_id, date)
		);
		CREATE TABLE IF NOT EXISTS stats (
			owner_id TEXT PRIMARY KEY,
			data     TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS prefs (
			owner_id          TEXT PRIMARY KEY,
			seen_instructions INTEGER NOT NULL DEFAULT 0
		);`)
	return err
}

func (s *sqliteStore) SaveSession(ctx context.Context, ownerID string, snap SessionSnapshot) error {
	guesses, err := json.Marshal(snap.Guesses)
	if err != nil {
		return fmt.Errorf("encode guesses: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (owner_id, date, version, target_id, status, guesses)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID, snap.Date, snap.Version, snap.TargetID, string(snap.Status), string(guesses),
	)
	return err
}

func (s *sqliteStore) GetSession(ctx context.Context, ownerID, date string) (SessionSnapshot, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT version, target_id, status, guesses
		FROM sessions WHERE owner_id = ? AND date = ?`,
		ownerID, date,
	)
	var snap SessionSnapshot
	var status, guesses string
	err := row.Scan(&snap.Version, &snap.TargetID, &status, &guesses)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionSnapshot{}, false, nil
	}
	if err != nil {
		return SessionSnapshot{}, false, err
	}
	snap.Date = date
	snap.Status = game.SessionStatus(status)
	if err := json.Unmarshal([]byte(guesses), &snap.Guesses); err != nil {
		// Corrupt row: discard, a fresh session replaces it on next save.
		return SessionSnapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *sqliteStore) SaveStats(ctx context.Context, ownerID string, st game.Stats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO stats (owner_id, data) VALUES (?, ?)`,
		ownerID, string(data),
	)
	return err
}

func (s *sqliteStore) GetStats(ctx context.Context, ownerID string) (game.Stats, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM stats WHERE owner_id = ?`, ownerID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Stats{}, false, nil
	}
	if err != nil {
		return game.Stats{}, false, err
	}
	var st game.Stats
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		// Corrupt row: start a fresh record rather than failing.
		return game.Stats{}, false, nil
	}
	return st, true, nil
}

func (s *sqliteStore) MarkInstructionsSeen(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO prefs (owner_id, seen_instructions) VALUES (?, 1)`,
		ownerID,
	)
	return err
}

func (s *sqliteStore) InstructionsSeen(ctx context.Context, ownerID string) (bool, error) {
	var seen int
	err := s.db.QueryRowContext(ctx,
		`SELECT seen_instructions FROM prefs WHERE owner_id = ?`, ownerID,
	).Scan(&seen)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return seen != 0, nil
}

func (s *sqliteStore) ClaimOwner(ctx context.Context, fromID, toID string) error {
	if fromID == "" || toID == "" || fromID == toID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// OR IGNORE keeps the new owner's rows when both sides have state;
	// whatever could not move is dropped with the old owner.
	for _, q := range []string{
		`UPDATE OR IGNORE sessions SET owner_id = ? WHERE owner_id = ?`,
		`UPDATE OR IGNORE stats SET owner_id = ? WHERE owner_id = ?`,
		`UPDATE OR IGNORE prefs SET owner_id = ? WHERE owner_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, toID, fromID); err != nil {
			return err
		}
	}
	for _, q := range []string{
		`DELETE FROM sessions WHERE owner_id = ?`,
		`DELETE FROM stats WHERE owner_id = ?`,
		`DELETE FROM prefs WHERE owner_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, fromID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
