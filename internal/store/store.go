// internal/store/store.go
//
// Persistence contract for sessions, statistics, and preferences.
// The engine only depends on this interface; implementations may be backed
// by memory (tests/dev) or SQLite (production).

package store

import (
	"context"

	"github.com/villaindle/go-server/internal/game"
)

// SchemaVersion is bumped whenever SessionSnapshot changes shape. A stored
// snapshot with a different version is discarded on load, which forces a
// fresh session rather than attempting a migration.
const SchemaVersion = 1

// SessionSnapshot is the versioned persisted form of one day's session.
// The target is referenced by ID only; the full villain is re-resolved from
// the catalog on resume, which also invalidates sessions that reference a
// catalog entry that no longer exists.
type SessionSnapshot struct {
	Version  int                `json:"version"`
	Date     string             `json:"date"`
	TargetID string             `json:"targetId"`
	Status   game.SessionStatus `json:"status"`
	Guesses  []game.Guess       `json:"guesses"`
}

// Snapshot captures a session into its persisted form.
func Snapshot(s *game.Session) SessionSnapshot {
	return SessionSnapshot{
		Version:  SchemaVersion,
		Date:     s.Date,
		TargetID: s.Target.ID,
		Status:   s.Status,
		Guesses:  s.Guesses,
	}
}

// Store defines the persistence interface for game state.
//
// Get methods return (zero, false, nil) when no record exists; a malformed
// stored record is treated the same way (discard-and-reinitialize), never
// surfaced as a hard failure.
type Store interface {
	// SaveSession persists or replaces the session for (ownerID, snap.Date).
	SaveSession(ctx context.Context, ownerID string, snap SessionSnapshot) error

	// GetSession retrieves the session for (ownerID, date).
	GetSession(ctx context.Context, ownerID, date string) (SessionSnapshot, bool, error)

	// SaveStats persists the cumulative stats record for ownerID.
	SaveStats(ctx context.Context, ownerID string, st game.Stats) error

	// GetStats retrieves the cumulative stats record for ownerID.
	GetStats(ctx context.Context, ownerID string) (game.Stats, bool, error)

	// MarkInstructionsSeen records that the one-time help dialog was shown.
	MarkInstructionsSeen(ctx context.Context, ownerID string) error

	// InstructionsSeen reports whether the help dialog was already shown.
	InstructionsSeen(ctx context.Context, ownerID string) (bool, error)

	// ClaimOwner reassigns all state from one owner to another, used when an
	// anonymous player signs up or logs in. Rows the new owner already has
	// take precedence.
	ClaimOwner(ctx context.Context, fromID, toID string) error
}
