// internal/game/session.go
//
// Game session state machine for a single day's puzzle.
// Responsibilities:
//   - Validate and apply guesses (known villain, no repeats, attempt limit).
//   - Track state transitions: in_progress → won/lost/gave_up.
//   - Terminal states are locked: no further guesses or give-ups mutate state.
//
// Notes:
//   - Guess resolution goes through the villains catalog by display name
//     (case-insensitive); identity is decided by ID only.
//   - Stats updates are the caller's responsibility, triggered exactly once
//     when a transition returns a terminal status.

package game

import (
	"errors"

	"github.com/villaindle/go-server/internal/villains"
)

// MaxAttempts is the fixed guess limit shared with the UI.
const MaxAttempts = 6

// SessionStatus is the coarse state of one day's game.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusWon        SessionStatus = "won"
	StatusLost       SessionStatus = "lost"
	StatusGaveUp     SessionStatus = "gave_up"
)

var (
	// ErrFinished rejects input once the session is in a terminal state.
	ErrFinished = errors.New("game finished")
	// ErrUnknownVillain rejects names that match no catalog entry.
	ErrUnknownVillain = errors.New("unknown villain")
	// ErrDuplicateGuess rejects a villain already guessed this session.
	ErrDuplicateGuess = errors.New("villain already guessed")
)

// Session holds the state of one day's game against a fixed target.
type Session struct {
	Date    string           // YYYY-MM-DD the session belongs to
	Target  villains.Villain // today's answer; never serialized wholesale
	Status  SessionStatus
	Guesses []Guess // insertion order = attempt order
}

// NewSession starts a fresh in-progress session for date and target.
func NewSession(date string, target villains.Villain) *Session {
	return &Session{
		Date:    date,
		Target:  target,
		Status:  StatusInProgress,
		Guesses: []Guess{},
	}
}

// Attempts reports the number of guesses made so far.
func (s *Session) Attempts() int { return len(s.Guesses) }

// Finished reports whether the session is in a terminal state.
func (s *Session) Finished() bool { return s.Status != StatusInProgress }

// SubmitGuess resolves name against the catalog, scores it against the
// target, and applies the state transition.
//
// Returns the appended Guess on success. Rejections (ErrFinished,
// ErrUnknownVillain, ErrDuplicateGuess) leave the session unchanged.
//
// Transitions:
//   - guessed ID == target ID            → won
//   - attempt count reaches MaxAttempts  → lost
//   - otherwise                          → still in progress
func (s *Session) SubmitGuess(name string) (Guess, error) {
	if s.Finished() {
		return Guess{}, ErrFinished
	}
	v, ok := villains.ByName(name)
	if !ok {
		return Guess{}, ErrUnknownVillain
	}
	for _, prev := range s.Guesses {
		if prev.VillainID == v.ID {
			return Guess{}, ErrDuplicateGuess
		}
	}

	g := Guess{
		VillainID:   v.ID,
		VillainName: v.Name,
		Correct:     v.ID == s.Target.ID,
		Comparisons: Compare(v, s.Target),
	}
	s.Guesses = append(s.Guesses, g)

	if g.Correct {
		s.Status = StatusWon
	} else if len(s.Guesses) >= MaxAttempts {
		s.Status = StatusLost
	}
	return g, nil
}

// GiveUp forfeits an in-progress session regardless of attempt count.
func (s *Session) GiveUp() error {
	if s.Finished() {
		return ErrFinished
	}
	s.Status = StatusGaveUp
	return nil
}

// Reset restarts the session in place for the given date and target,
// clearing all guesses. Player statistics are untouched.
func (s *Session) Reset(date string, target villains.Villain) {
	s.Date = date
	s.Target = target
	s.Status = StatusInProgress
	s.Guesses = []Guess{}
}
