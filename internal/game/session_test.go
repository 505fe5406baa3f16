package game_test

import (
	"errors"
	"testing"

	"github.com/villaindle/go-server/internal/game"
)

func newFixtureSession(t *testing.T, targetName string) *game.Session {
	t.Helper()
	return game.NewSession("2024-06-15", mustVillain(t, targetName))
}

func TestSubmitGuessWin(t *testing.T) {
	sess := newFixtureSession(t, "Vexa")

	g, err := sess.SubmitGuess("Morvax")
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if g.Correct {
		t.Fatalf("wrong guess reported correct")
	}
	if sess.Status != game.StatusInProgress || sess.Attempts() != 1 {
		t.Fatalf("after wrong guess: status %s attempts %d", sess.Status, sess.Attempts())
	}

	// Name resolution is case-insensitive.
	g, err = sess.SubmitGuess("vExA")
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if !g.Correct {
		t.Fatalf("winning guess not reported correct")
	}
	if sess.Status != game.StatusWon || sess.Attempts() != 2 {
		t.Fatalf("after win: status %s attempts %d", sess.Status, sess.Attempts())
	}
}

func TestSubmitGuessRejections(t *testing.T) {
	sess := newFixtureSession(t, "Vexa")

	if _, err := sess.SubmitGuess("Nobody At All"); !errors.Is(err, game.ErrUnknownVillain) {
		t.Fatalf("unknown name: err = %v, want ErrUnknownVillain", err)
	}
	if sess.Attempts() != 0 {
		t.Fatalf("rejected guess consumed an attempt")
	}

	if _, err := sess.SubmitGuess("Morvax"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if _, err := sess.SubmitGuess("morvax"); !errors.Is(err, game.ErrDuplicateGuess) {
		t.Fatalf("repeat guess: err = %v, want ErrDuplicateGuess", err)
	}
	if sess.Attempts() != 1 {
		t.Fatalf("duplicate guess consumed an attempt")
	}
}

func TestAttemptLimitLoss(t *testing.T) {
	sess := newFixtureSession(t, "Vexa")

	wrong := []string{"Morvax", "Zil", "Wrong One", "Wrong Two", "Wrong Three", "Wrong Four"}
	if len(wrong) != game.MaxAttempts {
		t.Fatalf("fixture needs %d wrong guesses", game.MaxAttempts)
	}
	for i, name := range wrong {
		if _, err := sess.SubmitGuess(name); err != nil {
			t.Fatalf("guess %d (%s): %v", i+1, name, err)
		}
	}
	if sess.Status != game.StatusLost {
		t.Fatalf("status = %s after %d misses, want lost", sess.Status, game.MaxAttempts)
	}
	if sess.Attempts() != game.MaxAttempts {
		t.Fatalf("attempts = %d, want %d", sess.Attempts(), game.MaxAttempts)
	}
}

func TestTerminalLockout(t *testing.T) {
	for _, end := range []func(s *game.Session){
		func(s *game.Session) { _, _ = s.SubmitGuess("Vexa") }, // win
		func(s *game.Session) { _ = s.GiveUp() },
	} {
		sess := newFixtureSession(t, "Vexa")
		end(sess)
		if !sess.Finished() {
			t.Fatalf("session not terminal after ending move")
		}

		status, attempts := sess.Status, sess.Attempts()
		if _, err := sess.SubmitGuess("Morvax"); !errors.Is(err, game.ErrFinished) {
			t.Fatalf("guess after end: err = %v, want ErrFinished", err)
		}
		if err := sess.GiveUp(); !errors.Is(err, game.ErrFinished) {
			t.Fatalf("give up after end: err = %v, want ErrFinished", err)
		}
		if sess.Status != status || sess.Attempts() != attempts {
			t.Fatalf("terminal session mutated: %s/%d → %s/%d", status, attempts, sess.Status, sess.Attempts())
		}
	}
}

func TestGiveUp(t *testing.T) {
	sess := newFixtureSession(t, "Vexa")
	if _, err := sess.SubmitGuess("Morvax"); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if err := sess.GiveUp(); err != nil {
		t.Fatalf("GiveUp() error = %v", err)
	}
	if sess.Status != game.StatusGaveUp {
		t.Fatalf("status = %s, want gave_up", sess.Status)
	}
	if sess.Attempts() != 1 {
		t.Fatalf("give up altered guess history")
	}
}

func TestReset(t *testing.T) {
	sess := newFixtureSession(t, "Vexa")
	_, _ = sess.SubmitGuess("Morvax")
	_ = sess.GiveUp()

	sess.Reset("2024-06-16", mustVillain(t, "Zil"))
	if sess.Status != game.StatusInProgress || sess.Attempts() != 0 {
		t.Fatalf("after reset: status %s attempts %d", sess.Status, sess.Attempts())
	}
	if sess.Target.ID != "zil" || sess.Date != "2024-06-16" {
		t.Fatalf("reset kept stale target/date: %s %s", sess.Target.ID, sess.Date)
	}
	if _, err := sess.SubmitGuess("Morvax"); err != nil {
		t.Fatalf("guess after reset: %v", err)
	}
}
