package store_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/villaindle/go-server/internal/game"
	"github.com/villaindle/go-server/internal/store"
	"github.com/villaindle/go-server/internal/villains"
)

func newSQLiteStore(t *testing.T) (store.Store, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	st, err := store.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	return st, db
}

func TestSQLiteSessionRoundTrip(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()

	sess := game.NewSession("2024-06-15", villains.Villain{ID: "morvax", Name: "Morvax", FirstAppearanceYear: 1990})
	guessed := villains.Villain{ID: "vexa", Name: "Vexa", FirstAppearanceYear: 2000}
	sess.Guesses = append(sess.Guesses, game.Guess{
		VillainID:   guessed.ID,
		VillainName: guessed.Name,
		Comparisons: game.Compare(guessed, sess.Target),
	})

	if err := st.SaveSession(ctx, "o1", store.Snapshot(sess)); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	got, ok, err := st.GetSession(ctx, "o1", "2024-06-15")
	if err != nil || !ok {
		t.Fatalf("GetSession() = ok=%v err=%v", ok, err)
	}
	if got.TargetID != "morvax" || got.Status != game.StatusInProgress {
		t.Fatalf("round trip lost session fields: %+v", got)
	}
	if len(got.Guesses) != 1 || got.Guesses[0].VillainID != "vexa" {
		t.Fatalf("round trip lost guesses: %+v", got.Guesses)
	}
	if got.Guesses[0].Comparisons[game.FieldFirstAppearance].Status() != game.StatusLower {
		t.Fatalf("round trip lost verdicts: %+v", got.Guesses[0].Comparisons)
	}

	// Overwrite on save (same owner+date).
	sess.Status = game.StatusGaveUp
	if err := st.SaveSession(ctx, "o1", store.Snapshot(sess)); err != nil {
		t.Fatalf("SaveSession(overwrite) error = %v", err)
	}
	got, _, _ = st.GetSession(ctx, "o1", "2024-06-15")
	if got.Status != game.StatusGaveUp {
		t.Fatalf("overwrite not applied: %s", got.Status)
	}
}

func TestSQLiteCorruptSessionDiscarded(t *testing.T) {
	st, db := newSQLiteStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO sessions (owner_id, date, version, target_id, status, guesses)
	                   VALUES ('o1', '2024-06-15', 1, 'morvax', 'in_progress', 'not json at all')`)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	if _, ok, err := st.GetSession(ctx, "o1", "2024-06-15"); err != nil || ok {
		t.Fatalf("corrupt row: ok=%v err=%v, want silently absent", ok, err)
	}
}

func TestSQLiteStatsRoundTripAndCorruption(t *testing.T) {
	st, db := newSQLiteStore(t)
	ctx := context.Background()

	rec := game.NewStats().RecordOutcome(true, 4)
	rec.LastPlayed = "2024-06-15"
	if err := st.SaveStats(ctx, "o1", rec); err != nil {
		t.Fatalf("SaveStats() error = %v", err)
	}
	got, ok, err := st.GetStats(ctx, "o1")
	if err != nil || !ok {
		t.Fatalf("GetStats() = ok=%v err=%v", ok, err)
	}
	if got.Played != 1 || got.WinDistribution[4] != 1 || got.LastPlayed != "2024-06-15" {
		t.Fatalf("stats round trip lost data: %+v", got)
	}

	_, _ = db.Exec(`UPDATE stats SET data = '{{{' WHERE owner_id = 'o1'`)
	if _, ok, err := st.GetStats(ctx, "o1"); err != nil || ok {
		t.Fatalf("corrupt stats: ok=%v err=%v, want silently absent", ok, err)
	}
}

func TestSQLiteClaimOwner(t *testing.T) {
	st, _ := newSQLiteStore(t)
	ctx := context.Background()

	_ = st.SaveSession(ctx, "anon", testSnapshot("2024-06-15", "morvax"))
	_ = st.SaveStats(ctx, "anon", game.NewStats().RecordOutcome(true, 1))
	_ = st.MarkInstructionsSeen(ctx, "anon")

	// The user already has a session for the same date; theirs wins.
	_ = st.SaveSession(ctx, "user", testSnapshot("2024-06-15", "vexa"))

	if err := st.ClaimOwner(ctx, "anon", "user"); err != nil {
		t.Fatalf("ClaimOwner() error = %v", err)
	}

	got, ok, _ := st.GetSession(ctx, "user", "2024-06-15")
	if !ok || got.TargetID != "vexa" {
		t.Fatalf("existing user session not preserved: ok=%v %+v", ok, got)
	}
	if _, ok, _ := st.GetSession(ctx, "anon", "2024-06-15"); ok {
		t.Fatalf("anon session survived claim")
	}
	if rec, ok, _ := st.GetStats(ctx, "user"); !ok || rec.Played != 1 {
		t.Fatalf("claimed stats missing: ok=%v %+v", ok, rec)
	}
	if seen, _ := st.InstructionsSeen(ctx, "user"); !seen {
		t.Fatalf("claimed prefs missing")
	}
}
