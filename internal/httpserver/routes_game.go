// internal/httpserver/routes_game.go
//
// HTTP routes for the daily villain game.
// Exposes:
//   - GET  /villains            → catalog feed for the autocomplete widget
//   - GET  /game/state          → bootstrap/resume today's session
//   - POST /game/guess          → submit a guess
//   - POST /game/giveup         → forfeit today's game
//   - POST /game/reset          → restart today's game (stats untouched)
//   - GET  /stats               → cumulative play statistics
//   - POST /prefs/instructions  → mark the one-time help dialog as seen
//
// Sessions are persisted after every mutation and resumed on bootstrap only
// when the stored snapshot still matches today's computed target; stale,
// corrupt, or version-mismatched snapshots are silently replaced by a fresh
// session without touching statistics.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/villaindle/go-server/internal/daily"
	"github.com/villaindle/go-server/internal/game"
	"github.com/villaindle/go-server/internal/store"
	"github.com/villaindle/go-server/internal/villains"
)

// errCatalogEmpty is the fatal misconfiguration case; main refuses to start
// without a catalog, so seeing this at request time means the catalog was
// swapped out from under a running server.
var errCatalogEmpty = errors.New("villain catalog is empty")

// gameServer wraps dependencies for the game endpoints.
type gameServer struct {
	srv   *Server
	store store.Store
	mu    sync.Mutex // serializes guess processing per process
}

// mountGame registers all game routes.
func (s *Server) mountGame(r chi.Router) {
	gs := &gameServer{srv: s, store: s.store}
	r.Get("/villains", gs.handleVillains)
	r.Route("/game", func(r chi.Router) {
		r.Get("/state", gs.handleState)
		r.Post("/guess", gs.handleGuess)
		r.Post("/giveup", gs.handleGiveUp)
		r.Post("/reset", gs.handleReset)
	})
	r.Get("/stats", gs.handleStats)
	r.Post("/prefs/instructions", gs.handleInstructionsSeen)
}

// todayTarget computes today's date key and target villain.
func todayTarget(now time.Time) (date string, target villains.Villain, err error) {
	all := villains.All()
	if len(all) == 0 {
		return "", villains.Villain{}, errCatalogEmpty
	}
	date = daily.DateKey(now)
	target = all[daily.Index(now, len(all))]
	return date, target, nil
}

// sessionFor loads or creates the session for (owner, today).
//
// Resume rule: a persisted snapshot is accepted only if its schema version
// matches, its status is well formed, and its target ID equals today's
// computed target. Anything else starts fresh; an abandoned session never
// counts as a loss.
func (g *gameServer) sessionFor(ctx context.Context, ownerID string, now time.Time) (*game.Session, error) {
	date, target, err := todayTarget(now)
	if err != nil {
		return nil, err
	}

	snap, ok, err := g.store.GetSession(ctx, ownerID, date)
	if err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("load session")
		ok = false
	}
	if ok && resumable(snap, target.ID) {
		sess := &game.Session{
			Date:    date,
			Target:  target,
			Status:  snap.Status,
			Guesses: snap.Guesses,
		}
		if sess.Guesses == nil {
			sess.Guesses = []game.Guess{}
		}
		return sess, nil
	}
	return game.NewSession(date, target), nil
}

// resumable checks a stored snapshot against today's target.
func resumable(snap store.SessionSnapshot, targetID string) bool {
	if snap.Version != store.SchemaVersion || snap.TargetID != targetID {
		return false
	}
	switch snap.Status {
	case game.StatusInProgress, game.StatusWon, game.StatusLost, game.StatusGaveUp:
	default:
		return false
	}
	return len(snap.Guesses) <= game.MaxAttempts
}

// saveSession persists the session, best effort.
func (g *gameServer) saveSession(ctx context.Context, ownerID string, sess *game.Session) {
	if err := g.store.SaveSession(ctx, ownerID, store.Snapshot(sess)); err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("save session")
	}
}

// recordOutcome folds a terminal transition into the owner's stats.
// Called exactly once per completed game, on the transition itself.
func (g *gameServer) recordOutcome(ctx context.Context, ownerID, date string, won bool, attempts int) {
	st, ok, err := g.store.GetStats(ctx, ownerID)
	if err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("load stats")
		ok = false
	}
	if !ok {
		st = game.NewStats()
	}
	st = st.RecordOutcome(won, attempts)
	st.LastPlayed = date
	if err := g.store.SaveStats(ctx, ownerID, st); err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("save stats")
	}
}

// -----------------------------------------------------------------------------
// GET /villains

// handleVillains returns the catalog, optionally filtered by a
// case-insensitive name prefix (?prefix=). Feeds the autocomplete widget;
// nothing here identifies the target.
func (g *gameServer) handleVillains(w http.ResponseWriter, r *http.Request) {
	list := villains.FilterPrefix(r.URL.Query().Get("prefix"))
	if list == nil {
		list = []villains.Villain{}
	}
	_ = json.NewEncoder(w).Encode(list)
}

// -----------------------------------------------------------------------------
// GET /game/state

// stateRes is the bootstrap/resume payload.
type stateRes struct {
	Date             string             `json:"date"`
	Status           game.SessionStatus `json:"status"`
	Attempts         int                `json:"attempts"`
	MaxAttempts      int                `json:"maxAttempts"`
	Guesses          []game.Guess       `json:"guesses"`
	ResetInSeconds   int64              `json:"resetInSeconds"`
	SeenInstructions bool               `json:"seenInstructions"`
	// Target is revealed only once the session is terminal.
	Target string `json:"target,omitempty"`
}

// handleState resumes or starts today's session and reports it.
func (g *gameServer) handleState(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)
	now := time.Now()
	sess, err := g.sessionFor(r.Context(), owner, now)
	if err != nil {
		http.Error(w, `{"error":"catalog_empty"}`, http.StatusInternalServerError)
		return
	}
	seen, err := g.store.InstructionsSeen(r.Context(), owner)
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("load prefs")
	}

	res := stateRes{
		Date:             sess.Date,
		Status:           sess.Status,
		Attempts:         sess.Attempts(),
		MaxAttempts:      game.MaxAttempts,
		Guesses:          sess.Guesses,
		ResetInSeconds:   int64(time.Until(daily.NextRollover(now)).Seconds()),
		SeenInstructions: seen,
	}
	if sess.Finished() {
		res.Target = sess.Target.Name
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// POST /game/guess

// guessReq is the request payload for /game/guess.
type guessReq struct {
	Name string `json:"name"`
}

// guessRes is the response payload for /game/guess.
type guessRes struct {
	Guess    game.Guess         `json:"guess"`
	Status   game.SessionStatus `json:"status"`
	Attempts int                `json:"attempts"`
	// Target is included only when this guess ended the game.
	Target string `json:"target,omitempty"`
}

// handleGuess submits one guess against today's session.
// - Unknown names and repeats are rejected inline with no state change.
// - A terminal session rejects all further guesses.
// - Terminal transitions persist the session and update stats exactly once.
func (g *gameServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)

	var p guessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sess, err := g.sessionFor(r.Context(), owner, time.Now())
	if err != nil {
		http.Error(w, `{"error":"catalog_empty"}`, http.StatusInternalServerError)
		return
	}

	guess, err := sess.SubmitGuess(p.Name)
	switch {
	case errors.Is(err, game.ErrFinished):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrUnknownVillain):
		http.Error(w, `{"error":"unknown_villain"}`, http.StatusUnprocessableEntity)
		return
	case errors.Is(err, game.ErrDuplicateGuess):
		http.Error(w, `{"error":"duplicate_guess"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	g.saveSession(r.Context(), owner, sess)
	if sess.Finished() {
		g.recordOutcome(r.Context(), owner, sess.Date, sess.Status == game.StatusWon, sess.Attempts())
	}

	res := guessRes{Guess: guess, Status: sess.Status, Attempts: sess.Attempts()}
	if sess.Finished() {
		res.Target = sess.Target.Name
	}
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// POST /game/giveup

// handleGiveUp forfeits today's session. Counts as a non-win for stats.
func (g *gameServer) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)

	g.mu.Lock()
	defer g.mu.Unlock()

	sess, err := g.sessionFor(r.Context(), owner, time.Now())
	if err != nil {
		http.Error(w, `{"error":"catalog_empty"}`, http.StatusInternalServerError)
		return
	}
	if err := sess.GiveUp(); err != nil {
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	}

	g.saveSession(r.Context(), owner, sess)
	g.recordOutcome(r.Context(), owner, sess.Date, false, sess.Attempts())

	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": sess.Status,
		"target": sess.Target.Name,
	})
}

// -----------------------------------------------------------------------------
// POST /game/reset

// handleReset restarts today's session with zero guesses. The daily target
// is unchanged and statistics are untouched.
func (g *gameServer) handleReset(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)

	g.mu.Lock()
	defer g.mu.Unlock()

	date, target, err := todayTarget(time.Now())
	if err != nil {
		http.Error(w, `{"error":"catalog_empty"}`, http.StatusInternalServerError)
		return
	}
	sess := game.NewSession(date, target)
	g.saveSession(r.Context(), owner, sess)

	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "date": date})
}

// -----------------------------------------------------------------------------
// GET /stats

// handleStats returns the owner's cumulative statistics.
func (g *gameServer) handleStats(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)
	st, ok, err := g.store.GetStats(r.Context(), owner)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		st = game.NewStats()
	}
	_ = json.NewEncoder(w).Encode(st)
}

// -----------------------------------------------------------------------------
// POST /prefs/instructions

// handleInstructionsSeen records that the one-time help dialog was shown.
func (g *gameServer) handleInstructionsSeen(w http.ResponseWriter, r *http.Request) {
	owner := g.srv.ownerID(w, r)
	if err := g.store.MarkInstructionsSeen(r.Context(), owner); err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
