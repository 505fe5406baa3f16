// internal/game/stats.go
//
// Cumulative play statistics, updated once per completed game.

package game

// Stats is the cumulative record persisted across days. It is only mutated
// through RecordOutcome, exactly once per terminal transition; duplicate
// calls double-count, so callers must gate on the transition itself.
type Stats struct {
	Played          int         `json:"gamesPlayed"`
	Won             int         `json:"gamesWon"`
	CurrentStreak   int         `json:"currentStreak"`
	MaxStreak       int         `json:"maxStreak"`
	WinDistribution map[int]int `json:"winDistribution"` // attempts (1..MaxAttempts) → wins
	LastPlayed      string      `json:"lastPlayed,omitempty"`
}

// NewStats returns a zeroed record with the full histogram laid out,
// matching what the stats dialog renders.
func NewStats() Stats {
	dist := make(map[int]int, MaxAttempts)
	for i := 1; i <= MaxAttempts; i++ {
		dist[i] = 0
	}
	return Stats{WinDistribution: dist}
}

// RecordOutcome folds one completed game into the record and returns the
// updated copy. A loss or a forfeit resets the streak and leaves the
// histogram alone.
func (s Stats) RecordOutcome(won bool, attempts int) Stats {
	out := s
	out.WinDistribution = make(map[int]int, MaxAttempts)
	for k, v := range s.WinDistribution {
		out.WinDistribution[k] = v
	}

	out.Played++
	if won {
		out.Won++
		out.CurrentStreak++
		if out.CurrentStreak > out.MaxStreak {
			out.MaxStreak = out.CurrentStreak
		}
		if attempts >= 1 && attempts <= MaxAttempts {
			out.WinDistribution[attempts]++
		}
	} else {
		out.CurrentStreak = 0
	}
	return out
}
