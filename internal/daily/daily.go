// internal/daily/daily.go
//
// Deterministic daily target selection.
//
// Every player must land on the same catalog index for the same calendar
// date, with no shared secret involved, so the index is derived purely from
// the date's (year, month, day) components. One step of a fixed
// linear-congruential transform decorrelates adjacent days from adjacent
// catalog indices.

package daily

import "time"

// MMIX LCG constants (Knuth).
const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407
)

// DateKey returns YYYY-MM-DD in UTC. Used as the rollover-detection key and
// as the persistence key for a day's session.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic catalog index for a date.
//
// The seed packs the UTC calendar date as year*10000 + month*100 + day, so
// repeated calls within the same day always agree regardless of
// time-of-day. Returns 0 when n <= 0; callers reject empty catalogs before
// selecting.
func Index(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	u := t.UTC()
	seed := uint64(u.Year()*10000 + int(u.Month())*100 + u.Day())
	seed = seed*lcgMul + lcgInc
	return int(seed % uint64(n))
}

// NextRollover returns the next UTC midnight after t, i.e. the instant the
// daily target changes. The UI shows the countdown to this moment.
func NextRollover(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
