// Package streak maintains the daily practice streak.
//
// Streaks work on calendar days in the machine's local zone, not rolling
// 24-hour windows: practicing at 23:55 and again at 00:05 counts as two
// consecutive days.
package streak

import "time"

// Calculate returns the new streak given the last activity date and the
// current streak. reset reports that a gap broke the old streak; the
// caller is responsible for rolling the old value into "best streak" and
// for persisting today as the new last-activity date.
//
// A nil lastActivity means no prior practice, which starts a fresh streak
// of 1 without flagging a reset.
func Calculate(lastActivity *time.Time, current int, now time.Time) (newStreak int, reset bool) {
	if lastActivity == nil {
		return 1, false
	}

	last := *lastActivity
	if sameDay(last, now) {
		return current, false
	}
	if sameDay(last.AddDate(0, 0, 1), now) {
		return current + 1, false
	}
	return 1, true
}

// Bonus returns the supplemental XP awarded for a streak milestone.
// Advisory only: callers decide when to apply it.
func Bonus(streak int) int {
	switch {
	case streak >= 30:
		return 20
	case streak >= 14:
		return 10
	case streak >= 7:
		return 5
	default:
		return 0
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
