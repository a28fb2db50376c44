// Package srs implements the spaced-repetition schedule and the
// per-question difficulty adapter.
//
// The schedule is a fixed interval ladder rather than a full SM-2 ease
// model: a wrong answer makes the question immediately due again, and
// each correct answer climbs one rung.
package srs

import (
	"math"
	"time"
)

// Ladder rungs in days. Past the second rung the interval grows by
// IntervalGrowth per correct answer.
const (
	FirstInterval  = 1
	SecondInterval = 3
	IntervalGrowth = 2.5
)

// UpdateSchedule returns the new review interval and next-review time for
// a question after an answer. An incorrect answer resets the interval to 0
// (immediately due). A negative stored interval is treated as 0.
func UpdateSchedule(interval int, correct bool, now time.Time) (int, time.Time) {
	if interval < 0 {
		interval = 0
	}

	if !correct {
		return 0, now
	}

	switch interval {
	case 0:
		interval = FirstInterval
	case FirstInterval:
		interval = SecondInterval
	default:
		interval = int(math.Round(float64(interval) * IntervalGrowth))
	}

	return interval, now.AddDate(0, 0, interval)
}
