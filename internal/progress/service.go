// Package progress applies answer outcomes to the learner profile: XP,
// daily streak, accuracy, and mastery counts. It is the only writer of
// those fields, so every mutation path goes through one place.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/prepdeck/internal/leveling"
	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/streak"
)

// Service mutates the profile after each answered question.
type Service struct {
	profile  *store.ProfileRepo
	attempts *store.AttemptRepo
}

// NewService creates a progress service over the given repositories.
func NewService(profile *store.ProfileRepo, attempts *store.AttemptRepo) *Service {
	return &Service{profile: profile, attempts: attempts}
}

// Outcome reports what one answer did to the profile.
type Outcome struct {
	XPAwarded   int // question XP plus any daily streak bonus
	StreakBonus int // portion of XPAwarded from the streak milestone
	Streak      int
	StreakReset bool
	TotalXP     int
	Level       int // derived from TotalXP, never stored
	Accuracy    float64
}

// RecordOutcome updates the profile after an answer. band is the integer
// authoring difficulty of the question; mastered marks a question that
// just climbed past the first ladder rungs. Accuracy and the answered
// count are recomputed from the attempt log rather than incremented, so
// they can never drift from it.
//
// The daily streak bonus is awarded once per calendar day, on the first
// activity of that day.
func (s *Service) RecordOutcome(ctx context.Context, correct bool, band int, mastered bool, now time.Time) (*Outcome, error) {
	p, err := s.profile.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		if err := s.profile.Init(ctx); err != nil {
			return nil, err
		}
		p = &store.Profile{}
	}

	last := p.LastActivity()
	newStreak, reset := streak.Calculate(last, p.CurrentStreak, now)
	firstToday := last == nil || !sameDay(*last, now)

	out := &Outcome{Streak: newStreak, StreakReset: reset}

	if correct {
		out.XPAwarded = leveling.XPForQuestion(band)
	}
	if firstToday {
		out.StreakBonus = streak.Bonus(newStreak)
		out.XPAwarded += out.StreakBonus
	}

	answered, correctCount, err := s.attempts.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("attempt totals: %w", err)
	}
	accuracy := 0.0
	if answered > 0 {
		accuracy = float64(correctCount) / float64(answered)
	}

	totalXP := p.TotalXP + out.XPAwarded
	out.TotalXP = totalXP
	out.Level = leveling.LevelFromXP(totalXP)
	out.Accuracy = accuracy

	lastActivity := now.Unix()
	u := store.ProfileUpdate{
		CurrentStreak:          &newStreak,
		TotalXP:                &totalXP,
		Accuracy:               &accuracy,
		TotalQuestionsAnswered: &answered,
		LastActivityUnix:       &lastActivity,
	}

	if best := p.BestStreak; newStreak > best || (reset && p.CurrentStreak > best) {
		b := max(newStreak, p.CurrentStreak)
		u.BestStreak = &b
	}
	if mastered {
		m := p.QuestionsMastered + 1
		u.QuestionsMastered = &m
	}

	if err := s.profile.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("store outcome: %w", err)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WritePlacement stores the placement calibration: the placed level and
// the seed values for mastery, answered count and accuracy.
func (s *Service) WritePlacement(ctx context.Context, level, mastered, answered int, accuracy float64) error {
	return s.profile.Update(ctx, store.ProfileUpdate{
		Level:                  &level,
		QuestionsMastered:      &mastered,
		TotalQuestionsAnswered: &answered,
		Accuracy:               &accuracy,
	})
}
