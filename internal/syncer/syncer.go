// Package syncer pushes local progress to the remote backend. Sync is
// one-way: the local store stays the source of truth, and a failed push
// only means the remote copy is stale.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/prepdeck/internal/remote"
	"github.com/abhisek/prepdeck/internal/store"
)

// Syncer reconciles the local store against the remote backend.
type Syncer struct {
	profile  *store.ProfileRepo
	attempts *store.AttemptRepo
	client   *remote.Client
	log      *slog.Logger
}

// New creates a syncer over the given repositories and remote client.
func New(profile *store.ProfileRepo, attempts *store.AttemptRepo, client *remote.Client, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{profile: profile, attempts: attempts, client: client, log: log}
}

// Sync pushes the profile and the full attempt log. The two upserts are
// independent: a failure in one never stops the other. Every failure is
// logged; when silent is false the joined errors are also returned so an
// interactive caller can surface them.
func (s *Syncer) Sync(ctx context.Context, userID string, silent bool) error {
	if userID == "" {
		return fmt.Errorf("sync requires a user id; sign in first")
	}

	var profileErr, attemptsErr error

	p, err := s.profile.Get(ctx)
	switch {
	case err != nil:
		profileErr = fmt.Errorf("read profile: %w", err)
	case p == nil:
		s.log.Debug("no local profile yet, nothing to push")
	default:
		if err := s.client.UpsertProfile(ctx, profileRecord(userID, p)); err != nil {
			profileErr = fmt.Errorf("push profile: %w", err)
		}
	}
	if profileErr != nil {
		s.log.Warn("profile sync failed", "error", profileErr)
	}

	attempts, err := s.attempts.All(ctx)
	if err != nil {
		attemptsErr = fmt.Errorf("read attempts: %w", err)
	} else if err := s.client.UpsertAttempts(ctx, attemptRecords(userID, attempts)); err != nil {
		attemptsErr = fmt.Errorf("push attempts: %w", err)
	}
	if attemptsErr != nil {
		s.log.Warn("attempt sync failed", "error", attemptsErr)
	}

	if silent {
		return nil
	}
	return errors.Join(profileErr, attemptsErr)
}

func profileRecord(userID string, p *store.Profile) remote.ProfileRecord {
	rec := remote.ProfileRecord{
		UserID:                 userID,
		TargetDate:             p.TargetDate,
		GoalScore:              p.GoalScore,
		CurrentStreak:          p.CurrentStreak,
		BestStreak:             p.BestStreak,
		QuestionsMastered:      p.QuestionsMastered,
		TotalQuestionsAnswered: p.TotalQuestionsAnswered,
		Accuracy:               p.Accuracy,
		Level:                  p.Level,
		TotalXP:                p.TotalXP,
		UpdatedAt:              remote.FormatTime(time.Now()),
	}
	if last := p.LastActivity(); last != nil {
		rec.LastActivity = remote.FormatTime(*last)
	}
	return rec
}

func attemptRecords(userID string, attempts []store.Attempt) []remote.AttemptRecord {
	records := make([]remote.AttemptRecord, 0, len(attempts))
	for _, a := range attempts {
		records = append(records, remote.AttemptRecord{
			UserID:           userID,
			QuestionID:       a.QuestionID,
			IsCorrect:        a.IsCorrect,
			SelectedAnswer:   a.SelectedAnswer,
			Timestamp:        remote.FormatTime(time.Unix(a.TimestampUnix, 0)),
			TimeTakenSeconds: a.TimeTakenSeconds,
		})
	}
	return records
}
