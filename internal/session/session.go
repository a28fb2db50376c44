// Package session orchestrates practice, review and placement runs: it
// selects questions, evaluates answers, and fans the result out to the
// attempt log, the difficulty adapter, the scheduler, and the profile.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// DefaultLimit is the number of questions in a session unless overridden.
const DefaultLimit = 10

// Service runs practice sessions against the local store.
type Service struct {
	questions *store.QuestionRepo
	attempts  *store.AttemptRepo
	progress  *progress.Service
	log       *slog.Logger
}

// NewService creates a session service.
func NewService(questions *store.QuestionRepo, attempts *store.AttemptRepo, prog *progress.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{questions: questions, attempts: attempts, progress: prog, log: log}
}

// Options selects the questions for a session.
type Options struct {
	Topic       string   // optional topic filter
	Limit       int      // 0 = DefaultLimit
	QuestionIDs []string // explicit list (mistake replay); dangling ids skipped
	DueOnly     bool     // restrict to the due set
}

// Practice is a started session.
type Practice struct {
	ID        string
	Questions []store.Question
	StartedAt time.Time
}

// Start builds a session. Due questions come first; the rest of the slots
// are filled with a shuffled sample of the bank.
func (s *Service) Start(ctx context.Context, opts Options) (*Practice, error) {
	now := time.Now()
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var picked []store.Question
	var err error
	switch {
	case len(opts.QuestionIDs) > 0:
		picked, err = s.byIDs(ctx, opts.QuestionIDs, limit)
	case opts.DueOnly:
		picked, err = s.due(ctx, opts.Topic, limit, now)
	default:
		picked, err = s.dueFirst(ctx, opts.Topic, limit, now)
	}
	if err != nil {
		return nil, err
	}

	p := &Practice{ID: uuid.NewString(), Questions: picked, StartedAt: now}
	s.log.Debug("session started", "session_id", p.ID, "questions", len(picked))
	return p, nil
}

// Mistakes returns up to limit questions the learner has previously
// missed, most recently missed first. Attempts whose question has left
// the bank are skipped, not treated as corruption.
func (s *Service) Mistakes(ctx context.Context, limit int) ([]store.Question, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ids, err := s.attempts.IncorrectQuestionIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids, limit), nil
}

// Result reports the effect of one submitted answer.
type Result struct {
	Correct     bool
	Explanation string
	Interval    int       // new review interval in days
	NextReview  time.Time //
	Difficulty  float64   // adapted difficulty after this answer
	Outcome     *progress.Outcome
}

// Submit evaluates an answer and applies every per-answer mutation: the
// attempt is logged, then the difficulty adapter and the scheduler each
// update the question (also during replay sessions), and finally the
// profile absorbs the outcome. A question that vanished between read
// and write is skipped silently.
func (s *Service) Submit(ctx context.Context, q *store.Question, selected int, elapsed time.Duration, now time.Time) (*Result, error) {
	correct := selected == q.CorrectIndex

	attempt := &store.Attempt{
		QuestionID:       q.ID,
		IsCorrect:        correct,
		SelectedAnswer:   selected,
		TimestampUnix:    now.Unix(),
		TimeTakenSeconds: int(elapsed.Seconds()),
	}
	if err := s.attempts.Append(ctx, attempt); err != nil {
		return nil, fmt.Errorf("log attempt: %w", err)
	}

	newDifficulty := srs.AdjustDifficulty(q.Difficulty, correct)
	if err := s.questions.UpdateDifficulty(ctx, q.ID, newDifficulty); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		s.log.Debug("question vanished during difficulty update", "question_id", q.ID)
	}

	interval, nextReview := srs.UpdateSchedule(q.SRSInterval, correct, now)
	if err := s.questions.UpdateSchedule(ctx, q.ID, interval, nextReview); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		s.log.Debug("question vanished during schedule update", "question_id", q.ID)
	}

	// A question counts as mastered when it first climbs past the early
	// ladder rungs.
	mastered := correct && q.SRSInterval < srs.SecondInterval && interval >= srs.SecondInterval

	outcome, err := s.progress.RecordOutcome(ctx, correct, q.DifficultyBand(), mastered, now)
	if err != nil {
		return nil, err
	}

	return &Result{
		Correct:     correct,
		Explanation: q.Explanation,
		Interval:    interval,
		NextReview:  nextReview,
		Difficulty:  newDifficulty,
		Outcome:     outcome,
	}, nil
}

func (s *Service) byIDs(ctx context.Context, ids []string, limit int) ([]store.Question, error) {
	return s.resolve(ctx, ids, limit), nil
}

func (s *Service) resolve(ctx context.Context, ids []string, limit int) []store.Question {
	var qs []store.Question
	for _, id := range ids {
		if len(qs) >= limit {
			break
		}
		q, err := s.questions.Get(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.log.Debug("skipping dangling question reference", "question_id", id)
				continue
			}
			s.log.Warn("question lookup failed", "question_id", id, "error", err)
			continue
		}
		qs = append(qs, *q)
	}
	return qs
}

func (s *Service) due(ctx context.Context, topic string, limit int, now time.Time) ([]store.Question, error) {
	due, err := s.questions.Due(ctx, now, limit)
	if err != nil {
		return nil, err
	}
	return filterTopic(due, topic), nil
}

func (s *Service) dueFirst(ctx context.Context, topic string, limit int, now time.Time) ([]store.Question, error) {
	due, err := s.due(ctx, topic, limit, now)
	if err != nil {
		return nil, err
	}

	picked := due
	if len(picked) >= limit {
		return picked[:limit], nil
	}

	var pool []store.Question
	if topic != "" {
		pool, err = s.questions.ByTopic(ctx, topic)
	} else {
		pool, err = s.questions.All(ctx)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(picked))
	for _, q := range picked {
		seen[q.ID] = true
	}

	var fill []store.Question
	for _, q := range pool {
		if !seen[q.ID] {
			fill = append(fill, q)
		}
	}
	rand.Shuffle(len(fill), func(i, j int) { fill[i], fill[j] = fill[j], fill[i] })

	for _, q := range fill {
		if len(picked) >= limit {
			break
		}
		picked = append(picked, q)
	}
	return picked, nil
}

func filterTopic(qs []store.Question, topic string) []store.Question {
	if topic == "" {
		return qs
	}
	var out []store.Question
	for _, q := range qs {
		if strings.EqualFold(q.Topic, topic) {
			out = append(out, q)
		}
	}
	return out
}
