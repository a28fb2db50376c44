package progress

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/prepdeck/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open("file:progresstest?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return NewService(s.Profile(), s.Attempts()), s
}

var day1 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

func TestRecordOutcomeFirstAnswer(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	// One correct attempt already in the log (the session appends before
	// recording the outcome).
	a := store.Attempt{QuestionID: "q1", IsCorrect: true, TimestampUnix: day1.Unix()}
	if err := s.Attempts().Append(ctx, &a); err != nil {
		t.Fatalf("append: %v", err)
	}

	out, err := svc.RecordOutcome(ctx, true, 2, false, day1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if out.Streak != 1 || out.StreakReset {
		t.Errorf("streak = (%d, %v), want (1, false)", out.Streak, out.StreakReset)
	}
	if out.XPAwarded != 7 { // band 2 reward, no bonus below streak 7
		t.Errorf("xp = %d, want 7", out.XPAwarded)
	}
	if out.Level != 0 {
		t.Errorf("level = %d, want 0 before 100 XP", out.Level)
	}
	if out.Accuracy != 1.0 {
		t.Errorf("accuracy = %v, want 1.0", out.Accuracy)
	}

	p, err := s.Profile().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.TotalXP != 7 || p.CurrentStreak != 1 || p.TotalQuestionsAnswered != 1 {
		t.Errorf("profile = xp %d, streak %d, answered %d",
			p.TotalXP, p.CurrentStreak, p.TotalQuestionsAnswered)
	}
	if p.LastActivity() == nil {
		t.Error("last activity not recorded")
	}
}

func TestRecordOutcomeIncorrectStillCountsActivity(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	a := store.Attempt{QuestionID: "q1", IsCorrect: false, TimestampUnix: day1.Unix()}
	if err := s.Attempts().Append(ctx, &a); err != nil {
		t.Fatalf("append: %v", err)
	}

	out, err := svc.RecordOutcome(ctx, false, 4, false, day1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.XPAwarded != 0 {
		t.Errorf("xp for incorrect = %d, want 0", out.XPAwarded)
	}
	if out.Streak != 1 {
		t.Errorf("streak = %d, want 1 (activity counts)", out.Streak)
	}
	if out.Accuracy != 0 {
		t.Errorf("accuracy = %v, want 0", out.Accuracy)
	}
}

func TestRecordOutcomeStreakBonusOncePerDay(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	// Learner arrives with a 6-day streak; today makes 7 and crosses the
	// first bonus threshold.
	streak6 := 6
	yesterday := day1.AddDate(0, 0, -1).Unix()
	if err := s.Profile().Update(ctx, store.ProfileUpdate{
		CurrentStreak:    &streak6,
		LastActivityUnix: &yesterday,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	a := store.Attempt{QuestionID: "q1", IsCorrect: true, TimestampUnix: day1.Unix()}
	if err := s.Attempts().Append(ctx, &a); err != nil {
		t.Fatalf("append: %v", err)
	}

	out, err := svc.RecordOutcome(ctx, true, 1, false, day1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.Streak != 7 {
		t.Errorf("streak = %d, want 7", out.Streak)
	}
	if out.StreakBonus != 5 || out.XPAwarded != 10 { // 5 question + 5 bonus
		t.Errorf("bonus = %d, xp = %d, want 5 and 10", out.StreakBonus, out.XPAwarded)
	}

	// Second answer the same day: no second bonus.
	b := store.Attempt{QuestionID: "q2", IsCorrect: true, TimestampUnix: day1.Unix()}
	if err := s.Attempts().Append(ctx, &b); err != nil {
		t.Fatalf("append: %v", err)
	}
	out2, err := svc.RecordOutcome(ctx, true, 1, false, day1.Add(time.Hour))
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if out2.StreakBonus != 0 || out2.XPAwarded != 5 {
		t.Errorf("second answer bonus = %d, xp = %d, want 0 and 5",
			out2.StreakBonus, out2.XPAwarded)
	}
}

func TestRecordOutcomeStreakResetRollsBest(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	oldStreak := 9
	lastWeek := day1.AddDate(0, 0, -7).Unix()
	if err := s.Profile().Update(ctx, store.ProfileUpdate{
		CurrentStreak:    &oldStreak,
		LastActivityUnix: &lastWeek,
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	out, err := svc.RecordOutcome(ctx, true, 1, false, day1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if out.Streak != 1 || !out.StreakReset {
		t.Errorf("streak = (%d, %v), want (1, true)", out.Streak, out.StreakReset)
	}

	p, err := s.Profile().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.BestStreak != 9 {
		t.Errorf("best streak = %d, want 9 preserved from broken run", p.BestStreak)
	}
}

func TestRecordOutcomeMasteredCount(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		out, err := svc.RecordOutcome(ctx, true, 3, true, day1.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		_ = out
	}

	p, err := s.Profile().Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.QuestionsMastered != 2 {
		t.Errorf("mastered = %d, want 2", p.QuestionsMastered)
	}
}
