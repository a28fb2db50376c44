package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQuestionGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Questions().Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	q := testQuestion("q1")
	q.Hint = "Count on your fingers."
	if err := repo.BulkInsert(ctx, []Question{q}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Topic != "Math" || got.Subtopic != "Algebra" {
		t.Errorf("topic/subtopic = %s/%s", got.Topic, got.Subtopic)
	}
	if len(got.Options) != 4 || got.Options[1] != "4" {
		t.Errorf("options = %v", got.Options)
	}
	if got.Hint != "Count on your fingers." {
		t.Errorf("hint = %q", got.Hint)
	}
	if got.SRSInterval != 0 || got.NextReviewUnix != 0 {
		t.Errorf("fresh question has interval %d, next review %d",
			got.SRSInterval, got.NextReviewUnix)
	}
}

func TestQuestionByTopicCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	q2 := testQuestion("q2")
	q2.Topic = "English"
	if err := repo.BulkInsert(ctx, []Question{testQuestion("q1"), q2}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.ByTopic(ctx, "english")
	if err != nil {
		t.Fatalf("by topic: %v", err)
	}
	if len(got) != 1 || got[0].ID != "q2" {
		t.Errorf("got %d questions, want [q2]", len(got))
	}
}

func TestQuestionDueSelection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	fresh := testQuestion("a-fresh") // never reviewed: always eligible
	overdue := testQuestion("b-overdue")
	overdue.SRSInterval = 3
	overdue.NextReviewUnix = now.Add(-time.Hour).Unix()
	future := testQuestion("c-future")
	future.SRSInterval = 8
	future.NextReviewUnix = now.Add(48 * time.Hour).Unix()

	if err := repo.BulkInsert(ctx, []Question{fresh, overdue, future}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	due, err := repo.Due(ctx, now, 10)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due count = %d, want 2", len(due))
	}
	if due[0].ID != "a-fresh" || due[1].ID != "b-overdue" {
		t.Errorf("due order = %s, %s", due[0].ID, due[1].ID)
	}

	// Same snapshot, same answer.
	again, err := repo.Due(ctx, now, 10)
	if err != nil {
		t.Fatalf("due again: %v", err)
	}
	if len(again) != 2 || again[0].ID != due[0].ID || again[1].ID != due[1].ID {
		t.Error("due selection not stable across repeated calls")
	}

	limited, err := repo.Due(ctx, now, 1)
	if err != nil {
		t.Fatalf("due limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited due count = %d, want 1", len(limited))
	}
}

func TestQuestionUpdateSchedule(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	if err := repo.BulkInsert(ctx, []Question{testQuestion("q1")}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	next := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	if err := repo.UpdateSchedule(ctx, "q1", 1, next); err != nil {
		t.Fatalf("update schedule: %v", err)
	}

	got, err := repo.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SRSInterval != 1 {
		t.Errorf("interval = %d, want 1", got.SRSInterval)
	}
	if got.NextReviewUnix != next.Unix() {
		t.Errorf("next review = %d, want %d", got.NextReviewUnix, next.Unix())
	}

	// A vanished question is reported as not found, not as failure.
	err = repo.UpdateSchedule(ctx, "ghost", 1, next)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update of missing question: err = %v, want ErrNotFound", err)
	}
}

func TestQuestionUpdateDifficulty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Questions()

	if err := repo.BulkInsert(ctx, []Question{testQuestion("q1")}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.UpdateDifficulty(ctx, "q1", 2.05); err != nil {
		t.Fatalf("update difficulty: %v", err)
	}

	got, err := repo.Get(ctx, "q1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Difficulty != 2.05 {
		t.Errorf("difficulty = %v, want 2.05", got.Difficulty)
	}

	err = repo.UpdateDifficulty(ctx, "ghost", 3)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update of missing question: err = %v, want ErrNotFound", err)
	}
}

func TestQuestionDifficultyBand(t *testing.T) {
	q := Question{Difficulty: 2.45}
	if got := q.DifficultyBand(); got != 2 {
		t.Errorf("band(2.45) = %d, want 2", got)
	}
	q.Difficulty = 3.6
	if got := q.DifficultyBand(); got != 4 {
		t.Errorf("band(3.6) = %d, want 4", got)
	}
}
