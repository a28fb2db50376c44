package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Attempt is one answered question: an immutable, append-only log record.
// The question id is a best-effort reference; the question may since have
// left the content bank.
type Attempt struct {
	ID               int64  `db:"id"`
	QuestionID       string `db:"question_id"`
	IsCorrect        bool   `db:"is_correct"`
	SelectedAnswer   int    `db:"selected_answer"`
	TimestampUnix    int64  `db:"timestamp"`
	TimeTakenSeconds int    `db:"time_taken_seconds"`
}

// Timestamp returns the attempt time.
func (a *Attempt) Timestamp() time.Time {
	return time.Unix(a.TimestampUnix, 0)
}

// AttemptRepo provides append and read access to the attempt log.
type AttemptRepo struct {
	db *sqlx.DB
}

// Append writes a new attempt and fills in its assigned id. Attempts are
// never updated afterwards.
func (r *AttemptRepo) Append(ctx context.Context, a *Attempt) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (question_id, is_correct, selected_answer, timestamp, time_taken_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		a.QuestionID, a.IsCorrect, a.SelectedAnswer, a.TimestampUnix, a.TimeTakenSeconds)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("attempt id: %w", err)
	}
	a.ID = id
	return nil
}

// All returns the full attempt log in insertion order.
func (r *AttemptRepo) All(ctx context.Context) ([]Attempt, error) {
	var as []Attempt
	err := r.db.SelectContext(ctx, &as, `SELECT * FROM attempts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return as, nil
}

// IncorrectQuestionIDs returns the distinct ids of questions with at least
// one incorrect attempt, most recently missed first. Ids may be dangling.
func (r *AttemptRepo) IncorrectQuestionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT question_id FROM attempts
		 WHERE is_correct = 0
		 GROUP BY question_id
		 ORDER BY MAX(id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("list incorrect question ids: %w", err)
	}
	return ids, nil
}

// Totals returns the lifetime answered and correct counts.
func (r *AttemptRepo) Totals(ctx context.Context) (answered, correct int, err error) {
	row := struct {
		Answered int `db:"answered"`
		Correct  int `db:"correct"`
	}{}
	err = r.db.GetContext(ctx, &row,
		`SELECT COUNT(*) AS answered, COALESCE(SUM(is_correct), 0) AS correct FROM attempts`)
	if err != nil {
		return 0, 0, fmt.Errorf("attempt totals: %w", err)
	}
	return row.Answered, row.Correct, nil
}
