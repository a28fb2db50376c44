package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Options is a JSON-encoded list of answer choices.
type Options []string

// Value implements driver.Valuer.
func (o Options) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (o *Options) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), o)
	case []byte:
		return json.Unmarshal(v, o)
	default:
		return fmt.Errorf("scan options: unsupported type %T", src)
	}
}

// Question is one entry of the content bank. Content fields are immutable
// after seeding; only difficulty, srs_interval and next_review change, and
// only through the difficulty adapter and the scheduler.
type Question struct {
	ID           string  `db:"id"`
	Topic        string  `db:"topic"`
	Subtopic     string  `db:"subtopic"`
	Difficulty   float64 `db:"difficulty"`
	Content      string  `db:"content"`
	Options      Options `db:"options"`
	CorrectIndex int     `db:"correct_index"`
	Explanation  string  `db:"explanation"`
	Hint         string  `db:"hint"`
	Passage      string  `db:"passage"`

	// SRSInterval is the current review interval in days; 0 means the
	// question has never been successfully reviewed.
	SRSInterval int `db:"srs_interval"`
	// NextReviewUnix is the next-eligible review time in epoch seconds;
	// 0 means unset.
	NextReviewUnix int64 `db:"next_review"`
}

// NextReview returns the next-review time, or the zero time if unset.
func (q *Question) NextReview() time.Time {
	if q.NextReviewUnix == 0 {
		return time.Time{}
	}
	return time.Unix(q.NextReviewUnix, 0)
}

// DifficultyBand returns the integer authoring band used for XP rewards.
func (q *Question) DifficultyBand() int {
	return int(q.Difficulty + 0.5)
}

// QuestionRepo provides access to the question bank.
type QuestionRepo struct {
	db *sqlx.DB
}

// Get returns the question with the given id, or ErrNotFound.
func (r *QuestionRepo) Get(ctx context.Context, id string) (*Question, error) {
	var q Question
	err := r.db.GetContext(ctx, &q, `SELECT * FROM questions WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get question %s: %w", id, err)
	}
	return &q, nil
}

// All returns every question ordered by id.
func (r *QuestionRepo) All(ctx context.Context) ([]Question, error) {
	var qs []Question
	err := r.db.SelectContext(ctx, &qs, `SELECT * FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return qs, nil
}

// ByTopic returns every question with the given topic, ordered by id.
// The match is case-insensitive.
func (r *QuestionRepo) ByTopic(ctx context.Context, topic string) ([]Question, error) {
	var qs []Question
	err := r.db.SelectContext(ctx, &qs,
		`SELECT * FROM questions WHERE topic = ? COLLATE NOCASE ORDER BY id`, topic)
	if err != nil {
		return nil, fmt.Errorf("list questions by topic %s: %w", topic, err)
	}
	return qs, nil
}

// Due returns up to limit questions eligible for review at now: either the
// next-review time has passed, or the question has never been successfully
// reviewed (interval 0). Ordering is by id, so repeated calls over one
// snapshot return the same set.
func (r *QuestionRepo) Due(ctx context.Context, now time.Time, limit int) ([]Question, error) {
	var qs []Question
	err := r.db.SelectContext(ctx, &qs,
		`SELECT * FROM questions
		 WHERE (next_review != 0 AND next_review <= ?) OR srs_interval = 0
		 ORDER BY id
		 LIMIT ?`, now.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("list due questions: %w", err)
	}
	return qs, nil
}

// Count returns the number of questions in the bank.
func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// BulkInsert adds questions inside one transaction. Used only by content
// seeding on an empty bank.
func (r *QuestionRepo) BulkInsert(ctx context.Context, qs []Question) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}

	const stmt = `INSERT INTO questions
		(id, topic, subtopic, difficulty, content, options, correct_index,
		 explanation, hint, passage, srs_interval, next_review)
		VALUES (:id, :topic, :subtopic, :difficulty, :content, :options,
		 :correct_index, :explanation, :hint, :passage, :srs_interval, :next_review)`

	for i := range qs {
		if _, err := tx.NamedExecContext(ctx, stmt, &qs[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert question %s: %w", qs[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// UpdateSchedule persists the scheduler's mutation of a question.
// Returns ErrNotFound if the question vanished; callers skip.
func (r *QuestionRepo) UpdateSchedule(ctx context.Context, id string, interval int, nextReview time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET srs_interval = ?, next_review = ? WHERE id = ?`,
		interval, nextReview.Unix(), id)
	if err != nil {
		return fmt.Errorf("update schedule %s: %w", id, err)
	}
	return checkFound(res, id)
}

// UpdateDifficulty persists the difficulty adapter's mutation of a
// question. Returns ErrNotFound if the question vanished; callers skip.
func (r *QuestionRepo) UpdateDifficulty(ctx context.Context, id string, difficulty float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET difficulty = ? WHERE id = ?`, difficulty, id)
	if err != nil {
		return fmt.Errorf("update difficulty %s: %w", id, err)
	}
	return checkFound(res, id)
}

func checkFound(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
