package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// singletonID is the well-known key of the one profile row per device.
// The CHECK constraint on the table makes the singleton explicit rather
// than an accident of auto-increment.
const singletonID = 1

// Profile is the singleton learner record. Level holds only the placement
// calibration (0 = placement not taken); the XP level is always derived
// from TotalXP and never stored.
type Profile struct {
	ID                     int     `db:"id"`
	TargetDate             string  `db:"target_date"` // ISO date, exam day
	GoalScore              int     `db:"goal_score"`
	CurrentStreak          int     `db:"current_streak"`
	BestStreak             int     `db:"best_streak"`
	QuestionsMastered      int     `db:"questions_mastered"`
	TotalQuestionsAnswered int     `db:"total_questions_answered"`
	Accuracy               float64 `db:"accuracy"` // 0.0 - 1.0
	Level                  int     `db:"level"`
	TotalXP                int     `db:"total_xp"`
	LastActivityUnix       int64   `db:"last_activity"` // 0 = never
}

// LastActivity returns the last-activity time, or nil if none recorded.
func (p *Profile) LastActivity() *time.Time {
	if p.LastActivityUnix == 0 {
		return nil
	}
	t := time.Unix(p.LastActivityUnix, 0)
	return &t
}

// ProfileUpdate is a partial field set merged onto the profile row.
// Nil fields are left untouched.
type ProfileUpdate struct {
	TargetDate             *string
	GoalScore              *int
	CurrentStreak          *int
	BestStreak             *int
	QuestionsMastered      *int
	TotalQuestionsAnswered *int
	Accuracy               *float64
	Level                  *int
	TotalXP                *int
	LastActivityUnix       *int64
}

// ProfileRepo manages the singleton profile row.
type ProfileRepo struct {
	db *sqlx.DB
}

// Get returns the profile, or nil if it was never initialized.
func (r *ProfileRepo) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `SELECT * FROM profile WHERE id = ?`, singletonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Init creates the profile row if it does not exist yet.
func (r *ProfileRepo) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO profile (id) VALUES (?)`, singletonID)
	if err != nil {
		return fmt.Errorf("init profile: %w", err)
	}
	return nil
}

// Update merges the non-nil fields of u onto the profile row. The row is
// created first if needed.
func (r *ProfileRepo) Update(ctx context.Context, u ProfileUpdate) error {
	if err := r.Init(ctx); err != nil {
		return err
	}

	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if u.TargetDate != nil {
		add("target_date", *u.TargetDate)
	}
	if u.GoalScore != nil {
		add("goal_score", *u.GoalScore)
	}
	if u.CurrentStreak != nil {
		add("current_streak", *u.CurrentStreak)
	}
	if u.BestStreak != nil {
		add("best_streak", *u.BestStreak)
	}
	if u.QuestionsMastered != nil {
		add("questions_mastered", *u.QuestionsMastered)
	}
	if u.TotalQuestionsAnswered != nil {
		add("total_questions_answered", *u.TotalQuestionsAnswered)
	}
	if u.Accuracy != nil {
		add("accuracy", *u.Accuracy)
	}
	if u.Level != nil {
		add("level", *u.Level)
	}
	if u.TotalXP != nil {
		add("total_xp", *u.TotalXP)
	}
	if u.LastActivityUnix != nil {
		add("last_activity", *u.LastActivityUnix)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, singletonID)
	_, err := r.db.ExecContext(ctx,
		`UPDATE profile SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
