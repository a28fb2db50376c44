// Package store provides the local SQLite persistence layer: the question
// bank, the append-only attempt log, and the singleton learner profile.
// It is the single source of truth while offline.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record addressed by id does not exist.
// Callers treat it as "skip", never as a fatal condition.
var ErrNotFound = errors.New("store: not found")

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns the question repository.
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{db: s.db}
}

// Attempts returns the attempt repository.
func (s *Store) Attempts() *AttemptRepo {
	return &AttemptRepo{db: s.db}
}

// Profile returns the profile repository.
func (s *Store) Profile() *ProfileRepo {
	return &ProfileRepo{db: s.db}
}

// Reset deletes every record. Only an explicit user-initiated reset calls
// this; the next run reseeds the question bank.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"attempts", "questions", "profile"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id            TEXT PRIMARY KEY,
	topic         TEXT NOT NULL,
	subtopic      TEXT NOT NULL,
	difficulty    REAL NOT NULL,
	content       TEXT NOT NULL,
	options       TEXT NOT NULL,
	correct_index INTEGER NOT NULL,
	explanation   TEXT NOT NULL DEFAULT '',
	hint          TEXT NOT NULL DEFAULT '',
	passage       TEXT NOT NULL DEFAULT '',
	srs_interval  INTEGER NOT NULL DEFAULT 0,
	next_review   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions (topic);
CREATE INDEX IF NOT EXISTS idx_questions_subtopic ON questions (subtopic);
CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions (difficulty);
CREATE INDEX IF NOT EXISTS idx_questions_next_review ON questions (next_review);

CREATE TABLE IF NOT EXISTS attempts (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	question_id        TEXT NOT NULL,
	is_correct         INTEGER NOT NULL,
	selected_answer    INTEGER NOT NULL,
	timestamp          INTEGER NOT NULL,
	time_taken_seconds INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_attempts_question_id ON attempts (question_id);
CREATE INDEX IF NOT EXISTS idx_attempts_is_correct ON attempts (is_correct);
CREATE INDEX IF NOT EXISTS idx_attempts_timestamp ON attempts (timestamp);

CREATE TABLE IF NOT EXISTS profile (
	id                       INTEGER PRIMARY KEY CHECK (id = 1),
	target_date              TEXT NOT NULL DEFAULT '',
	goal_score               INTEGER NOT NULL DEFAULT 0,
	current_streak           INTEGER NOT NULL DEFAULT 0,
	best_streak              INTEGER NOT NULL DEFAULT 0,
	questions_mastered       INTEGER NOT NULL DEFAULT 0,
	total_questions_answered INTEGER NOT NULL DEFAULT 0,
	accuracy                 REAL NOT NULL DEFAULT 0,
	level                    INTEGER NOT NULL DEFAULT 0,
	total_xp                 INTEGER NOT NULL DEFAULT 0,
	last_activity            INTEGER NOT NULL DEFAULT 0
);
`

func createSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PREPDECK_DB environment variable
// 2. $XDG_DATA_HOME/prepdeck/prepdeck.db
// 3. ~/.local/share/prepdeck/prepdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepdeck", "prepdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
