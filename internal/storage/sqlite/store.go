// Package sqlite provides SQLite-backed course progress and run history.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-dungeon/internal/storage"

	_ "modernc.org/sqlite"
)

// Store implements storage.CourseStore and storage.RunRecorder.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := createSchemas(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS course_progress (
			topic TEXT PRIMARY KEY,
			completed BOOLEAN NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			outcome TEXT NOT NULL,
			intensity INTEGER NOT NULL,
			enemies_defeated INTEGER NOT NULL,
			total_score INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			wrong_answers INTEGER NOT NULL,
			combo_score INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_topic ON runs(topic);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SetCourseCompleted upserts the completion flag for topic.
func (s *Store) SetCourseCompleted(ctx context.Context, topic string, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO course_progress (topic, completed, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(topic) DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at`,
		topic, done, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set course %q completed: %w", topic, err)
	}
	return nil
}

// CourseCompleted reports the stored flag; unknown topics are not completed.
func (s *Store) CourseCompleted(ctx context.Context, topic string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	var done bool
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT completed FROM course_progress WHERE topic = ?`, strings.TrimSpace(topic)).Scan(&done)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get course %q: %w", topic, err)
	}
	return done, nil
}

// RecordRun appends one finished run.
func (s *Store) RecordRun(ctx context.Context, rec storage.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (
	topic,
	outcome,
	intensity,
	enemies_defeated,
	total_score,
	correct_answers,
	wrong_answers,
	combo_score,
	finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Topic,
		string(rec.Outcome),
		rec.Intensity,
		rec.EnemiesDefeated,
		rec.TotalScore,
		rec.CorrectAnswers,
		rec.WrongAnswers,
		rec.ComboScore,
		rec.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]storage.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT topic, outcome, intensity, enemies_defeated, total_score,
	correct_answers, wrong_answers, combo_score, finished_at
FROM runs
ORDER BY id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []storage.RunRecord
	for rows.Next() {
		var rec storage.RunRecord
		var outcome string
		if err := rows.Scan(&rec.Topic, &outcome, &rec.Intensity, &rec.EnemiesDefeated, &rec.TotalScore,
			&rec.CorrectAnswers, &rec.WrongAnswers, &rec.ComboScore, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Outcome = storage.Outcome(outcome)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
