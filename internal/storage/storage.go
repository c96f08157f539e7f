// Package storage defines the persistence boundaries of a dungeon run: the
// course-progress store written on completion and the run history.
package storage

import (
	"context"
	"sync"
	"time"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// RunRecord summarises one finished run.
type RunRecord struct {
	Topic           string    `json:"topic"`
	Outcome         Outcome   `json:"outcome"`
	Intensity       int       `json:"intensity"`
	EnemiesDefeated int       `json:"enemies_defeated"`
	TotalScore      int       `json:"total_score"`
	CorrectAnswers  int       `json:"correct_answers"`
	WrongAnswers    int       `json:"wrong_answers"`
	ComboScore      int       `json:"combo_score"`
	FinishedAt      time.Time `json:"finished_at"`
}

// CourseStore records which course topics have been completed.
type CourseStore interface {
	SetCourseCompleted(ctx context.Context, topic string, done bool) error
	CourseCompleted(ctx context.Context, topic string) (bool, error)
}

// RunRecorder persists finished runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, rec RunRecord) error
}

// Memory is an in-process CourseStore and RunRecorder.
type Memory struct {
	mu      sync.Mutex
	courses map[string]bool
	runs    []RunRecord
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{courses: make(map[string]bool)}
}

func (m *Memory) SetCourseCompleted(ctx context.Context, topic string, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[topic] = done
	return nil
}

func (m *Memory) CourseCompleted(ctx context.Context, topic string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.courses[topic], nil
}

func (m *Memory) RecordRun(ctx context.Context, rec RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, rec)
	return nil
}

// Runs returns a copy of the recorded runs.
func (m *Memory) Runs() []RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RunRecord, len(m.runs))
	copy(out, m.runs)
	return out
}
