package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// RunLog appends finished runs as JSON lines to runs.jsonl in the data
// directory. Failures are logged and never returned, so a disk problem
// never ends a game.
type RunLog struct {
	Logger *slog.Logger
}

func (l RunLog) RecordRun(_ context.Context, rec RunRecord) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := RunLogDir()
	if err != nil {
		logger.Warn("run log: cannot determine data dir", "error", err)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return nil
	}
	defer f.Close()
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return nil
	}
	f.Write(append(data, '\n')) //nolint:errcheck
	return nil
}

// RunLogDir follows the XDG base directory layout:
// $XDG_DATA_HOME/quiz-dungeon, defaulting to ~/.local/share/quiz-dungeon.
func RunLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quiz-dungeon"), nil
}

// MultiRecorder fans a record out to every recorder, returning the first
// error after all have been tried.
type MultiRecorder []RunRecorder

func (m MultiRecorder) RecordRun(ctx context.Context, rec RunRecord) error {
	var first error
	for _, r := range m {
		if err := r.RecordRun(ctx, rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}
