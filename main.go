// quiz-dungeon runs a single dungeon in the local terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"quiz-dungeon/internal/config"
	"quiz-dungeon/internal/game"
	"quiz-dungeon/internal/storage"
	"quiz-dungeon/internal/storage/sqlite"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The screen owns stdout, so logs go to a file next to the run log.
	logOut, closeLog := openLog()
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	topic, ok := game.SelectTopic(ctx, screen, store)
	if !ok {
		return nil
	}
	g, err := game.New(ctx, game.Options{
		Screen:  screen,
		Config:  cfg,
		Topic:   topic,
		Courses: store,
		Runs:    storage.MultiRecorder{store, storage.RunLog{Logger: logger}},
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func openLog() (io.Writer, func()) {
	dir, err := storage.RunLogDir()
	if err != nil {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "quiz-dungeon.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
