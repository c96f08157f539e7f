// quiz-dungeon-server serves the dungeon over SSH. Every connection gets an
// independent run; course progress and run history are shared through one
// SQLite database. Build:
//
//	go build -o quiz-dungeon-server ./cmd/server
//
// Usage:
//
//	./quiz-dungeon-server [--port 2222] [--key server_host_key] [--db quiz-dungeon.db]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"quiz-dungeon/internal/config"
	"quiz-dungeon/internal/game"
	internalssh "quiz-dungeon/internal/ssh"
	"quiz-dungeon/internal/storage"
	"quiz-dungeon/internal/storage/sqlite"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds the display name taken from the SSH user.
const maxNameBytes = 16

// allowedTerms lists the TERM values accepted from clients. Anything else
// falls back to the default so a client cannot point terminfo at an
// arbitrary name.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.SSHPort, "SSH server port")
	keyFile := flag.String("key", cfg.SSHHostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	recorder := storage.MultiRecorder{store, storage.RunLog{Logger: logger}}
	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, store, recorder, logger)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone who can reach the port may play.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("quiz-dungeon SSH server listening", "port", *port, "db", *dbPath)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}

// handleSession runs one player's dungeon for the lifetime of the
// connection.
func handleSession(s gossh.Session, cfg config.Config, store *sqlite.Store, runs storage.RunRecorder, logger *slog.Logger) {
	if _, _, ok := s.Pty(); !ok {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	name := sanitizeName(s.User())
	if name == "" {
		name = "adventurer"
	}
	log := logger.With("player", name, "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s, sessionTerm(s.Environ()))
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.Warn("screen setup", "error", err)
		return
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx := s.Context()
	topic, ok := game.SelectTopic(ctx, screen, store)
	if !ok {
		return
	}
	log.Info("run started", "topic", topic)
	g, err := game.New(ctx, game.Options{
		Screen:  screen,
		Config:  cfg,
		Topic:   topic,
		Courses: store,
		Runs:    runs,
		Logger:  log,
	})
	if err != nil {
		log.Warn("new game", "error", err)
		return
	}
	if err := g.Run(ctx); err != nil {
		log.Debug("session ended", "error", err)
	}
}

// sessionTerm picks TERM from the client environment if it is allowed.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return internalssh.DefaultTerm
}

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best-effort; the key still works for this process.
	if block, err := xssh.MarshalPrivateKey(key, "quiz-dungeon server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn("persist host key", "path", path, "error", err)
		}
	}
	return signer, nil
}
