// Package ssh adapts gliderlabs SSH sessions into tcell screens so every
// connection gets its own terminal front end.
package ssh

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client sends no usable TERM.
const DefaultTerm = "xterm-256color"

// Tty implements tcell.Tty on top of one SSH session.
type Tty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	cb      func()
}

// NewTty wraps s. pty carries the initial window size; winCh delivers
// later resizes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, window: pty.Window, winCh: winCh}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel is opened and flushed by
// the SSH server.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the last reported terminal size.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts draining the window-change channel
// for the lifetime of the session.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			fn := t.cb
			t.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}()
}

// termMu serialises the TERM environment swap terminfo lookup depends on.
var termMu sync.Mutex

// NewScreen builds and initialises a tcell screen for an interactive
// session. The session must have requested a PTY.
func NewScreen(s gossh.Session, term string) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, fmt.Errorf("session has no pty")
	}
	if term == "" {
		term = DefaultTerm
	}
	tty := NewTty(s, pty, winCh)

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}
