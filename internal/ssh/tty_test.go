package ssh

import (
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements just enough of gossh.Session for the Tty.
type fakeSession struct {
	gossh.Session
	written []byte
	closed  bool
}

func (f *fakeSession) Write(b []byte) (int, error) {
	f.written = append(f.written, b...)
	return len(b), nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func TestTtyWindowSizeAndResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewTty(&fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("WindowSize = %+v, %v", ws, err)
	}

	called := make(chan struct{}, 1)
	tty.NotifyResize(func() { called <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("after resize = %+v", ws)
	}
	close(winCh)
}

func TestTtyPassesThrough(t *testing.T) {
	s := &fakeSession{}
	tty := NewTty(s, gossh.Pty{}, nil)
	if n, err := tty.Write([]byte("hi")); n != 2 || err != nil {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if string(s.written) != "hi" {
		t.Errorf("written = %q", s.written)
	}
	if err := tty.Close(); err != nil || !s.closed {
		t.Error("Close not forwarded")
	}
	for _, fn := range []func() error{tty.Start, tty.Stop, tty.Drain} {
		if err := fn(); err != nil {
			t.Error(err)
		}
	}
}

func TestNewScreenRequiresPty(t *testing.T) {
	if _, err := NewScreen(noPty{&fakeSession{}}, ""); err == nil {
		t.Error("expected an error without a pty")
	}
}

type noPty struct{ *fakeSession }

func (noPty) Pty() (gossh.Pty, <-chan gossh.Window, bool) { return gossh.Pty{}, nil, false }
