// Package term implements the universal terminal fallback backend:
// the matrix is rendered as colored cells in the controlling terminal
// and keyboard input comes from the same screen.
//
// The tcell screen is shared terminal-wide state. The display and
// input drivers reference-count one session so either can run alone,
// and the screen is torn down when the last user cleans up.
package term

import (
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// eventBacklog caps buffered terminal events when nothing drains them
const eventBacklog = 64

type session struct {
	screen tcell.Screen
	events chan tcell.Event
	refs   int
}

var (
	sessionMu sync.Mutex
	current   *session
)

// newScreen is swapped for a simulation screen in tests
var newScreen = func() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// acquire returns the shared screen session, creating it on first use
func acquire() (*session, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if current != nil {
		current.refs++
		return current, nil
	}

	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	s := &session{
		screen: screen,
		events: make(chan tcell.Event, eventBacklog),
		refs:   1,
	}
	go s.pump()
	current = s
	return s, nil
}

// release drops one reference and closes the screen when none remain
func release(s *session) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if s == nil || current != s {
		return
	}
	s.refs--
	if s.refs <= 0 {
		s.screen.Fini()
		current = nil
	}
}

// pump routes terminal events into the session channel until the
// screen is closed. Events are dropped, not blocked on, when the
// buffer is full and no input driver is attached.
func (s *session) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// Available reports whether a usable interactive terminal is attached
func Available() bool {
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
