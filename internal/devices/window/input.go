package window

import (
	"log"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/leecorbin/MatrixOS/internal/devices"
)

// controlKeys maps the window backend's native control keys to
// symbolic keys. Character input arrives separately through the text
// input path and is passed through as-is.
var controlKeys = map[ebiten.Key]devices.Key{
	ebiten.KeyArrowUp:    devices.KeyUp,
	ebiten.KeyArrowDown:  devices.KeyDown,
	ebiten.KeyArrowLeft:  devices.KeyLeft,
	ebiten.KeyArrowRight: devices.KeyRight,
	ebiten.KeyEnter:      devices.KeyConfirm,
	ebiten.KeyKPEnter:    devices.KeyConfirm,
	ebiten.KeyEscape:     devices.KeyHome,
	ebiten.KeyBackspace:  devices.KeyBack,
}

// Input reads keyboard events from the active window session
type Input struct {
	sess *session
}

// NewInput creates an uninitialized window input driver
func NewInput() *Input {
	return &Input{}
}

// Initialize attaches to the active window. It fails when no window
// display driver owns the process-wide session, since the window is
// the only source of these events.
func (i *Input) Initialize() bool {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if active == nil {
		log.Printf("[window] keyboard input requires an active window display")
		return false
	}
	i.sess = active
	return true
}

// Poll drains pending raw window events and returns them translated to
// the symbolic key model, in arrival order
func (i *Input) Poll() []devices.Event {
	s := i.sess
	if s == nil {
		return nil
	}
	s.mu.Lock()
	raw := s.raw
	s.raw = nil
	s.mu.Unlock()

	var events []devices.Event
	for _, r := range raw {
		if ev, ok := translate(r); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Cleanup detaches from the window session; the session itself belongs
// to the display driver
func (i *Input) Cleanup() {
	i.sess = nil
}

// translate converts one raw window event to a normalized Event. The
// raw payload keeps the native identifier for diagnostics.
func translate(r rawEvent) (devices.Event, bool) {
	switch r.kind {
	case rawClose:
		return devices.Event{Key: devices.KeyQuit, Raw: "window-close"}, true
	case rawKey:
		key, ok := controlKeys[r.key]
		if !ok {
			return devices.Event{}, false
		}
		return devices.Event{Key: key, Raw: r.key.String()}, true
	case rawChar:
		if !unicode.IsPrint(r.ch) {
			return devices.Event{}, false
		}
		return devices.Event{Key: devices.Key(string(r.ch)), Raw: string(r.ch)}, true
	}
	return devices.Event{}, false
}
