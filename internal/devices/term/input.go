package term

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/leecorbin/MatrixOS/internal/devices"
)

// Input reads keyboard events from the shared terminal screen
type Input struct {
	sess *session
}

// NewInput creates an uninitialized terminal input driver
func NewInput() *Input {
	return &Input{}
}

// Initialize attaches to the terminal screen, opening it if no
// terminal display driver has done so yet
func (i *Input) Initialize() bool {
	if i.sess != nil {
		log.Printf("[term] input Initialize called twice")
		return false
	}
	sess, err := acquire()
	if err != nil {
		log.Printf("[term] failed to open terminal screen: %v", err)
		return false
	}
	i.sess = sess
	return true
}

// Poll drains pending terminal events without blocking and returns
// them translated to the symbolic key model, in arrival order
func (i *Input) Poll() []devices.Event {
	s := i.sess
	if s == nil {
		return nil
	}
	var events []devices.Event
	for {
		select {
		case ev := <-s.events:
			if e, ok := translate(ev); ok {
				events = append(events, e)
			}
		default:
			return events
		}
	}
}

// Cleanup releases the terminal screen reference
func (i *Input) Cleanup() {
	release(i.sess)
	i.sess = nil
}

// translate converts one tcell event to a normalized Event. Non-key
// events (resize, paste, ...) are dropped.
func translate(ev tcell.Event) (devices.Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return devices.Event{}, false
	}

	raw := key.Name()
	switch key.Key() {
	case tcell.KeyUp:
		return devices.Event{Key: devices.KeyUp, Raw: raw}, true
	case tcell.KeyDown:
		return devices.Event{Key: devices.KeyDown, Raw: raw}, true
	case tcell.KeyLeft:
		return devices.Event{Key: devices.KeyLeft, Raw: raw}, true
	case tcell.KeyRight:
		return devices.Event{Key: devices.KeyRight, Raw: raw}, true
	case tcell.KeyEnter:
		return devices.Event{Key: devices.KeyConfirm, Raw: raw}, true
	case tcell.KeyEscape:
		return devices.Event{Key: devices.KeyHome, Raw: raw}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return devices.Event{Key: devices.KeyBack, Raw: raw}, true
	case tcell.KeyCtrlC:
		// Ctrl+C is an unrecoverable stop request in raw terminal
		// mode, same as a window close.
		return devices.Event{Key: devices.KeyQuit, Raw: raw}, true
	case tcell.KeyRune:
		return devices.Event{Key: devices.Key(string(key.Rune())), Raw: raw}, true
	}
	return devices.Event{}, false
}

func init() {
	devices.RegisterInput(devices.InputInfo{
		Name:      "Terminal Keyboard (tcell)",
		Priority:  10,
		Class:     devices.ClassKeyboard,
		Available: Available,
		New: func() (devices.InputDriver, error) {
			return NewInput(), nil
		},
	})
}
