package devices

import "time"

// Key is the normalized, backend-independent identifier for an input
// event. Navigation and action keys use the symbolic constants below;
// plain character input is passed through as the character itself,
// e.g. Key("c").
type Key string

const (
	KeyUp    Key = "UP"
	KeyDown  Key = "DOWN"
	KeyLeft  Key = "LEFT"
	KeyRight Key = "RIGHT"

	// KeyConfirm is the select/launch action (Enter)
	KeyConfirm Key = "CONFIRM"

	// KeyBack is the delete/previous action (Backspace)
	KeyBack Key = "BACK"

	// KeyHome is the escape-to-menu action (ESC)
	KeyHome Key = "HOME"

	// KeyQuit signals an unrecoverable request to stop the input
	// loop, such as a window-close. Drivers surface it promptly
	// rather than buffering it behind other events.
	KeyQuit Key = "QUIT"
)

// Event is one normalized input occurrence. Events are immutable and
// consumed once by the caller.
type Event struct {
	// Key is the symbolic key for this event
	Key Key

	// Raw is the backend-specific payload the event was translated
	// from. It is opaque and for diagnostics only; consumers must
	// never interpret it.
	Raw string
}

// Equal reports whether two events are interchangeable. Equality is by
// symbolic key only; raw payloads are ignored.
func (e Event) Equal(other Event) bool {
	return e.Key == other.Key
}

// pollInterval is the backoff between polls in WaitEvents
const pollInterval = 10 * time.Millisecond

// WaitEvents blocks until drv reports at least one event or the
// timeout elapses, then returns the pending batch in arrival order.
// This is a convenience layered on top of Poll; the InputDriver
// contract itself never blocks.
func WaitEvents(drv InputDriver, timeout time.Duration) []Event {
	deadline := time.Now().Add(timeout)
	for {
		if events := drv.Poll(); len(events) > 0 {
			return events
		}
		if !time.Now().Before(deadline) {
			return nil
		}
		time.Sleep(pollInterval)
	}
}
