package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/leecorbin/MatrixOS/internal/devices"
)

// TestTranslate maps tcell key events to symbolic keys
func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		ev      tcell.Event
		want    devices.Key
		dropped bool
	}{
		{name: "up", ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), want: devices.KeyUp},
		{name: "down", ev: tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), want: devices.KeyDown},
		{name: "left", ev: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), want: devices.KeyLeft},
		{name: "right", ev: tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), want: devices.KeyRight},
		{name: "enter confirms", ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: devices.KeyConfirm},
		{name: "escape is home", ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), want: devices.KeyHome},
		{name: "backspace is back", ev: tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), want: devices.KeyBack},
		{name: "backspace2 is back", ev: tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), want: devices.KeyBack},
		{name: "ctrl-c is quit", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), want: devices.KeyQuit},
		{name: "lowercase rune", ev: tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), want: devices.Key("c")},
		{name: "uppercase rune", ev: tcell.NewEventKey(tcell.KeyRune, 'C', tcell.ModNone), want: devices.Key("C")},
		{name: "function key dropped", ev: tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), dropped: true},
		{name: "resize dropped", ev: tcell.NewEventResize(80, 24), dropped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := translate(tt.ev)
			if ok == tt.dropped {
				t.Fatalf("translate() ok = %v, dropped %v", ok, tt.dropped)
			}
			if !tt.dropped {
				if ev.Key != tt.want {
					t.Errorf("translate() key = %q, want %q", ev.Key, tt.want)
				}
				if ev.Raw == "" {
					t.Error("translate() left Raw empty")
				}
			}
		})
	}
}

// TestPollDrainsChannel verifies Poll empties pending events in order
// without blocking
func TestPollDrainsChannel(t *testing.T) {
	s := &session{events: make(chan tcell.Event, eventBacklog)}
	s.events <- tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	s.events <- tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.events <- tcell.NewEventResize(80, 24)
	s.events <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

	in := &Input{sess: s}
	events := in.Poll()
	want := []devices.Key{devices.KeyUp, "x", devices.KeyConfirm}
	if len(events) != len(want) {
		t.Fatalf("Poll() returned %d events, want %d", len(events), len(want))
	}
	for i, k := range want {
		if events[i].Key != k {
			t.Errorf("events[%d].Key = %q, want %q", i, events[i].Key, k)
		}
	}

	if got := in.Poll(); len(got) != 0 {
		t.Errorf("Poll() with nothing pending returned %d events, want 0", len(got))
	}
}

// TestPollUninitialized: an unattached input driver reports nothing
func TestPollUninitialized(t *testing.T) {
	in := NewInput()
	if events := in.Poll(); events != nil {
		t.Errorf("Poll() = %v, want nil", events)
	}
	in.Cleanup() // must not panic pre-initialization
}
