package buttons

import (
	"testing"

	"github.com/warthog618/go-gpiocdev"

	"github.com/leecorbin/MatrixOS/internal/devices"
)

// TestHandlerQueuesPresses verifies falling edges become events and
// rising edges are ignored
func TestHandlerQueuesPresses(t *testing.T) {
	in := NewWithPins(DefaultChip, map[int]devices.Key{19: devices.KeyUp})
	press := in.handler(19, devices.KeyUp)

	press(gpiocdev.LineEvent{Offset: 19, Type: gpiocdev.LineEventFallingEdge})
	press(gpiocdev.LineEvent{Offset: 19, Type: gpiocdev.LineEventRisingEdge})
	press(gpiocdev.LineEvent{Offset: 19, Type: gpiocdev.LineEventFallingEdge})

	events := in.Poll()
	if len(events) != 2 {
		t.Fatalf("Poll() returned %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Key != devices.KeyUp {
			t.Errorf("event key = %q, want UP", ev.Key)
		}
		if ev.Raw != "gpio-19" {
			t.Errorf("event raw = %q, want gpio-19", ev.Raw)
		}
	}

	if got := in.Poll(); len(got) != 0 {
		t.Errorf("second Poll() returned %d events, want 0", len(got))
	}
}

// TestBacklogCap verifies the pending queue drops oldest presses
func TestBacklogCap(t *testing.T) {
	in := NewWithPins(DefaultChip, map[int]devices.Key{7: devices.KeyRight})
	press := in.handler(7, devices.KeyRight)
	for n := 0; n < eventBacklog+5; n++ {
		press(gpiocdev.LineEvent{Offset: 7, Type: gpiocdev.LineEventFallingEdge})
	}
	if events := in.Poll(); len(events) != eventBacklog {
		t.Errorf("Poll() returned %d events, want %d", len(events), eventBacklog)
	}
}

// TestConfigure overrides the default wiring
func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(nil) })

	Configure(map[string]int{"CONFIRM": 14, "HOME": 15})
	pins := currentPins()
	if len(pins) != 2 {
		t.Fatalf("currentPins() has %d entries, want 2", len(pins))
	}
	if pins[14] != devices.KeyConfirm || pins[15] != devices.KeyHome {
		t.Errorf("currentPins() = %v, want CONFIRM on 14 and HOME on 15", pins)
	}

	Configure(nil)
	if got := currentPins(); len(got) != len(DefaultPins()) {
		t.Errorf("after reset currentPins() has %d entries, want defaults", len(got))
	}
}

// TestCleanupBeforeInitialize must be a safe no-op
func TestCleanupBeforeInitialize(t *testing.T) {
	in := New()
	in.Cleanup()
	in.Cleanup()
	if events := in.Poll(); len(events) != 0 {
		t.Errorf("Poll() = %v, want none", events)
	}
}
