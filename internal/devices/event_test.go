package devices

import (
	"testing"
	"time"
)

// TestEventEqual: equality is by symbolic key only, raw payloads are
// ignored
func TestEventEqual(t *testing.T) {
	tests := []struct {
		name string
		a    Event
		b    Event
		want bool
	}{
		{name: "same key same raw", a: Event{Key: KeyUp, Raw: "38"}, b: Event{Key: KeyUp, Raw: "38"}, want: true},
		{name: "same key different raw", a: Event{Key: KeyHome, Raw: "esc"}, b: Event{Key: KeyHome, Raw: "27"}, want: true},
		{name: "different keys", a: Event{Key: KeyUp}, b: Event{Key: KeyDown}, want: false},
		{name: "character keys", a: Event{Key: "c", Raw: "c"}, b: Event{Key: "c", Raw: "KeyC"}, want: true},
		{name: "case-sensitive characters", a: Event{Key: "c"}, b: Event{Key: "C"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestPollOrder: events come back in arrival order
func TestPollOrder(t *testing.T) {
	drv := &fakeInput{
		initOK: true,
		pending: []Event{
			{Key: KeyUp, Raw: "first"},
			{Key: KeyConfirm, Raw: "second"},
		},
	}

	events := drv.Poll()
	if len(events) != 2 {
		t.Fatalf("Poll() returned %d events, want 2", len(events))
	}
	if events[0].Key != KeyUp || events[1].Key != KeyConfirm {
		t.Errorf("Poll() order = %v, %v; want UP, CONFIRM", events[0].Key, events[1].Key)
	}

	if got := drv.Poll(); len(got) != 0 {
		t.Errorf("Poll() with nothing pending returned %d events, want 0", len(got))
	}
}

// TestWaitEvents: the blocking wrapper returns pending events and times
// out empty when nothing arrives
func TestWaitEvents(t *testing.T) {
	drv := &fakeInput{pending: []Event{{Key: KeyQuit}}}
	events := WaitEvents(drv, time.Second)
	if len(events) != 1 || events[0].Key != KeyQuit {
		t.Errorf("WaitEvents() = %v, want one QUIT event", events)
	}

	start := time.Now()
	events = WaitEvents(&fakeInput{}, 30*time.Millisecond)
	if len(events) != 0 {
		t.Errorf("WaitEvents() on idle driver = %v, want none", events)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Error("WaitEvents() returned before the timeout elapsed")
	}
}
