// Package buttons implements a GPIO button pad input backend for
// Raspberry Pi targets: navigation and action keys wired directly to
// GPIO lines, debounced in hardware terms by edge detection.
package buttons

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/leecorbin/MatrixOS/internal/devices"
)

// DefaultChip is the GPIO character device on a Raspberry Pi
const DefaultChip = "gpiochip0"

// eventBacklog caps pending events between polls
const eventBacklog = 64

// DefaultPins maps GPIO line offsets to symbolic keys. The offsets
// avoid the lines the HUB75 bonnet occupies.
func DefaultPins() map[int]devices.Key {
	return map[int]devices.Key{
		19: devices.KeyUp,
		25: devices.KeyDown,
		8:  devices.KeyLeft,
		7:  devices.KeyRight,
		10: devices.KeyConfirm,
		9:  devices.KeyBack,
	}
}

var (
	configMu   sync.Mutex
	configured map[int]devices.Key
)

// Configure overrides the default pin mapping for drivers constructed
// by the registry. Call before driver selection.
func Configure(pins map[string]int) {
	mapping := make(map[int]devices.Key, len(pins))
	for name, offset := range pins {
		mapping[offset] = devices.Key(name)
	}
	configMu.Lock()
	configured = mapping
	configMu.Unlock()
}

func currentPins() map[int]devices.Key {
	configMu.Lock()
	defer configMu.Unlock()
	if len(configured) > 0 {
		return configured
	}
	return DefaultPins()
}

// Input reads button presses from GPIO edge events
type Input struct {
	chip string
	pins map[int]devices.Key

	lines []*gpiocdev.Line

	mu      sync.Mutex
	pending []devices.Event
}

// New creates a button input driver with the configured (or default)
// pin mapping
func New() *Input {
	return NewWithPins(DefaultChip, currentPins())
}

// NewWithPins creates a button input driver with explicit wiring
func NewWithPins(chip string, pins map[int]devices.Key) *Input {
	return &Input{chip: chip, pins: pins}
}

// Initialize requests every button line with falling-edge detection.
// A press pulls the line low against the internal pull-up.
func (i *Input) Initialize() bool {
	if i.lines != nil {
		log.Printf("[buttons] Initialize called twice")
		return false
	}
	for offset, key := range i.pins {
		line, err := gpiocdev.RequestLine(i.chip, offset,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(i.handler(offset, key)))
		if err != nil {
			log.Printf("[buttons] failed to request GPIO line %d: %v", offset, err)
			i.Cleanup()
			return false
		}
		i.lines = append(i.lines, line)
	}
	return true
}

func (i *Input) handler(offset int, key devices.Key) func(gpiocdev.LineEvent) {
	raw := fmt.Sprintf("gpio-%d", offset)
	return func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge {
			return
		}
		i.mu.Lock()
		if len(i.pending) >= eventBacklog {
			i.pending = i.pending[1:]
		}
		i.pending = append(i.pending, devices.Event{Key: key, Raw: raw})
		i.mu.Unlock()
	}
}

// Poll drains button events accumulated since the last call
func (i *Input) Poll() []devices.Event {
	i.mu.Lock()
	events := i.pending
	i.pending = nil
	i.mu.Unlock()
	return events
}

// Cleanup releases the GPIO lines. Idempotent and safe before
// Initialize.
func (i *Input) Cleanup() {
	for _, line := range i.lines {
		if line != nil {
			_ = line.Close()
		}
	}
	i.lines = nil
}

// Available reports whether a GPIO character device is present
func Available() bool {
	_, err := os.Stat("/dev/" + DefaultChip)
	return err == nil
}

func init() {
	devices.RegisterInput(devices.InputInfo{
		Name:      "GPIO Button Pad",
		Platform:  "raspberry-pi",
		Priority:  80,
		Class:     devices.ClassGamepad,
		Available: Available,
		New: func() (devices.InputDriver, error) {
			return New(), nil
		},
	})
}
