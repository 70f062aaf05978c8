// Package hub75 implements the Raspberry Pi display backend driving a
// HUB75 RGB LED matrix over the GPIO character device.
package hub75

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// DefaultChip is the GPIO character device on a Raspberry Pi
const DefaultChip = "gpiochip0"

// PinConfig holds the GPIO line offsets for the HUB75 interface
type PinConfig struct {
	R1 int // Red data, upper half
	G1 int // Green data, upper half
	B1 int // Blue data, upper half
	R2 int // Red data, lower half
	G2 int // Green data, lower half
	B2 int // Blue data, lower half

	Clock        int
	Latch        int
	OutputEnable int

	AddrA int
	AddrB int
	AddrC int
	AddrD int
	AddrE int
}

// DefaultPins returns the wiring of the Adafruit RGB Matrix Bonnet
func DefaultPins() PinConfig {
	return PinConfig{
		R1: 5, G1: 13, B1: 6,
		R2: 12, G2: 16, B2: 23,
		Clock: 17, Latch: 21, OutputEnable: 4,
		AddrA: 22, AddrB: 26, AddrC: 27, AddrD: 20, AddrE: 24,
	}
}

// controller owns the requested GPIO lines for one matrix
type controller struct {
	pins  PinConfig
	lines map[int]*gpiocdev.Line
}

// newController requests every HUB75 line as an output. On any failure
// the lines requested so far are released before returning.
func newController(chip string, pins PinConfig) (*controller, error) {
	ctrl := &controller{
		pins:  pins,
		lines: make(map[int]*gpiocdev.Line),
	}

	offsets := []int{
		pins.R1, pins.G1, pins.B1,
		pins.R2, pins.G2, pins.B2,
		pins.Clock, pins.Latch, pins.OutputEnable,
		pins.AddrA, pins.AddrB, pins.AddrC, pins.AddrD, pins.AddrE,
	}
	for _, offset := range offsets {
		line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
		if err != nil {
			ctrl.Close()
			return nil, fmt.Errorf("failed to request GPIO line %d: %w", offset, err)
		}
		ctrl.lines[offset] = line
	}
	return ctrl, nil
}

// Close releases all GPIO lines. Safe to call on a partially built
// controller.
func (c *controller) Close() {
	for _, line := range c.lines {
		if line != nil {
			_ = line.Close()
		}
	}
	c.lines = make(map[int]*gpiocdev.Line)
}

func (c *controller) set(offset, value int) error {
	line, ok := c.lines[offset]
	if !ok {
		return nil
	}
	return line.SetValue(value)
}

// scanRow clocks one addressable row out to the panel. data holds six
// bit-bytes per column: R1 G1 B1 R2 G2 B2.
func (c *controller) scanRow(row int, data []byte) error {
	// Address bits select the row pair.
	addr := row & 0x1F
	if err := c.set(c.pins.AddrA, (addr>>0)&1); err != nil {
		return err
	}
	if err := c.set(c.pins.AddrB, (addr>>1)&1); err != nil {
		return err
	}
	if err := c.set(c.pins.AddrC, (addr>>2)&1); err != nil {
		return err
	}
	if err := c.set(c.pins.AddrD, (addr>>3)&1); err != nil {
		return err
	}
	if err := c.set(c.pins.AddrE, (addr>>4)&1); err != nil {
		return err
	}

	// Blank the output while shifting in new data.
	if err := c.set(c.pins.OutputEnable, 1); err != nil {
		return err
	}

	for col := 0; col*6+5 < len(data); col++ {
		idx := col * 6
		if err := c.set(c.pins.R1, int(data[idx+0])); err != nil {
			return err
		}
		if err := c.set(c.pins.G1, int(data[idx+1])); err != nil {
			return err
		}
		if err := c.set(c.pins.B1, int(data[idx+2])); err != nil {
			return err
		}
		if err := c.set(c.pins.R2, int(data[idx+3])); err != nil {
			return err
		}
		if err := c.set(c.pins.G2, int(data[idx+4])); err != nil {
			return err
		}
		if err := c.set(c.pins.B2, int(data[idx+5])); err != nil {
			return err
		}
		if err := c.set(c.pins.Clock, 1); err != nil {
			return err
		}
		if err := c.set(c.pins.Clock, 0); err != nil {
			return err
		}
	}

	// Latch the row and re-enable output.
	if err := c.set(c.pins.Latch, 1); err != nil {
		return err
	}
	time.Sleep(time.Microsecond)
	if err := c.set(c.pins.Latch, 0); err != nil {
		return err
	}
	return c.set(c.pins.OutputEnable, 0)
}
