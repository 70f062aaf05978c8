package hub75

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"sync"
	"time"

	"github.com/leecorbin/MatrixOS/internal/devices"
	"github.com/leecorbin/MatrixOS/pkg/framebuffer"
)

// maxScanErrors aborts the refresh loop after this many consecutive
// GPIO failures
const maxScanErrors = 10

// MaxBrightness is the full-on brightness level
const MaxBrightness = 255

// dimPeriod is the blanking window budget per refresh pass; the panel
// has no brightness register, so dimming blanks the output for a slice
// of each pass proportional to the configured level.
const dimPeriod = 2 * time.Millisecond

var (
	configMu   sync.Mutex
	brightness = MaxBrightness
)

// SetBrightness sets the panel brightness (0-255) for drivers
// constructed by the registry. Out-of-range values are clamped. Call
// before driver selection.
func SetBrightness(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxBrightness {
		level = MaxBrightness
	}
	configMu.Lock()
	brightness = level
	configMu.Unlock()
}

func currentBrightness() int {
	configMu.Lock()
	defer configMu.Unlock()
	return brightness
}

// Driver renders the logical matrix onto a HUB75 panel. The panel has
// no frame memory, so a background goroutine rescans rows continuously
// while Show only swaps in newly packed frame data.
type Driver struct {
	chip       string
	pins       PinConfig
	brightness int
	buf        *framebuffer.Buffer
	ctrl       *controller

	mu    sync.Mutex
	frame [][]byte

	stop chan struct{}
	done chan struct{}
}

// New creates a HUB75 driver with the default chip and bonnet wiring
func New(width, height int) (*Driver, error) {
	return NewWithPins(width, height, DefaultChip, DefaultPins())
}

// NewWithPins creates a HUB75 driver with explicit wiring
func NewWithPins(width, height int, chip string, pins PinConfig) (*Driver, error) {
	if height%2 != 0 {
		return nil, fmt.Errorf("panel height must be even, got %d", height)
	}
	buf, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Driver{chip: chip, pins: pins, brightness: currentBrightness(), buf: buf}, nil
}

// Initialize requests the GPIO lines and starts the refresh loop
func (d *Driver) Initialize() bool {
	if d.ctrl != nil {
		log.Printf("[hub75] Initialize called twice")
		return false
	}
	ctrl, err := newController(d.chip, d.pins)
	if err != nil {
		log.Printf("[hub75] failed to initialize: %v", err)
		return false
	}
	d.ctrl = ctrl
	d.frame = packFrame(d.buf)
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.refresh()
	return true
}

// SetPixel writes into the owned buffer; out-of-range coordinates are
// silently ignored
func (d *Driver) SetPixel(x, y int, c color.RGBA) {
	d.buf.Set(x, y, c)
}

// Clear resets the buffer to black without touching the panel
func (d *Driver) Clear() {
	d.buf.Clear()
}

// Show packs the buffer into scan data and hands it to the refresh
// loop
func (d *Driver) Show() {
	if d.ctrl == nil {
		return
	}
	frame := packFrame(d.buf)
	d.mu.Lock()
	d.frame = frame
	d.mu.Unlock()
}

// Cleanup stops the refresh loop and releases the GPIO lines.
// Idempotent and safe before Initialize.
func (d *Driver) Cleanup() {
	if d.ctrl == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.ctrl.Close()
	d.ctrl = nil
}

// Width returns the logical matrix width
func (d *Driver) Width() int {
	return d.buf.Width()
}

// Height returns the logical matrix height
func (d *Driver) Height() int {
	return d.buf.Height()
}

// refresh rescans the panel until Cleanup
func (d *Driver) refresh() {
	defer close(d.done)
	rows := d.buf.Height() / 2
	errors := 0
	for {
		select {
		case <-d.stop:
			return
		default:
		}

		d.mu.Lock()
		frame := d.frame
		d.mu.Unlock()

		for r := 0; r < rows; r++ {
			if err := d.ctrl.scanRow(r, frame[r]); err != nil {
				errors++
				if errors >= maxScanErrors {
					log.Printf("[hub75] giving up after %d scan failures: %v", errors, err)
					return
				}
				log.Printf("[hub75] row scan failed: %v", err)
				break
			}
			errors = 0
		}

		if d.brightness < MaxBrightness {
			d.blank()
		}
	}
}

// blank dims the panel by disabling output for the unlit share of the
// refresh pass
func (d *Driver) blank() {
	off := dimPeriod * time.Duration(MaxBrightness-d.brightness) / MaxBrightness
	if off <= 0 {
		return
	}
	if err := d.ctrl.set(d.pins.OutputEnable, 1); err != nil {
		return
	}
	time.Sleep(off)
	_ = d.ctrl.set(d.pins.OutputEnable, 0)
}

// Available reports whether a GPIO character device is present
func Available() bool {
	_, err := os.Stat("/dev/" + DefaultChip)
	return err == nil
}

// packFrame converts the buffer into per-row scan data. The panel
// drives the upper and lower halves in parallel, so row r carries six
// bit-bytes per column: R1 G1 B1 from row r and R2 G2 B2 from row
// r+height/2. Channels are thresholded to one bit.
func packFrame(buf *framebuffer.Buffer) [][]byte {
	rows := buf.Height() / 2
	frame := make([][]byte, rows)
	for r := 0; r < rows; r++ {
		data := make([]byte, buf.Width()*6)
		for x := 0; x < buf.Width(); x++ {
			top := buf.At(x, r)
			bottom := buf.At(x, r+rows)
			idx := x * 6
			data[idx+0] = bit(top.R)
			data[idx+1] = bit(top.G)
			data[idx+2] = bit(top.B)
			data[idx+3] = bit(bottom.R)
			data[idx+4] = bit(bottom.G)
			data[idx+5] = bit(bottom.B)
		}
		frame[r] = data
	}
	return frame
}

func bit(v uint8) byte {
	if v >= 128 {
		return 1
	}
	return 0
}

func init() {
	devices.RegisterDisplay(devices.DisplayInfo{
		Name:      "HUB75 Matrix (GPIO)",
		Platform:  "raspberry-pi",
		Priority:  90,
		Available: Available,
		New: func(width, height int) (devices.DisplayDriver, error) {
			return New(width, height)
		},
	})
}
