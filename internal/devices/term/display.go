package term

import (
	"image/color"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/leecorbin/MatrixOS/internal/devices"
	"github.com/leecorbin/MatrixOS/pkg/framebuffer"
)

// Driver renders the logical matrix into the terminal. Each pixel is
// drawn as two colored cells side by side to roughly square the aspect
// ratio. Intended for small matrices; a 256x192 buffer will not fit a
// normal terminal and gets clipped at the screen edge.
type Driver struct {
	buf  *framebuffer.Buffer
	sess *session
}

// New creates a terminal display driver for the given matrix size
func New(width, height int) (*Driver, error) {
	buf, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Driver{buf: buf}, nil
}

// Initialize takes over the terminal screen
func (d *Driver) Initialize() bool {
	if d.sess != nil {
		log.Printf("[term] Initialize called twice")
		return false
	}
	sess, err := acquire()
	if err != nil {
		log.Printf("[term] failed to open terminal screen: %v", err)
		return false
	}
	d.sess = sess
	return true
}

// SetPixel writes into the owned buffer; out-of-range coordinates are
// silently ignored
func (d *Driver) SetPixel(x, y int, c color.RGBA) {
	d.buf.Set(x, y, c)
}

// Clear resets the buffer to black without redrawing the screen
func (d *Driver) Clear() {
	d.buf.Clear()
}

// Show redraws the full matrix. Terminal events keep flowing through
// the session pump regardless; this never consumes them.
func (d *Driver) Show() {
	s := d.sess
	if s == nil {
		return
	}
	for y := 0; y < d.buf.Height(); y++ {
		for x := 0; x < d.buf.Width(); x++ {
			c := d.buf.At(x, y)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			s.screen.SetContent(x*2, y, ' ', nil, style)
			s.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}
	s.screen.Show()
}

// Cleanup restores the terminal. Idempotent and safe before
// Initialize.
func (d *Driver) Cleanup() {
	release(d.sess)
	d.sess = nil
}

// Width returns the logical matrix width
func (d *Driver) Width() int {
	return d.buf.Width()
}

// Height returns the logical matrix height
func (d *Driver) Height() int {
	return d.buf.Height()
}

func init() {
	devices.RegisterDisplay(devices.DisplayInfo{
		Name:      "Terminal (tcell)",
		Priority:  10,
		Available: Available,
		New: func(width, height int) (devices.DisplayDriver, error) {
			return New(width, height)
		},
	})
}
