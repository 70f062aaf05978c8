// Package window implements the reference desktop display backend and
// its companion keyboard input driver on top of Ebitengine.
//
// The window is process-wide state: Ebitengine drives a single window
// and event loop, so exactly one Driver may own the session at a time.
// The input driver attaches to the same session but only ever touches
// the raw event queue; the display side never consumes input, it only
// publishes frames.
//
// Ebitengine requires its loop to run on the process main thread, so
// programs that may select this backend call Main from their main
// function. Main parks the main goroutine as the window loop host and
// runs the rest of the program on a separate goroutine; without it,
// Initialize fails and driver selection falls through to the next
// candidate.
package window

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/leecorbin/MatrixOS/internal/devices"
	"github.com/leecorbin/MatrixOS/pkg/framebuffer"
)

const (
	// DefaultScale is the factor each logical pixel is enlarged by on
	// screen. A 256x192 matrix becomes a 512x384 window.
	DefaultScale = 2

	windowTitle = "MatrixOS"

	// rawBacklog caps the pending raw event queue when no input
	// driver is draining it
	rawBacklog = 256

	// startTimeout bounds how long Initialize waits for the window
	// loop to present its first frame
	startTimeout = 5 * time.Second
)

func init() {
	runtime.LockOSThread()
}

// mainCh carries window loop requests to the goroutine parked in Main
var mainCh = make(chan func())

// Main hosts the window loop on the calling goroutine, which must be
// the main one, and runs app on a separate goroutine. It returns when
// app returns. Programs that never select a window display may still
// call it; the host simply stays idle.
func Main(app func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		app()
	}()
	for {
		select {
		case loop := <-mainCh:
			loop()
		case <-done:
			return
		}
	}
}

// session is the process-wide window state. The display driver owns
// it; the input driver only drains the raw queue.
type session struct {
	width  int
	height int
	scale  int

	mu    sync.Mutex
	front []byte // published RGBA frame, width*height*4
	raw   []rawEvent
	stop  bool

	startOnce sync.Once
	started   chan struct{}
	failed    chan error
	done      chan struct{}
}

var (
	sessionMu sync.Mutex
	active    *session
)

// configMu guards the package-wide pixel scale used by registry-built
// drivers
var (
	configMu sync.Mutex
	scale    = DefaultScale
)

// SetScale overrides the pixel scale for drivers constructed by the
// registry. Values below 1 restore the default. Call before driver
// selection.
func SetScale(n int) {
	configMu.Lock()
	if n < 1 {
		scale = DefaultScale
	} else {
		scale = n
	}
	configMu.Unlock()
}

func currentScale() int {
	configMu.Lock()
	defer configMu.Unlock()
	return scale
}

type rawKind int

const (
	rawKey rawKind = iota
	rawChar
	rawClose
)

// rawEvent is an untranslated input occurrence captured by the window
// loop. Translation to the symbolic key model happens in the input
// driver, never here.
type rawEvent struct {
	kind rawKind
	key  ebiten.Key
	ch   rune
}

// Driver renders the logical matrix into a desktop window, each pixel
// drawn as a scale x scale rectangle
type Driver struct {
	scale int
	buf   *framebuffer.Buffer
	sess  *session
}

// New creates a window driver with the configured pixel scale
func New(width, height int) (*Driver, error) {
	return NewScaled(width, height, currentScale())
}

// NewScaled creates a window driver with an explicit pixel scale
func NewScaled(width, height, scale int) (*Driver, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale: %d", scale)
	}
	buf, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Driver{scale: scale, buf: buf}, nil
}

// Initialize opens the window and hands its loop to the goroutine
// parked in Main, then waits for the first presented frame. It returns
// false when the driver was already initialized, another window driver
// owns the process-wide window, no Main host is running, or the window
// cannot open.
func (d *Driver) Initialize() bool {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if d.sess != nil {
		log.Printf("[window] Initialize called twice")
		return false
	}
	if active != nil {
		log.Printf("[window] another window driver is already active")
		return false
	}

	s := &session{
		width:   d.buf.Width(),
		height:  d.buf.Height(),
		scale:   d.scale,
		front:   make([]byte, d.buf.Width()*d.buf.Height()*4),
		started: make(chan struct{}),
		failed:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	// Opaque black until the first Show.
	for i := 3; i < len(s.front); i += 4 {
		s.front[i] = 0xFF
	}

	select {
	case mainCh <- func() { runLoop(s) }:
	default:
		log.Printf("[window] no window loop host; call window.Main from main")
		return false
	}

	select {
	case <-s.started:
	case err := <-s.failed:
		log.Printf("[window] failed to open window: %v", err)
		<-s.done
		return false
	case <-time.After(startTimeout):
		log.Printf("[window] window loop did not start within %v", startTimeout)
		s.mu.Lock()
		s.stop = true
		s.mu.Unlock()
		return false
	}

	active = s
	d.sess = s
	return true
}

// runLoop drives Ebitengine for one session. It runs on the main
// goroutine via Main.
func runLoop(s *session) {
	defer close(s.done)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(s.width*s.scale, s.height*s.scale)
	// Close requests become input events; the loop keeps running
	// until the input side reacts to QUIT.
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(&game{sess: s}); err != nil {
		select {
		case s.failed <- err:
		default:
			log.Printf("[window] display loop ended: %v", err)
		}
	}
}

// SetPixel writes into the owned buffer; out-of-range coordinates are
// silently ignored
func (d *Driver) SetPixel(x, y int, c color.RGBA) {
	d.buf.Set(x, y, c)
}

// Clear resets the buffer to black without publishing it
func (d *Driver) Clear() {
	d.buf.Clear()
}

// Show publishes the buffer to the window. The Ebitengine loop pumps
// OS events continuously on its own, so the window stays responsive
// between calls; input events are left untouched for the input driver.
func (d *Driver) Show() {
	s := d.sess
	if s == nil {
		return
	}
	s.mu.Lock()
	_ = d.buf.WriteRGBA(s.front)
	s.mu.Unlock()
}

// Cleanup stops the window loop and releases the process-wide session.
// Safe to call repeatedly or without a successful Initialize.
func (d *Driver) Cleanup() {
	sessionMu.Lock()
	s := d.sess
	d.sess = nil
	if s == nil {
		sessionMu.Unlock()
		return
	}
	if active == s {
		active = nil
	}
	sessionMu.Unlock()

	s.mu.Lock()
	s.stop = true
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		log.Printf("[window] timed out waiting for the window loop to stop")
	}
}

// Width returns the logical matrix width
func (d *Driver) Width() int {
	return d.buf.Width()
}

// Height returns the logical matrix height
func (d *Driver) Height() int {
	return d.buf.Height()
}

// Available reports whether a desktop windowing environment is
// reachable
func Available() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	default:
		return false
	}
}

// game adapts the session to the Ebitengine loop
type game struct {
	sess   *session
	canvas *ebiten.Image
}

func (g *game) Update() error {
	s := g.sess
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop {
		return ebiten.Termination
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if _, ok := controlKeys[k]; ok {
			s.push(rawEvent{kind: rawKey, key: k})
		}
	}
	for _, ch := range ebiten.AppendInputChars(nil) {
		s.push(rawEvent{kind: rawChar, ch: ch})
	}
	if ebiten.IsWindowBeingClosed() {
		s.push(rawEvent{kind: rawClose})
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.sess
	// The first drawn frame means the window opened successfully.
	s.startOnce.Do(func() { close(s.started) })
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(s.width, s.height)
	}
	s.mu.Lock()
	g.canvas.WritePixels(s.front)
	s.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(s.scale), float64(s.scale))
	screen.DrawImage(g.canvas, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sess.width * g.sess.scale, g.sess.height * g.sess.scale
}

// push appends a raw event, dropping the oldest entries when no input
// driver is draining the queue. Callers hold s.mu.
func (s *session) push(ev rawEvent) {
	if len(s.raw) >= rawBacklog {
		s.raw = s.raw[1:]
	}
	s.raw = append(s.raw, ev)
}

func init() {
	devices.RegisterDisplay(devices.DisplayInfo{
		Name:      "Desktop Window (Ebitengine)",
		Platform:  "macos",
		Priority:  50,
		Available: Available,
		New: func(width, height int) (devices.DisplayDriver, error) {
			return New(width, height)
		},
	})
	devices.RegisterInput(devices.InputInfo{
		Name:      "Window Keyboard",
		Platform:  "macos",
		Priority:  50,
		Class:     devices.ClassKeyboard,
		Available: Available,
		New: func() (devices.InputDriver, error) {
			return NewInput(), nil
		},
	})
}
