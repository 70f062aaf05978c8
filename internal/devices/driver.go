// Package devices defines the display and input driver contracts, the
// normalized input event model, and the registry that auto-selects the
// best available driver for the current platform.
//
// The launcher and apps only ever talk to drivers through these
// interfaces; nothing outside a backend package may branch on a
// concrete driver type.
package devices

import "image/color"

// DisplayDriver is the contract every rendering backend implements.
//
// A driver moves through Uninitialized -> Ready -> Terminated. Pixel
// writes go into a buffer owned by the driver and reach the physical
// surface only on Show. The contract is single-threaded: SetPixel,
// Clear and Show are called from one render loop and implementations
// must not be assumed safe for concurrent callers.
type DisplayDriver interface {
	// Initialize allocates backend resources (window, device handle,
	// buffer) and returns true on success. Expected failures such as
	// missing hardware return false rather than panicking, and leave
	// no resources held.
	Initialize() bool

	// SetPixel writes one pixel into the driver's buffer.
	// Out-of-range coordinates are silently ignored.
	SetPixel(x, y int, c color.RGBA)

	// Clear resets every buffer cell to black. It does not call Show.
	Clear()

	// Show pushes the buffer to the physical or visual surface.
	// Windowed backends also keep their window responsive here, but
	// they never consume input events; window-close requests are
	// reported as a QUIT event by the input driver, not handled by
	// the display. Safe to call on a partially drawn buffer.
	Show()

	// Cleanup releases all backend resources. Idempotent and safe to
	// call even if Initialize failed or was never called.
	Cleanup()

	// Width returns the logical matrix width in pixels
	Width() int

	// Height returns the logical matrix height in pixels
	Height() int
}

// InputDriver is the contract every input backend implements.
type InputDriver interface {
	// Initialize opens the device or connection and returns true on
	// success. Failure semantics mirror DisplayDriver.Initialize.
	Initialize() bool

	// Poll drains currently pending events in arrival order without
	// blocking. It returns an empty slice (or nil) when nothing is
	// pending. Backends with slow I/O do that work lazily here, not
	// in Initialize, so driver selection stays fast.
	Poll() []Event

	// Cleanup releases device resources. Idempotent and safe to call
	// before Initialize.
	Cleanup()
}

// DeviceClass identifies the kind of input device a driver talks to
type DeviceClass string

const (
	ClassKeyboard DeviceClass = "keyboard"
	ClassRemote   DeviceClass = "remote"
	ClassGamepad  DeviceClass = "gamepad"
	ClassGeneric  DeviceClass = "generic"
)

// DisplayInfo describes a display driver candidate. All fields are
// static: the selector queries them without constructing a driver, so
// probes must not have side effects.
type DisplayInfo struct {
	// Name is the human-readable driver name used in diagnostics
	Name string

	// Platform is the preferred platform tag ("macos", "linux",
	// "raspberry-pi", ...). Empty means the driver runs anywhere.
	Platform string

	// Priority ranks candidates for auto-selection, 0-100, higher
	// preferred
	Priority int

	// Available reports whether the driver's dependencies are met.
	// nil means always available. A panicking probe counts as
	// unavailable, never as a selection error.
	Available func() bool

	// New constructs an uninitialized driver for the given matrix size
	New func(width, height int) (DisplayDriver, error)
}

// InputInfo describes an input driver candidate
type InputInfo struct {
	Name     string
	Platform string
	Priority int

	// Class is the device class, ClassGeneric when unset
	Class DeviceClass

	// RequiresPairing is true for devices that need a pairing flow
	// (e.g. Bluetooth remotes) before first use. The pairing flow
	// itself lives outside this package.
	RequiresPairing bool

	Available func() bool
	New       func() (InputDriver, error)
}
