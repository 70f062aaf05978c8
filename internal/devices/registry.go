package devices

import (
	"errors"
	"log"
	"sort"
)

// ErrNoDriver is returned when no registered candidate is available
// and initializable. For displays this is fatal to startup; for input
// the caller may choose to continue in a degraded mode.
var ErrNoDriver = errors.New("no usable driver")

// Registry holds the statically known driver candidates. Backend
// packages register themselves at init time into the package-level
// default registry; tests build their own.
type Registry struct {
	displays []DisplayInfo
	inputs   []InputInfo
}

var defaultRegistry = &Registry{}

// RegisterDisplay adds a display driver candidate to the default
// registry. Registration order is the tie-break for selection, so
// backends register exactly once.
func RegisterDisplay(info DisplayInfo) {
	defaultRegistry.RegisterDisplay(info)
}

// RegisterInput adds an input driver candidate to the default registry
func RegisterInput(info InputInfo) {
	defaultRegistry.RegisterInput(info)
}

// SelectDisplay picks, constructs and initializes the best display
// driver from the default registry. See Registry.SelectDisplay.
func SelectDisplay(platform string, width, height int) (DisplayDriver, string, error) {
	return defaultRegistry.SelectDisplay(platform, width, height)
}

// SelectInput picks, constructs and initializes the best input driver
// from the default registry
func SelectInput(platform string) (InputDriver, string, error) {
	return defaultRegistry.SelectInput(platform)
}

// Displays returns the default registry's display candidates in
// registration order
func Displays() []DisplayInfo {
	return defaultRegistry.Displays()
}

// Inputs returns the default registry's input candidates in
// registration order
func Inputs() []InputInfo {
	return defaultRegistry.Inputs()
}

// RegisterDisplay adds a display driver candidate
func (r *Registry) RegisterDisplay(info DisplayInfo) {
	r.displays = append(r.displays, info)
}

// RegisterInput adds an input driver candidate
func (r *Registry) RegisterInput(info InputInfo) {
	r.inputs = append(r.inputs, info)
}

// Displays returns the registered display candidates in registration
// order
func (r *Registry) Displays() []DisplayInfo {
	return append([]DisplayInfo(nil), r.displays...)
}

// Inputs returns the registered input candidates in registration order
func (r *Registry) Inputs() []InputInfo {
	return append([]InputInfo(nil), r.inputs...)
}

// SelectDisplay chooses exactly one display driver for the given
// platform and matrix size and returns it initialized, along with its
// name. Candidates whose availability probe returns false (or panics)
// are skipped. Platform-matching candidates always rank above
// platform-agnostic ones regardless of priority; within a group higher
// priority wins and ties fall to the first registered. A candidate
// whose Initialize fails is dropped and the next one is tried; only
// when every candidate is exhausted does selection fail.
func (r *Registry) SelectDisplay(platform string, width, height int) (DisplayDriver, string, error) {
	order := rank(len(r.displays), platform, func(i int) (string, int) {
		return r.displays[i].Platform, r.displays[i].Priority
	}, func(i int) func() bool {
		return r.displays[i].Available
	})

	for _, i := range order {
		info := r.displays[i]
		drv, err := info.New(width, height)
		if err != nil {
			log.Printf("Display driver %q: construction failed: %v", info.Name, err)
			continue
		}
		if !initialize(info.Name, drv.Initialize) {
			drv.Cleanup()
			continue
		}
		return drv, info.Name, nil
	}
	return nil, "", ErrNoDriver
}

// SelectInput chooses exactly one input driver for the given platform.
// The algorithm is identical to SelectDisplay.
func (r *Registry) SelectInput(platform string) (InputDriver, string, error) {
	order := rank(len(r.inputs), platform, func(i int) (string, int) {
		return r.inputs[i].Platform, r.inputs[i].Priority
	}, func(i int) func() bool {
		return r.inputs[i].Available
	})

	for _, i := range order {
		info := r.inputs[i]
		drv, err := info.New()
		if err != nil {
			log.Printf("Input driver %q: construction failed: %v", info.Name, err)
			continue
		}
		if !initialize(info.Name, drv.Initialize) {
			drv.Cleanup()
			continue
		}
		return drv, info.Name, nil
	}
	return nil, "", ErrNoDriver
}

// rank returns candidate indices in selection order: available
// candidates only, platform matches before platform-agnostic before
// mismatches, then priority descending, then registration order.
func rank(n int, platform string, meta func(int) (string, int), probe func(int) func() bool) []int {
	var order []int
	for i := 0; i < n; i++ {
		if available(probe(i)) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, ra := meta(order[a])
		pb, rb := meta(order[b])
		ga, gb := platformGroup(pa, platform), platformGroup(pb, platform)
		if ga != gb {
			return ga > gb
		}
		return ra > rb
	})
	return order
}

// platformGroup buckets a candidate's platform preference against the
// target: 2 = exact match, 1 = platform-agnostic, 0 = tied to a
// different platform. A hardware-specific driver for another target is
// only ever a last resort.
func platformGroup(preference, platform string) int {
	switch {
	case preference == "":
		return 1
	case preference == platform:
		return 2
	default:
		return 0
	}
}

// available runs a capability probe, converting a panic into
// "unavailable". Probes for absent optional libraries or hardware must
// never abort selection.
func available(probe func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	if probe == nil {
		return true
	}
	return probe()
}

// initialize runs a driver's Initialize, shielding the selector from
// panicking backends and logging the failure with the driver name.
func initialize(name string, init func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Driver %q: initialization panic: %v", name, r)
			ok = false
		}
	}()
	if init() {
		return true
	}
	log.Printf("Driver %q failed to initialize, trying next candidate", name)
	return false
}
