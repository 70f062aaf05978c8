package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/leecorbin/MatrixOS/internal/config"
	"github.com/leecorbin/MatrixOS/internal/devices"
	_ "github.com/leecorbin/MatrixOS/internal/devices/all"
	"github.com/leecorbin/MatrixOS/internal/devices/buttons"
	"github.com/leecorbin/MatrixOS/internal/devices/hub75"
	"github.com/leecorbin/MatrixOS/internal/devices/window"
	"github.com/leecorbin/MatrixOS/internal/platform"
	"github.com/leecorbin/MatrixOS/pkg/icons"
	"github.com/leecorbin/MatrixOS/pkg/text"
)

func main() {
	// The desktop window backend needs the main thread for its loop.
	window.Main(launch)
}

func launch() {
	configPath := flag.String("config", "config.json", "path to config file")
	platformFlag := flag.String("platform", "", "platform override (macos, linux, raspberry-pi)")
	width := flag.Int("width", 0, "matrix width override")
	height := flag.Int("height", 0, "matrix height override")
	iconPath := flag.String("icon", "", "SVG icon to show on the matrix")
	listDrivers := flag.Bool("list-drivers", false, "list registered drivers and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", *configPath, err)
		log.Printf("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if *width > 0 {
		cfg.Display.Width = *width
	}
	if *height > 0 {
		cfg.Display.Height = *height
	}
	window.SetScale(cfg.Display.Scale)
	hub75.SetBrightness(cfg.Display.Brightness)
	if len(cfg.Input.ButtonPins) > 0 {
		buttons.Configure(cfg.Input.ButtonPins)
	}

	target := cfg.Platform
	if *platformFlag != "" {
		target = *platformFlag
	}
	if target == "" {
		target = platform.Detect()
	}

	if *listDrivers {
		printDrivers(target)
		return
	}

	banner(cfg, target)

	display, displayName, err := devices.SelectDisplay(target, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		log.Fatalf("No usable display backend for platform %q: %v", target, err)
	}
	defer display.Cleanup()
	log.Printf("Display driver: %s (%dx%d)", displayName, display.Width(), display.Height())

	input, inputName, err := devices.SelectInput(target)
	if err != nil {
		log.Printf("Warning: no usable input backend, running without input: %v", err)
		input = nil
	} else {
		defer input.Cleanup()
		log.Printf("Input driver: %s", inputName)
	}

	var icon *image.RGBA
	if *iconPath != "" {
		icon, err = icons.Load(*iconPath, 16, 16)
		if err != nil {
			log.Printf("Failed to load icon %s: %v", *iconPath, err)
			icon = nil
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	run(display, input, icon, sigChan)
	log.Println("MatrixOS exited.")
}

// printDrivers lists every registered driver candidate with its
// availability on this host
func printDrivers(target string) {
	fmt.Printf("Registered drivers (platform %s):\n", target)
	fmt.Println("Displays:")
	for _, info := range devices.Displays() {
		fmt.Printf("  %-32s platform=%-12s priority=%-3d available=%v\n",
			info.Name, orAny(info.Platform), info.Priority, probe(info.Available))
	}
	fmt.Println("Inputs:")
	for _, info := range devices.Inputs() {
		fmt.Printf("  %-32s platform=%-12s priority=%-3d class=%-8s available=%v\n",
			info.Name, orAny(info.Platform), info.Priority, info.Class, probe(info.Available))
	}
}

func orAny(platform string) string {
	if platform == "" {
		return "any"
	}
	return platform
}

// probe runs an availability check, treating a panic as unavailable
// the same way driver selection does
func probe(f func() bool) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if f == nil {
		return true
	}
	return f()
}

func banner(cfg *config.Config, target string) {
	line := strings.Repeat("=", 64)
	fmt.Println(line)
	fmt.Println("MATRIXOS LAUNCHER")
	fmt.Println(line)
	fmt.Printf("Resolution: %dx%d  Platform: %s\n", cfg.Display.Width, cfg.Display.Height, target)
	fmt.Println("Controls:")
	fmt.Println("  Arrow Keys - Move cursor")
	fmt.Println("  Enter      - Cycle color")
	fmt.Println("  ESC        - Exit")
	fmt.Println(line)
}

func run(display devices.DisplayDriver, input devices.InputDriver, icon *image.RGBA, sigChan <-chan os.Signal) {
	palette := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	x, y := display.Width()/2, display.Height()/2
	colorIdx := 0

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			return
		case <-ticker.C:
		}

		if input != nil {
			for _, ev := range input.Poll() {
				switch ev.Key {
				case devices.KeyQuit, devices.KeyHome:
					return
				case devices.KeyUp:
					y--
				case devices.KeyDown:
					y++
				case devices.KeyLeft:
					x--
				case devices.KeyRight:
					x++
				case devices.KeyConfirm:
					colorIdx = (colorIdx + 1) % len(palette)
				}
			}
		}

		display.Clear()
		text.Draw(display, "MATRIXOS", 2, 2, white)
		if icon != nil {
			icons.Draw(display, icon, 2, 12)
		}
		drawCursor(display, x, y, palette[colorIdx])
		display.Show()
	}
}

func drawCursor(display devices.DisplayDriver, x, y int, c color.RGBA) {
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			display.SetPixel(x+dx, y+dy, c)
		}
	}
}
