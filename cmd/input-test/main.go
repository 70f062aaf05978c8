// Command input-test selects the best input driver for the current
// platform and echoes every normalized event, for checking key
// mappings on a new target.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leecorbin/MatrixOS/internal/devices"
	_ "github.com/leecorbin/MatrixOS/internal/devices/all"
	"github.com/leecorbin/MatrixOS/internal/platform"
)

func main() {
	platformFlag := flag.String("platform", "", "platform override (macos, linux, raspberry-pi)")
	flag.Parse()

	target := *platformFlag
	if target == "" {
		target = platform.Detect()
	}

	input, name, err := devices.SelectInput(target)
	if err != nil {
		log.Fatalf("No usable input backend for platform %q: %v", target, err)
	}
	defer input.Cleanup()

	fmt.Printf("Input driver: %s\n", name)
	fmt.Println("Press keys to test (QUIT or Ctrl+C to exit):")
	fmt.Println("Try: c, C, ESC, Backspace, Arrow keys")
	fmt.Println("----------------------------------------")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			fmt.Println("Exiting...")
			return
		default:
		}

		for _, ev := range devices.WaitEvents(input, 100*time.Millisecond) {
			fmt.Printf("Got: key=%q raw=%q%s\n", ev.Key, ev.Raw, describe(ev.Key))
			if ev.Key == devices.KeyQuit {
				return
			}
		}
	}
}

func describe(k devices.Key) string {
	switch k {
	case devices.KeyHome:
		return "  -> HOME (ESC)"
	case devices.KeyBack:
		return "  -> BACK (Backspace)"
	case devices.KeyQuit:
		return "  -> QUIT"
	case devices.KeyConfirm:
		return "  -> CONFIRM (Enter)"
	default:
		return ""
	}
}
