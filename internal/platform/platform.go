// Package platform maps the running host to the platform identifier
// used to bias driver selection.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// deviceTreeModel is where Linux exposes the board model string
const deviceTreeModel = "/proc/device-tree/model"

// Detect returns the platform identifier for the current host:
// "macos", "raspberry-pi", "linux", or the raw GOOS value for anything
// else. Callers may override the result with an explicit identifier.
func Detect() string {
	model, _ := os.ReadFile(deviceTreeModel)
	return detect(runtime.GOOS, model)
}

func detect(goos string, model []byte) string {
	switch goos {
	case "darwin":
		return "macos"
	case "linux":
		if strings.Contains(string(model), "Raspberry Pi") {
			return "raspberry-pi"
		}
		return "linux"
	default:
		return goos
	}
}
