package platform

import "testing"

// TestDetect maps GOOS and device-tree model strings to platform
// identifiers
func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		goos  string
		model string
		want  string
	}{
		{name: "macos", goos: "darwin", model: "", want: "macos"},
		{name: "plain linux", goos: "linux", model: "", want: "linux"},
		{name: "raspberry pi", goos: "linux", model: "Raspberry Pi 5 Model B Rev 1.0\x00", want: "raspberry-pi"},
		{name: "other linux board", goos: "linux", model: "Pine64 RockPro64\x00", want: "linux"},
		{name: "windows passes through", goos: "windows", model: "", want: "windows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detect(tt.goos, []byte(tt.model)); got != tt.want {
				t.Errorf("detect(%q, %q) = %q, want %q", tt.goos, tt.model, got, tt.want)
			}
		})
	}
}
