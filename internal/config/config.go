// Package config loads the MatrixOS configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the application configuration
type Config struct {
	// Platform overrides platform detection when set
	Platform string        `json:"platform,omitempty"`
	Display  DisplayConfig `json:"display"`
	Input    InputConfig   `json:"input"`
}

// DisplayConfig holds the logical matrix geometry
type DisplayConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Scale is the window pixel scale factor for windowed backends
	Scale int `json:"scale"`

	// Brightness for LED hardware backends, 0-255
	Brightness int `json:"brightness"`
}

// InputConfig holds input backend settings
type InputConfig struct {
	// ButtonPins maps symbolic keys ("UP", "CONFIRM", ...) to GPIO
	// line offsets for the button backend
	ButtonPins map[string]int `json:"button_pins,omitempty"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration: a ZX Spectrum sized
// matrix scaled 2x in windowed backends
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      256,
			Height:     192,
			Scale:      2,
			Brightness: 64,
		},
	}
}

func (c *Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("invalid display dimensions: %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("invalid display scale: %d", c.Display.Scale)
	}
	if c.Display.Brightness < 0 || c.Display.Brightness > 255 {
		return fmt.Errorf("brightness must be between 0 and 255")
	}
	return nil
}
