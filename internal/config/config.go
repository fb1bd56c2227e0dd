// Package config handles probe viewer configuration loading and management.
package config

import (
	"fmt"
	"math/bits"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Probes   ProbesConfig   `yaml:"probes"`
	Logging  LoggingConfig  `yaml:"logging"`
	Demo     DemoConfig     `yaml:"demo"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// Probe detail levels.
const (
	DetailStatic   = "static"
	DetailDynamic  = "dynamic"
	DetailRealtime = "realtime"
)

// ProbesConfig holds reflection probe settings.
type ProbesConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Resolution int    `yaml:"resolution"` // Cube face edge at mip 0
	Count      int    `yaml:"count"`      // Cube map array layers
	Guaranteed int    `yaml:"guaranteed"` // Nearest probes that never lose a slot, 0 = all
	Detail     string `yaml:"detail"`     // static, dynamic or realtime
}

// Realtime reports whether the nearest dynamic probe is re-rendered every frame.
func (p ProbesConfig) Realtime() bool {
	return p.Detail == DetailRealtime
}

// Validate checks the probe settings.
func (p ProbesConfig) Validate() error {
	if p.Resolution < 16 || p.Resolution > 2048 || bits.OnesCount(uint(p.Resolution)) != 1 {
		return fmt.Errorf("probes.resolution must be a power of two in [16, 2048], got %d", p.Resolution)
	}
	if p.Count < 1 || p.Count > 256 {
		return fmt.Errorf("probes.count must be in [1, 256], got %d", p.Count)
	}
	if p.Guaranteed < 0 || p.Guaranteed > p.Count {
		return fmt.Errorf("probes.guaranteed must be in [0, %d], got %d", p.Count, p.Guaranteed)
	}
	switch p.Detail {
	case DetailStatic, DetailDynamic, DetailRealtime:
	default:
		return fmt.Errorf("probes.detail must be static, dynamic or realtime, got %q", p.Detail)
	}
	return nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DemoConfig holds settings for the probe viewer demo scene.
type DemoConfig struct {
	Headless  bool    `yaml:"headless"`   // Record GPU calls instead of opening a window
	Frames    int     `yaml:"frames"`     // Frames to run, 0 = until the window closes
	Objects   int     `yaml:"objects"`    // Dynamic probe objects in the scene
	OrbitRate float32 `yaml:"orbit_rate"` // Camera orbit speed in radians per second
	DumpFaces string  `yaml:"dump_faces"` // Directory for captured face PNGs
}

// Validate checks the whole config.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if err := c.Probes.Validate(); err != nil {
		return err
	}
	if c.Demo.Frames < 0 {
		return fmt.Errorf("demo.frames must not be negative, got %d", c.Demo.Frames)
	}
	return nil
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Probes: ProbesConfig{
			Enabled:    true,
			Resolution: 256,
			Count:      32,
			Guaranteed: 0,
			Detail:     DetailDynamic,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Demo: DemoConfig{
			Headless:  false,
			Frames:    0,
			Objects:   4,
			OrbitRate: 0.2,
		},
	}
}
