// Package main is the entry point for the reflection probe viewer.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-probes/internal/config"
	"github.com/Faultbox/midgard-probes/internal/engine/capture"
	"github.com/Faultbox/midgard-probes/internal/engine/capture/headless"
	"github.com/Faultbox/midgard-probes/internal/logger"
	"github.com/Faultbox/midgard-probes/internal/viewer"
)

// Headless runs use a fixed step and a frame cap so they always terminate.
const (
	headlessStep   = 1.0 / 60
	headlessFrames = 600
	statsEvery     = time.Second
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Reflection Probe Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if path, err := cfg.WriteRequested(); err != nil {
		logger.Error("saving config", zap.Error(err))
		os.Exit(1)
	} else if path != "" {
		logger.Info("config written", zap.String("path", path))
		return
	}

	if cfg.Demo.Headless {
		err = runHeadless(cfg)
	} else {
		err = runWindowed(cfg)
	}
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// runHeadless ticks the manager against the recording device.
func runHeadless(cfg *config.Config) error {
	frames := cfg.Demo.Frames
	if frames == 0 {
		frames = headlessFrames
	}
	if cfg.Demo.DumpFaces != "" {
		logger.Warn("face dumps need a GL context; ignoring -dump-faces in headless mode")
	}

	device := headless.New()
	noScene := capture.SceneRendererFunc(func(capture.Context) {})

	v, err := viewer.New(cfg, device, noScene, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()

	for i := 0; i < frames; i++ {
		if err := v.Step(headlessStep); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if (i+1)%60 == 0 {
			v.LogStats()
			// Keep the recording bounded on long runs.
			device.Reset()
		}
	}

	v.ToggleNeighbors()
	logger.Info("headless run finished",
		zap.Int("frames", v.Frames()),
		zap.Int("debug_lines", len(v.DebugLines())),
	)
	v.LogStats()
	return nil
}
