package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagHeadless   = flag.Bool("headless", false, "Run without a window, recording GPU calls")
	flagFrames     = flag.Int("frames", -1, "Number of frames to run (0 = until closed)")
	flagProbeRes   = flag.Int("probe-res", 0, "Reflection probe face resolution")
	flagProbeCount = flag.Int("probe-count", 0, "Reflection probe cube map count")
	flagRealtime   = flag.Bool("realtime", false, "Re-render the nearest dynamic probe every frame")
	flagDumpFaces  = flag.String("dump-faces", "", "Directory to write captured faces to")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")

	flagWriteConfig = flag.String("write-config", "", `Write the effective config to this path ("default" for the user config dir) and exit`)
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeadless {
		cfg.Demo.Headless = true
	}
	if *flagFrames >= 0 {
		cfg.Demo.Frames = *flagFrames
	}
	if *flagProbeRes > 0 {
		cfg.Probes.Resolution = *flagProbeRes
	}
	if *flagProbeCount > 0 {
		cfg.Probes.Count = *flagProbeCount
	}
	if *flagRealtime {
		cfg.Probes.Detail = DetailRealtime
	}
	if *flagDumpFaces != "" {
		cfg.Demo.DumpFaces = *flagDumpFaces
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
