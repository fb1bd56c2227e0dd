package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test probe defaults
	if !cfg.Probes.Enabled {
		t.Error("expected probes to be enabled by default")
	}
	if cfg.Probes.Resolution != 256 {
		t.Errorf("expected probe resolution 256, got %d", cfg.Probes.Resolution)
	}
	if cfg.Probes.Count != 32 {
		t.Errorf("expected probe count 32, got %d", cfg.Probes.Count)
	}
	if cfg.Probes.Realtime() {
		t.Error("expected realtime detail to be off by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestProbesValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ProbesConfig)
		wantErr string
	}{
		{"defaults", func(*ProbesConfig) {}, ""},
		{"smallest resolution", func(p *ProbesConfig) { p.Resolution = 16 }, ""},
		{"largest resolution", func(p *ProbesConfig) { p.Resolution = 2048 }, ""},
		{"resolution not power of two", func(p *ProbesConfig) { p.Resolution = 300 }, "resolution"},
		{"resolution too small", func(p *ProbesConfig) { p.Resolution = 8 }, "resolution"},
		{"resolution too large", func(p *ProbesConfig) { p.Resolution = 4096 }, "resolution"},
		{"no probes", func(p *ProbesConfig) { p.Count = 0 }, "count"},
		{"too many probes", func(p *ProbesConfig) { p.Count = 512 }, "count"},
		{"guaranteed above count", func(p *ProbesConfig) { p.Guaranteed = 64 }, "guaranteed"},
		{"negative guaranteed", func(p *ProbesConfig) { p.Guaranteed = -1 }, "guaranteed"},
		{"unknown detail", func(p *ProbesConfig) { p.Detail = "ultra" }, "detail"},
		{"realtime detail", func(p *ProbesConfig) { p.Detail = DetailRealtime }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default().Probes
			tt.modify(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero width")
	}

	cfg = Default()
	cfg.Demo.Frames = -5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative frame count")
	}
}

func TestRealtime(t *testing.T) {
	tests := []struct {
		detail string
		want   bool
	}{
		{DetailStatic, false},
		{DetailDynamic, false},
		{DetailRealtime, true},
	}
	for _, tt := range tests {
		p := ProbesConfig{Detail: tt.detail}
		if got := p.Realtime(); got != tt.want {
			t.Errorf("Realtime() for %q = %v, want %v", tt.detail, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

probes:
  enabled: false
  resolution: 128
  count: 16
  guaranteed: 4
  detail: "realtime"

logging:
  level: "debug"
  log_file: "probes.log"

demo:
  headless: true
  frames: 600
  objects: 8
  dump_faces: "faces"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Probes.Enabled {
		t.Error("expected probes to be disabled")
	}
	if cfg.Probes.Resolution != 128 {
		t.Errorf("expected probe resolution 128, got %d", cfg.Probes.Resolution)
	}
	if cfg.Probes.Count != 16 {
		t.Errorf("expected probe count 16, got %d", cfg.Probes.Count)
	}
	if cfg.Probes.Guaranteed != 4 {
		t.Errorf("expected 4 guaranteed probes, got %d", cfg.Probes.Guaranteed)
	}
	if !cfg.Probes.Realtime() {
		t.Error("expected realtime detail")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "probes.log" {
		t.Errorf("expected log file 'probes.log', got %s", cfg.Logging.LogFile)
	}

	if !cfg.Demo.Headless {
		t.Error("expected headless demo")
	}
	if cfg.Demo.Frames != 600 {
		t.Errorf("expected 600 frames, got %d", cfg.Demo.Frames)
	}
	if cfg.Demo.Objects != 8 {
		t.Errorf("expected 8 objects, got %d", cfg.Demo.Objects)
	}
	if cfg.Demo.DumpFaces != "faces" {
		t.Errorf("expected dump dir 'faces', got %s", cfg.Demo.DumpFaces)
	}
	// Untouched keys keep their defaults
	if cfg.Demo.OrbitRate != 0.2 {
		t.Errorf("expected default orbit rate 0.2, got %f", cfg.Demo.OrbitRate)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
probes:
  resolution: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// Keep the user's real config out of the search
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "headless and frames flags",
			setup: func() {
				*flagHeadless = true
				*flagFrames = 120
			},
			verify: func(cfg *Config) {
				if !cfg.Demo.Headless {
					t.Error("expected headless with headless flag")
				}
				if cfg.Demo.Frames != 120 {
					t.Errorf("expected 120 frames, got %d", cfg.Demo.Frames)
				}
			},
			teardown: func() {
				*flagHeadless = false
				*flagFrames = -1
			},
		},
		{
			name: "probe flags",
			setup: func() {
				*flagProbeRes = 64
				*flagProbeCount = 8
				*flagRealtime = true
			},
			verify: func(cfg *Config) {
				if cfg.Probes.Resolution != 64 {
					t.Errorf("expected probe resolution 64, got %d", cfg.Probes.Resolution)
				}
				if cfg.Probes.Count != 8 {
					t.Errorf("expected probe count 8, got %d", cfg.Probes.Count)
				}
				if !cfg.Probes.Realtime() {
					t.Error("expected realtime detail with realtime flag")
				}
			},
			teardown: func() {
				*flagProbeRes = 0
				*flagProbeCount = 0
				*flagRealtime = false
			},
		},
		{
			name: "dump faces flag",
			setup: func() {
				*flagDumpFaces = "/tmp/faces"
			},
			verify: func(cfg *Config) {
				if cfg.Demo.DumpFaces != "/tmp/faces" {
					t.Errorf("expected dump dir /tmp/faces, got %s", cfg.Demo.DumpFaces)
				}
			},
			teardown: func() {
				*flagDumpFaces = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
probes:
  count: 16
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagProbeCount = 24
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagProbeCount = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	if cfg.Probes.Count != 24 {
		t.Errorf("expected probe count 24 from flag, got %d", cfg.Probes.Count)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("probes:\n  resolution: 100\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error for resolution 100")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Probes.Count = 12
	cfg.Demo.DumpFaces = "out"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Probes.Count != 12 {
		t.Errorf("expected probe count 12, got %d", loaded.Probes.Count)
	}
	if loaded.Demo.DumpFaces != "out" {
		t.Errorf("expected dump dir 'out', got %s", loaded.Demo.DumpFaces)
	}
}

func TestSaveTo_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Probes.Resolution = 100
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected error saving resolution 100")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file to be written, stat err = %v", err)
	}
}

func TestWriteRequested(t *testing.T) {
	defer func() { *flagWriteConfig = "" }()

	cfg := Default()
	cfg.Probes.Count = 16
	cfg.Probes.Detail = DetailRealtime

	path, err := cfg.WriteRequested()
	if err != nil || path != "" {
		t.Fatalf("expected no write without flag, got %q, %v", path, err)
	}

	want := filepath.Join(t.TempDir(), "probes.yaml")
	*flagWriteConfig = want
	path, err = cfg.WriteRequested()
	if err != nil {
		t.Fatalf("WriteRequested: %v", err)
	}
	if path != want {
		t.Errorf("expected path %s, got %s", want, path)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Probes.Count != 16 || !loaded.Probes.Realtime() {
		t.Errorf("expected 16 realtime probes, got %d %s", loaded.Probes.Count, loaded.Probes.Detail)
	}
}

func TestWriteRequested_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	*flagWriteConfig = "default"
	defer func() { *flagWriteConfig = "" }()

	path, err := Default().WriteRequested()
	if err != nil {
		t.Fatalf("WriteRequested: %v", err)
	}
	if path != DefaultPath() {
		t.Errorf("expected %s, got %s", DefaultPath(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config at %s: %v", path, err)
	}
}
