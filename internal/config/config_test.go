package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/progress/pkg/progress"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Max != 100 {
		t.Errorf("Max = %d, want 100", cfg.Max)
	}
	if cfg.SMAWindow != 10 {
		t.Errorf("SMAWindow = %d, want 10", cfg.SMAWindow)
	}
	if !cfg.CheckTTY {
		t.Error("CheckTTY = false, want true")
	}
	if !cfg.HideCursor {
		t.Error("HideCursor = false, want true")
	}
	if cfg.Style != StyleBar {
		t.Errorf("Style = %q, want %q", cfg.Style, StyleBar)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Delay != 50*time.Millisecond {
		t.Errorf("Delay = %v, want 50ms", cfg.Delay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, `message: "Loading "
max: 40
sma_window: 5
check_tty: false
hide_cursor: false
style: Spinner
width: 20
suffix: " {percent:%.0f}%"
log_level: debug
delay: 10ms
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Message != "Loading " {
		t.Errorf("Message = %q, want %q", cfg.Message, "Loading ")
	}
	if cfg.Max != 40 {
		t.Errorf("Max = %d, want 40", cfg.Max)
	}
	if cfg.SMAWindow != 5 {
		t.Errorf("SMAWindow = %d, want 5", cfg.SMAWindow)
	}
	if cfg.CheckTTY {
		t.Error("CheckTTY = true, want false")
	}
	if cfg.HideCursor {
		t.Error("HideCursor = true, want false")
	}
	if cfg.Style != StyleSpinner {
		t.Errorf("Style = %q, want %q", cfg.Style, StyleSpinner)
	}
	if cfg.Width != 20 {
		t.Errorf("Width = %d, want 20", cfg.Width)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Delay != 10*time.Millisecond {
		t.Errorf("Delay = %v, want 10ms", cfg.Delay)
	}
}

// TestLoadConfigPartialFile verifies that absent keys keep their defaults
func TestLoadConfigPartialFile(t *testing.T) {
	path := writeConfig(t, "max: 0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Max != 0 {
		t.Errorf("Max = %d, want explicit 0", cfg.Max)
	}
	if !cfg.CheckTTY || !cfg.HideCursor {
		t.Error("booleans absent from the file should keep their defaults")
	}
	if cfg.Style != StyleBar {
		t.Errorf("Style = %q, want default %q", cfg.Style, StyleBar)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Max != DefaultConfig().Max {
		t.Errorf("Max = %d, want default", cfg.Max)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Style != StyleBar {
		t.Errorf("Style = %q, want %q", cfg.Style, StyleBar)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "max: 3\nmaxx: 4\n", "field maxx not found"},
		{"malformed yaml", "max: [1, 2\n", "failed to parse config file"},
		{"bad delay", "delay: soon\n", "invalid delay format"},
		{"bad style", "style: rainbow\n", "invalid style"},
		{"negative width", "width: -1\n", "width must be >= 0"},
		{"negative window", "sma_window: -2\n", "sma_window must be >= 0"},
		{"bad log level", "log_level: loud\n", "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestProgressConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Max = 7
	cfg.CheckTTY = false
	cfg.HideCursor = false
	cfg.SMAWindow = 3

	var buf bytes.Buffer
	pc := cfg.ProgressConfig(&buf)

	if pc.Output != &buf {
		t.Error("Output not set to the given writer")
	}
	if pc.Max != 7 || pc.SMAWindow != 3 || pc.CheckTTY || pc.HideCursor {
		t.Errorf("unexpected progress config: %+v", pc)
	}
	if pc.Render == nil {
		t.Fatal("Render should be set")
	}
}

func TestRenderer(t *testing.T) {
	snap := progress.Snapshot{
		Index:     3,
		Bounded:   true,
		Max:       6,
		Progress:  0.5,
		Percent:   50,
		Remaining: 3,
	}

	tests := []struct {
		name  string
		style string
		width int
		tmpl  string
		want  string
	}{
		{name: "bar", style: StyleBar, width: 4, want: "[==  ] 3/6 (50%)"},
		{name: "counter", style: StyleCounter, want: "3"},
		{name: "template", style: StyleTemplate, tmpl: "{remaining} left", want: "3 left"},
		{name: "spinner", style: StyleSpinner, want: progress.DefaultSpinnerPhases[0] + " 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Style = tt.style
			if tt.tmpl != "" {
				cfg.Template = tt.tmpl
			}

			got := cfg.Renderer(tt.width)(snap)
			if got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}
