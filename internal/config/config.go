// Package config loads progress CLI settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/harrison/progress/pkg/progress"
	"gopkg.in/yaml.v3"
)

// Supported render styles
const (
	StyleBar      = "bar"
	StyleSpinner  = "spinner"
	StyleCounter  = "counter"
	StyleTemplate = "template"
)

// Config represents progress CLI configuration options
type Config struct {
	// Message is printed before the status fragment on every redraw
	Message string `yaml:"message"`

	// Max is the target index of bounded indicators
	Max int `yaml:"max"`

	// SMAWindow is the number of recent steps in the moving average
	SMAWindow int `yaml:"sma_window"`

	// CheckTTY disables rendering when the output is not a terminal
	CheckTTY bool `yaml:"check_tty"`

	// HideCursor hides the terminal cursor while an indicator is active
	HideCursor bool `yaml:"hide_cursor"`

	// Style selects the renderer (bar, spinner, counter, template)
	Style string `yaml:"style"`

	// Width is the bar width in cells (0 = fit the terminal)
	Width int `yaml:"width"`

	// Suffix is the template drawn after the bar or spinner ("" = style default)
	Suffix string `yaml:"suffix"`

	// Template is the status template of the template style
	Template string `yaml:"template"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Delay is the simulated duration of one unit of work in `progress run`
	Delay time.Duration `yaml:"delay"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Message:    "",
		Max:        progress.DefaultMax,
		SMAWindow:  progress.DefaultSMAWindow,
		CheckTTY:   true,
		HideCursor: true,
		Style:      StyleBar,
		Width:      32,
		Suffix:     "",
		Template:   "{index}",
		LogLevel:   "info",
		Delay:      50 * time.Millisecond,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed or has unknown keys, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from zero values so that booleans
	// defaulting to true can be switched off.
	type yamlConfig struct {
		Message    *string `yaml:"message"`
		Max        *int    `yaml:"max"`
		SMAWindow  *int    `yaml:"sma_window"`
		CheckTTY   *bool   `yaml:"check_tty"`
		HideCursor *bool   `yaml:"hide_cursor"`
		Style      string  `yaml:"style"`
		Width      *int    `yaml:"width"`
		Suffix     string  `yaml:"suffix"`
		Template   string  `yaml:"template"`
		LogLevel   string  `yaml:"log_level"`
		Delay      string  `yaml:"delay"`
	}

	var yamlCfg yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Message != nil {
		cfg.Message = *yamlCfg.Message
	}
	if yamlCfg.Max != nil {
		cfg.Max = *yamlCfg.Max
	}
	if yamlCfg.SMAWindow != nil {
		cfg.SMAWindow = *yamlCfg.SMAWindow
	}
	if yamlCfg.CheckTTY != nil {
		cfg.CheckTTY = *yamlCfg.CheckTTY
	}
	if yamlCfg.HideCursor != nil {
		cfg.HideCursor = *yamlCfg.HideCursor
	}
	if yamlCfg.Style != "" {
		cfg.Style = strings.ToLower(yamlCfg.Style)
	}
	if yamlCfg.Width != nil {
		cfg.Width = *yamlCfg.Width
	}
	if yamlCfg.Suffix != "" {
		cfg.Suffix = yamlCfg.Suffix
	}
	if yamlCfg.Template != "" {
		cfg.Template = yamlCfg.Template
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Delay != "" {
		delay, err := time.ParseDuration(yamlCfg.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid delay format %q: %w", yamlCfg.Delay, err)
		}
		cfg.Delay = delay
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	switch c.Style {
	case StyleBar, StyleSpinner, StyleCounter, StyleTemplate:
	default:
		return fmt.Errorf("invalid style %q: must be one of bar, spinner, counter, template", c.Style)
	}
	if c.SMAWindow < 0 {
		return fmt.Errorf("sma_window must be >= 0, got %d", c.SMAWindow)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be >= 0, got %d", c.Width)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be >= 0, got %s", c.Delay)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// ProgressConfig maps the file settings onto an indicator configuration
// writing to out.
func (c *Config) ProgressConfig(out io.Writer) progress.Config {
	pc := progress.DefaultConfig()
	pc.Output = out
	pc.SMAWindow = c.SMAWindow
	pc.CheckTTY = c.CheckTTY
	pc.HideCursor = c.HideCursor
	pc.Max = c.Max
	pc.Render = c.Renderer(c.Width)
	return pc
}

// Renderer builds the RenderFunc for the configured style. width overrides
// Width for the bar style when positive.
func (c *Config) Renderer(width int) progress.RenderFunc {
	switch c.Style {
	case StyleSpinner:
		spin := progress.SpinnerRenderer()
		suffix := c.Suffix
		if suffix == "" {
			suffix = " {index}"
		}
		return func(s progress.Snapshot) string {
			return spin(s) + progress.Expand(suffix, s)
		}
	case StyleCounter:
		return progress.CounterRenderer()
	case StyleTemplate:
		return progress.TemplateRenderer(c.Template)
	}

	style := progress.DefaultBarStyle()
	if c.Suffix != "" {
		style.Suffix = c.Suffix
	}
	if width > 0 {
		style.Width = width
	}
	return progress.BarRenderer(style)
}
