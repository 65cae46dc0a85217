package progress

import (
	"io"
	"os"
	"time"
)

// Default values applied by DefaultConfig.
const (
	DefaultSMAWindow = 10
	DefaultMax       = 100
)

// Config configures an indicator.
//
// Start from DefaultConfig: the zero value has a nil Output, which disables
// rendering altogether.
type Config struct {
	// Output receives all rendering. Nil disables rendering.
	// Default: os.Stderr
	Output io.Writer

	// SMAWindow is the number of recent steps averaged by SMA.
	// Default: 10
	SMAWindow int

	// CheckTTY probes Output for terminal support. When false the output is
	// treated as interactive unconditionally.
	// Default: true
	CheckTTY bool

	// HideCursor hides the terminal cursor while the indicator is active.
	// Default: true
	HideCursor bool

	// Max is the initial target of a bounded indicator. Ignored by NewInfinite.
	// Default: 100
	Max int

	// Render produces the status fragment drawn by Update. Nil makes Update
	// a no-op.
	Render RenderFunc

	// Clock is the time source.
	// Default: time.Now
	Clock func() time.Time
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Output:     os.Stderr,
		SMAWindow:  DefaultSMAWindow,
		CheckTTY:   true,
		HideCursor: true,
		Max:        DefaultMax,
		Clock:      time.Now,
	}
}

// normalize fills the fields whose zero value cannot be used as is.
func (c Config) normalize() Config {
	if c.SMAWindow <= 0 {
		c.SMAWindow = DefaultSMAWindow
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}
