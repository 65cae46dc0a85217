package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/progress/internal/config"
	"github.com/harrison/progress/internal/display"
	"github.com/harrison/progress/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commonOptions are the flags shared by every subcommand.
type commonOptions struct {
	configPath string
	style      string
	message    string
	logLevel   string
	logDir     string
	quiet      bool
}

// ApplyFlags applies flags to a command flag set.
func (opts *commonOptions) ApplyFlags(fs *pflag.FlagSet) {
	fs.StringVar(&opts.configPath, "config", "", "path to config file (default: nearest progress.yaml or $PROGRESS_CONFIG)")
	fs.StringVar(&opts.style, "style", "", "render style: bar, spinner, counter or template")
	fs.StringVarP(&opts.message, "message", "m", "", "text printed before the status")
	fs.StringVar(&opts.logLevel, "log-level", "", "log verbosity: trace, debug, info, warn, error")
	fs.StringVar(&opts.logDir, "log-dir", "", "also write a run log into this directory")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress console logs and warnings")
}

// loadConfig reads the config file and applies the flags the user set
// explicitly. Flags take precedence over the file.
func (opts *commonOptions) loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		resolved, err := config.ResolvePath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
		path = resolved
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if fs.Changed("style") {
		cfg.Style = strings.ToLower(opts.style)
	}
	if fs.Changed("message") {
		cfg.Message = opts.message
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns the console logger writing to the command's stdout, or a
// no-op logger in quiet mode. With --log-dir the messages also go to a run
// log file, closed by the returned function.
func (opts *commonOptions) newLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, func() error, error) {
	var console logger.Logger = logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	if opts.quiet {
		console = logger.NewNoOpLogger()
	}
	if opts.logDir == "" {
		return console, func() error { return nil }, nil
	}

	file, err := logger.NewFileLogger(opts.logDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return logger.MultiLogger{console, file}, file.Close, nil
}

// warn displays w on out unless quiet.
func (opts *commonOptions) warn(out io.Writer, w display.Warning) {
	if opts.quiet {
		return
	}
	w.Display(out)
}
