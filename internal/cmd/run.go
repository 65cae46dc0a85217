package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/progress/pkg/progress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runOptions struct {
	commonOptions

	max      int
	delay    time.Duration
	infinite bool
}

// ApplyFlags applies flags to a command flag set.
func (opts *runOptions) ApplyFlags(fs *pflag.FlagSet) {
	opts.commonOptions.ApplyFlags(fs)
	fs.IntVarP(&opts.max, "max", "n", progress.DefaultMax, "number of work units")
	fs.DurationVar(&opts.delay, "delay", 0, "duration of one work unit (e.g. 50ms)")
	fs.BoolVar(&opts.infinite, "infinite", false, "use an unbounded indicator")
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render an indicator over simulated work",
		Long: `Render a progress indicator on stderr while processing simulated work
units, then log a summary on stdout.

Configuration is loaded from the nearest progress.yaml if present.
CLI flags override configuration file settings.

Examples:
  progress run --max 200 --delay 20ms
  progress run --style spinner --infinite -m "Waiting "
  progress run --config ci.yaml --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, &opts)
		},
	}
	opts.ApplyFlags(cmd.Flags())
	return cmd
}

func runCommand(cmd *cobra.Command, opts *runOptions) error {
	fs := cmd.Flags()
	cfg, err := opts.loadConfig(fs)
	if err != nil {
		return err
	}
	if fs.Changed("max") {
		cfg.Max = opts.max
	}
	if fs.Changed("delay") {
		cfg.Delay = opts.delay
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("invalid configuration: delay must be >= 0, got %s", cfg.Delay)
	}

	log, closeLog, err := opts.newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log.LogDebug(fmt.Sprintf("Config: style=%s max=%d delay=%s", cfg.Style, cfg.Max, cfg.Delay))

	t, err := openTracker(cmd, &opts.commonOptions, cfg, opts.infinite)
	if err != nil {
		return fmt.Errorf("failed to create indicator: %w", err)
	}

	units := make([]struct{}, max(cfg.Max, 0))
	ctx := cmd.Context()
	log.LogInfo(fmt.Sprintf("Processing %d unit(s)", len(units)))

	for range progress.IterSlice(t, units) {
		if err := work(ctx, cfg.Delay); err != nil {
			log.LogWarn("Interrupted")
			return err
		}
	}
	if err := t.Err(); err != nil {
		return fmt.Errorf("failed to render progress: %w", err)
	}

	log.LogSummary("Completed", t.Snapshot())
	return nil
}

// work simulates one unit taking delay, returning early if ctx is done.
func work(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
