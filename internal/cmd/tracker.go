package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/harrison/progress/internal/config"
	"github.com/harrison/progress/internal/display"
	"github.com/harrison/progress/pkg/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Bar width bounds when fitting the terminal.
const (
	minBarWidth = 10
	maxBarWidth = 60
)

// tracker is the part of *progress.Indicator and *progress.Progress the
// commands drive.
type tracker interface {
	progress.Tracker
	IsTTY() (bool, error)
	Run(fn func() error) error
	Snapshot() progress.Snapshot
}

func newTracker(message string, pc progress.Config, infinite bool) (tracker, error) {
	if infinite {
		ind, err := progress.NewInfinite(message, pc)
		if err != nil {
			return nil, err
		}
		return ind, nil
	}
	p, err := progress.NewProgress(message, pc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// openTracker creates the indicator drawing on the command's stderr. An
// output that is not a terminal is reported with a warning on stdout and the
// work runs without a display.
func openTracker(cmd *cobra.Command, opts *commonOptions, cfg *config.Config, infinite bool) (tracker, error) {
	out := cmd.ErrOrStderr()
	pc := cfg.ProgressConfig(out)
	pc.Render = cfg.Renderer(barWidth(out, cfg.Width))

	t, err := newTracker(cfg.Message, pc, infinite)
	if errors.Is(err, progress.ErrUnsupportedStream) {
		opts.warn(cmd.OutOrStdout(), display.WarnNotTerminal("stderr"))
		pc.Output = nil
		return newTracker(cfg.Message, pc, infinite)
	}
	if err != nil {
		return nil, err
	}

	if ok, _ := t.IsTTY(); !ok {
		opts.warn(cmd.OutOrStdout(), display.WarnNotTerminal("stderr"))
	}
	return t, nil
}

// barWidth returns width when set, otherwise half the terminal width of out.
// Zero means the renderer's default.
func barWidth(out io.Writer, width int) int {
	if width > 0 {
		return width
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return fitBarWidth(cols)
}

func fitBarWidth(cols int) int {
	return min(max(cols/2, minBarWidth), maxBarWidth)
}
