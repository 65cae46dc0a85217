package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/progress/internal/display"
	"github.com/harrison/progress/internal/filelock"
	"github.com/harrison/progress/pkg/progress"
	"github.com/spf13/cobra"
)

// copySuffix replaces the bar and spinner suffix unless the config sets one.
const copySuffix = " {index:bytes}/{max:bytes} ({percent:%.0f}%) eta {eta_td}"

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	var opts commonOptions
	cmd := &cobra.Command{
		Use:   "copy <source> <destination>",
		Short: "Copy a file showing byte progress",
		Long: `Copy a file while drawing its byte progress on stderr.

The destination is written through a temporary file and renamed into place,
holding <destination>.lock so concurrent copies to the same path never
interleave.

Examples:
  progress copy image.iso /mnt/usb/image.iso
  progress copy --style spinner dump.sql backup/dump.sql`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return copyCommand(cmd, &opts, args[0], args[1])
		},
	}
	opts.ApplyFlags(cmd.Flags())
	return cmd
}

func copyCommand(cmd *cobra.Command, opts *commonOptions, src, dst string) error {
	cfg, err := opts.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log, closeLog, err := opts.newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to access source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		if dstInfo.IsDir() {
			dst = filepath.Join(dst, filepath.Base(src))
		} else {
			opts.warn(cmd.OutOrStdout(), display.WarnOverwrite(dst))
		}
	}

	cfg.Max = int(info.Size())
	if cfg.Suffix == "" {
		cfg.Suffix = copySuffix
	}
	if cfg.Message == "" {
		cfg.Message = filepath.Base(src) + " "
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	t, err := openTracker(cmd, opts, cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create indicator: %w", err)
	}

	log.LogDebug(fmt.Sprintf("Copying %s to %s", src, dst))
	err = t.Run(func() error {
		_, err := filelock.LockAndCopy(dst, progress.NewReader(t, contextReader{cmd.Context(), f}))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}

	log.LogBytesSummary("Copied", t.Snapshot())
	return nil
}

// contextReader fails reads once ctx is done, so an interrupted copy stops
// at the next chunk and leaves the destination untouched.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
