package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for progress
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Terminal progress indicators",
		Long: `Progress draws single-line progress indicators on a terminal.

Bounded indicators know their target and report percent complete and an
estimated time remaining. Infinite indicators only count. Both redraw in
place, hide the cursor while active and restore it on exit.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewCopyCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
