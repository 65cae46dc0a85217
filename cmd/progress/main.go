package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/progress/internal/cmd"
	"github.com/harrison/progress/pkg/progress"
)

// Version is the current version of the progress application
const Version = "1.0.0"

func main() {
	cmd.Version = Version
	rootCmd := cmd.NewRootCommand()

	// SIGINT/SIGTERM cancel the command so it can finish its indicator
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	// Restore the cursor of anything still drawing
	progress.RunExitHooks()

	os.Exit(exitCode(err))
}

// exitCode reports err on stderr and maps it to the process status:
// 130 for an interrupted command, 1 for any other failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
