// Package progress renders single-line, continuously updating progress
// indicators to an interactive terminal.
//
// Two kinds of indicator share one engine:
//
//   - Indicator (NewInfinite) tracks elapsed time and an index counter with no
//     known end, suitable for spinners and counters.
//   - Progress (NewProgress) adds a target maximum and derives the completed
//     fraction, percentage, remaining units and ETA.
//
// # Usage
//
// Drive an indicator manually:
//
//	cfg := progress.DefaultConfig()
//	cfg.Max = len(files)
//	cfg.Render = progress.BarRenderer(progress.DefaultBarStyle())
//	bar, err := progress.NewProgress("Loading ", cfg)
//	if err != nil {
//	    return err
//	}
//	defer bar.Close()
//	for _, f := range files {
//	    process(f)
//	    if err := bar.Next(1); err != nil {
//	        return err
//	    }
//	}
//
// Or let it follow a sequence; the maximum is taken from the slice length and
// Finish runs however the loop exits:
//
//	for f := range progress.IterSlice(bar, files) {
//	    process(f)
//	}
//	if err := bar.Err(); err != nil {
//	    return err
//	}
//
// # Terminal output
//
// Nothing is written unless the output is non-nil and reports itself as a
// terminal (see Config.CheckTTY). While active the cursor is hidden with
// ESC[?25l and every redraw starts with a carriage return so the line is
// overwritten in place. Finish writes a newline and shows the cursor again.
//
// Go has no atexit; a program that may exit while an indicator is active
// should defer RunExitHooks in main or install HandleSignals so the cursor is
// restored.
//
// An indicator belongs to one goroutine. Concurrent updates, and several
// indicators sharing one output, are not supported.
package progress
