// Package display provides user-facing warning messages for the progress CLI.
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Progress display disabled",
//	    Message:    "stderr is not an interactive terminal",
//	    Suggestion: "Set check_tty: false in the config file",
//	}
//	warning.Display(os.Stdout)
//
// Or use the convenience factories:
//
//	display.WarnNotTerminal("stderr").Display(os.Stdout)
//	display.WarnOverwrite("backup.tar").Display(os.Stdout)
//
// Warnings are printed in yellow through fatih/color, which drops the color
// codes when the output is not a terminal or NO_COLOR is set. All functions
// accept io.Writer interfaces for testability.
package display
