package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	// color.NoColor is set when stdout is not a terminal or NO_COLOR is present
	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnNotTerminal creates the warning shown when progress rendering is
// disabled because the output is not a terminal.
func WarnNotTerminal(stream string) Warning {
	return Warning{
		Title:      "Progress display disabled",
		Message:    fmt.Sprintf("%s is not an interactive terminal, so no progress will be drawn.", stream),
		Suggestion: "Set check_tty: false in the config file to render anyway.",
	}
}

// WarnOverwrite creates the warning shown before a copy replaces an existing file.
func WarnOverwrite(path string) Warning {
	return Warning{
		Title: "Destination exists and will be replaced",
		Files: []string{path},
	}
}
