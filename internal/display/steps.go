package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// StepIndicator lists the items of a multi-item operation as they are
// processed, one "[N/Total] name" line each.
type StepIndicator struct {
	writer  io.Writer
	total   int
	current int
}

// NewStepIndicator creates a new step indicator for total items
func NewStepIndicator(w io.Writer, total int) *StepIndicator {
	return &StepIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (s *StepIndicator) Start(header string) {
	fmt.Fprintf(s.writer, "%s:\n", header)
}

// Step displays progress for the next item: [N/Total] basename (cyan)
func (s *StepIndicator) Step(path string) {
	s.current++
	color.New(color.FgCyan).Fprintf(s.writer, "  [%d/%d] %s\n", s.current, s.total, filepath.Base(path))
}

// Complete displays a success message with a green checkmark
func (s *StepIndicator) Complete(message string) {
	fmt.Fprintf(s.writer, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), message)
}
