package progress

import (
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
)

// Escape sequences written to the terminal.
const (
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"
	ClearLine  = "\r\x1b[K"
)

// ErrUnsupportedStream is returned when terminal detection is enabled but the
// output cannot report whether it is a terminal.
var ErrUnsupportedStream = errors.New("output cannot report terminal status")

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// terminalReporter lets writers that are not files declare themselves
// interactive, e.g. pseudo terminals and test doubles.
type terminalReporter interface {
	IsTerminal() bool
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) (bool, error) {
	switch v := w.(type) {
	case terminalReporter:
		return v.IsTerminal(), nil
	case fileDescriptor:
		fd := v.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	}
	return false, fmt.Errorf("%w: %T has no file descriptor; set CheckTTY to false to render anyway",
		ErrUnsupportedStream, w)
}

func flush(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
