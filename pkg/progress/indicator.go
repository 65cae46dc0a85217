package progress

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// RenderFunc returns the status fragment drawn after the message on each Update.
type RenderFunc func(s Snapshot) string

// kind supplies the behavior that differs between unbounded and bounded
// indicators.
type kind interface {
	// start runs when a scoped block or iteration begins.
	start(i *Indicator) error
	// inferLength receives the length of a sequence about to be consumed.
	inferLength(n int)
	// fill adds kind-specific metrics to a snapshot.
	fill(s *Snapshot)
}

type unbounded struct{}

func (unbounded) start(*Indicator) error { return nil }
func (unbounded) inferLength(int)        {}
func (unbounded) fill(*Snapshot)         {}

// Indicator is the timing and rendering engine shared by every indicator. On
// its own it is the unbounded ("infinite") kind.
type Indicator struct {
	message  string
	index    int
	start    time.Time
	banked   int // whole seconds from finished segments
	finished bool
	width    int // widest fragment written in the current segment

	out        io.Writer
	checkTTY   bool
	hideCursor bool
	clock      func() time.Time
	render     RenderFunc
	kind       kind
	guard      *exitGuard

	smaWindow int
	steps     []float64
	lastStep  time.Time

	err error
}

// NewInfinite creates an unbounded indicator. When the output is an
// interactive terminal the cursor is hidden and the message is written
// immediately.
func NewInfinite(message string, cfg Config) (*Indicator, error) {
	return newIndicator(message, cfg, unbounded{})
}

func newIndicator(message string, cfg Config, k kind) (*Indicator, error) {
	cfg = cfg.normalize()
	now := cfg.Clock()

	i := &Indicator{
		message:    message,
		start:      now,
		out:        cfg.Output,
		checkTTY:   cfg.CheckTTY,
		hideCursor: cfg.HideCursor,
		clock:      cfg.Clock,
		render:     cfg.Render,
		kind:       k,
		smaWindow:  cfg.SMAWindow,
		lastStep:   now,
	}

	ok, err := i.enabled()
	if err != nil {
		return nil, err
	}
	if !ok {
		return i, nil
	}

	if i.hideCursor {
		if _, err := io.WriteString(i.out, HideCursor); err != nil {
			return nil, err
		}
		i.guard = registerExitHook(func() { _ = i.Finish() })
	}
	if _, err := io.WriteString(i.out, i.message); err != nil {
		i.guard.Release()
		return nil, err
	}
	if err := flush(i.out); err != nil {
		i.guard.Release()
		return nil, err
	}
	return i, nil
}

func (i *Indicator) indicator() *Indicator { return i }

// enabled reports whether rendering takes place at all.
func (i *Indicator) enabled() (bool, error) {
	if i.out == nil {
		return false, nil
	}
	return i.IsTTY()
}

// IsTTY reports whether the output is an interactive terminal. It is always
// true when CheckTTY is off, and fails with ErrUnsupportedStream when the
// output cannot tell.
func (i *Indicator) IsTTY() (bool, error) {
	if !i.checkTTY {
		return true, nil
	}
	return isTerminal(i.out)
}

// Message returns the text prefixed to every render.
func (i *Indicator) Message() string { return i.message }

// SetMessage replaces the message used by subsequent renders.
func (i *Indicator) SetMessage(message string) { i.message = message }

// Index returns the progress counter.
func (i *Indicator) Index() int { return i.index }

// Finished reports whether Finish has run since the last Next.
func (i *Indicator) Finished() bool { return i.finished }

// Elapsed returns the whole seconds spent active, across every segment.
// While finished it holds at the banked value.
func (i *Indicator) Elapsed() int {
	if i.finished {
		return i.banked
	}
	live := int(i.clock().Sub(i.start) / time.Second)
	if live < 0 {
		live = 0
	}
	return live + i.banked
}

// ElapsedDuration returns Elapsed as a time.Duration.
func (i *Indicator) ElapsedDuration() time.Duration {
	return time.Duration(i.Elapsed()) * time.Second
}

// Avg returns the mean seconds per unit, or 0 before any positive progress.
func (i *Indicator) Avg() float64 {
	if i.index > 0 {
		return float64(i.Elapsed()) / float64(i.index)
	}
	return 0
}

// SMA returns the simple moving average of seconds per unit over the last
// SMAWindow steps, or 0 before any step.
func (i *Indicator) SMA() float64 {
	if len(i.steps) == 0 {
		return 0
	}
	var sum float64
	for _, s := range i.steps {
		sum += s
	}
	return sum / float64(len(i.steps))
}

func (i *Indicator) recordStep(now time.Time, n int) {
	dt := now.Sub(i.lastStep).Seconds()
	i.lastStep = now
	if n <= 0 {
		return
	}
	i.steps = append(i.steps, dt/float64(n))
	if len(i.steps) > i.smaWindow {
		i.steps = i.steps[len(i.steps)-i.smaWindow:]
	}
}

// Snapshot captures the current metrics.
func (i *Indicator) Snapshot() Snapshot {
	s := Snapshot{
		Message: i.message,
		Index:   i.index,
		Elapsed: i.Elapsed(),
		Avg:     i.Avg(),
		SMA:     i.SMA(),
	}
	i.kind.fill(&s)
	return s
}

// Lookup returns the named metric for status templates. Names with a leading
// underscore and unknown names yield nil.
func (i *Indicator) Lookup(name string) any {
	return i.Snapshot().Lookup(name)
}

// Update redraws the status line through the configured RenderFunc.
func (i *Indicator) Update() error {
	if i.render == nil {
		return nil
	}
	return i.Write(i.render(i.Snapshot()))
}

// Start prepares a loop. Bounded indicators draw their initial state here.
func (i *Indicator) Start() error {
	return i.kind.start(i)
}

// ClearLine returns the cursor to column 0 and clears the line.
func (i *Indicator) ClearLine() error {
	ok, err := i.enabled()
	if err != nil || !ok {
		return err
	}
	_, err = io.WriteString(i.out, ClearLine)
	return err
}

// Write redraws the line as message followed by s. The fragment is padded to
// the widest fragment written so far so that shorter renders leave no
// residue of earlier ones.
func (i *Indicator) Write(s string) error {
	ok, err := i.enabled()
	if err != nil || !ok {
		return err
	}

	if w := utf8.RuneCountInString(s); w > i.width {
		i.width = w
	}
	line := fmt.Sprintf("\r%s%-*s", i.message, i.width, s)
	if _, err := io.WriteString(i.out, line); err != nil {
		return err
	}
	return flush(i.out)
}

// WriteLine clears the line and writes line verbatim, without the message.
func (i *Indicator) WriteLine(line string) error {
	ok, err := i.enabled()
	if err != nil || !ok {
		return err
	}

	if err := i.ClearLine(); err != nil {
		return err
	}
	if _, err := io.WriteString(i.out, line); err != nil {
		return err
	}
	return flush(i.out)
}

// Finish ends the current segment: elapsed time is banked, a newline is
// written and the cursor is shown again. Calling it while already finished
// does nothing.
func (i *Indicator) Finish() error {
	ok, err := i.enabled()
	if err != nil || !ok {
		return err
	}
	if i.finished {
		return nil
	}

	i.banked = i.Elapsed()
	i.finished = true

	// The cursor is restored and the hook released even when the newline
	// fails; the first error is returned.
	_, err = io.WriteString(i.out, "\n")
	if i.hideCursor {
		i.guard.Release()
		i.guard = nil
		if _, werr := io.WriteString(i.out, ShowCursor); err == nil {
			err = werr
		}
	}
	if err != nil {
		return err
	}
	return flush(i.out)
}

// Close calls Finish, for use with defer.
func (i *Indicator) Close() error {
	return i.Finish()
}

// Next advances the index by n and redraws. A finished indicator resumes:
// timing restarts and previously banked time is kept.
func (i *Indicator) Next(n int) error {
	now := i.clock()
	if i.finished {
		i.start = now
		i.lastStep = now
		i.finished = false
		i.width = 0
	}
	i.recordStep(now, n)
	i.index += n
	return i.Update()
}

// Run brackets fn with Start and Finish. Finish runs on every exit path,
// including panics; an error from fn takes precedence over one from Finish.
func (i *Indicator) Run(fn func() error) (err error) {
	if err := i.Start(); err != nil {
		return err
	}
	defer func() {
		if ferr := i.Finish(); ferr != nil && err == nil {
			err = ferr
		}
	}()
	return fn()
}

// Err returns the first rendering error raised while iterating with Iter,
// IterSlice or IterN.
func (i *Indicator) Err() error { return i.err }

func (i *Indicator) setErr(err error) {
	if i.err == nil {
		i.err = err
	}
}
