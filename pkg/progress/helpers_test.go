package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// fakeTerminal is an in-memory output that reports itself as a terminal.
type fakeTerminal struct {
	bytes.Buffer
	tty bool
}

func (f *fakeTerminal) IsTerminal() bool { return f.tty }

func newTerminal() *fakeTerminal { return &fakeTerminal{tty: true} }

// failingTerminal accepts okWrites writes and fails every write after that.
type failingTerminal struct {
	okWrites int
	writes   int
}

var errBrokenPipe = errors.New("broken pipe")

func (f *failingTerminal) IsTerminal() bool { return true }

func (f *failingTerminal) Write(p []byte) (int, error) {
	f.writes++
	if f.writes > f.okWrites {
		return 0, errBrokenPipe
	}
	return len(p), nil
}

type fakeClock struct {
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig(out *fakeTerminal, clock *fakeClock) Config {
	cfg := DefaultConfig()
	cfg.Output = out
	cfg.Clock = clock.Now
	return cfg
}

// finishOnCleanup finishes ind when the test ends so its exit hook does not
// outlive the test.
func finishOnCleanup(t *testing.T, ind *Indicator) {
	t.Helper()
	t.Cleanup(func() { _ = ind.Finish() })
}
