package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInfinite_Terminal(t *testing.T) {
	out := newTerminal()
	before := exitHookCount()

	ind, err := NewInfinite("Working ", testConfig(out, newClock()))
	require.NoError(t, err)

	assert.Equal(t, HideCursor+"Working ", out.String())
	assert.Equal(t, before+1, exitHookCount(), "exit hook should be registered")
	assert.Equal(t, 0, ind.Index())

	require.NoError(t, ind.Finish())
	assert.Equal(t, before, exitHookCount(), "exit hook should be released")
}

func TestNewInfinite_NoCursorHiding(t *testing.T) {
	out := newTerminal()
	cfg := testConfig(out, newClock())
	cfg.HideCursor = false
	before := exitHookCount()

	ind, err := NewInfinite("Working ", cfg)
	require.NoError(t, err)
	require.NoError(t, ind.Finish())

	assert.Equal(t, "Working \n", out.String())
	assert.Equal(t, before, exitHookCount())
}

func TestRenderingDisabled(t *testing.T) {
	tests := []struct {
		name string
		out  *fakeTerminal
	}{
		{name: "non-interactive output", out: &fakeTerminal{tty: false}},
		{name: "nil output", out: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Clock = newClock().Now
			cfg.Render = CounterRenderer()
			if tt.out != nil {
				cfg.Output = tt.out
			} else {
				cfg.Output = nil
			}
			before := exitHookCount()

			p, err := NewProgress("Loading ", cfg)
			require.NoError(t, err)
			require.NoError(t, p.Start())
			require.NoError(t, p.Next(1))
			require.NoError(t, p.Write("fragment"))
			require.NoError(t, p.WriteLine("line"))
			require.NoError(t, p.ClearLine())
			require.NoError(t, p.Finish())

			assert.Equal(t, before, exitHookCount())
			assert.Equal(t, 1, p.Index())
			assert.False(t, p.Finished(), "finish is only meaningful while rendering")
			if tt.out != nil {
				assert.Empty(t, tt.out.String())
			}
		})
	}
}

func TestIsTTY(t *testing.T) {
	t.Run("unsupported stream", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Output = &bytes.Buffer{}

		_, err := NewInfinite("x", cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedStream)
		assert.Contains(t, err.Error(), "CheckTTY")
	})

	t.Run("check disabled", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cfg := DefaultConfig()
		cfg.Output = buf
		cfg.CheckTTY = false
		cfg.HideCursor = false

		ind, err := NewInfinite("x", cfg)
		require.NoError(t, err)

		tty, err := ind.IsTTY()
		require.NoError(t, err)
		assert.True(t, tty)
		assert.Equal(t, "x", buf.String())
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()

		cfg := DefaultConfig()
		cfg.Output = f

		ind, err := NewInfinite("x", cfg)
		require.NoError(t, err)
		tty, err := ind.IsTTY()
		require.NoError(t, err)
		assert.False(t, tty)

		info, err := f.Stat()
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})
}

func TestWrite_PadsToWidestFragment(t *testing.T) {
	out := newTerminal()
	cfg := testConfig(out, newClock())
	cfg.HideCursor = false

	ind, err := NewInfinite("msg ", cfg)
	require.NoError(t, err)
	out.Reset()

	require.NoError(t, ind.Write("abcd"))
	require.NoError(t, ind.Write("ab"))
	require.NoError(t, ind.Write("abcdef"))
	require.NoError(t, ind.Write(""))

	want := "\rmsg abcd" + "\rmsg ab  " + "\rmsg abcdef" + "\rmsg       "
	assert.Equal(t, want, out.String())
}

func TestWrite_CountsRunes(t *testing.T) {
	out := newTerminal()
	cfg := testConfig(out, newClock())
	cfg.HideCursor = false

	ind, err := NewInfinite("", cfg)
	require.NoError(t, err)
	out.Reset()

	require.NoError(t, ind.Write("⠋⠋⠋"))
	require.NoError(t, ind.Write("a"))

	assert.Equal(t, "\r⠋⠋⠋\ra  ", out.String())
}

func TestWriteLine(t *testing.T) {
	out := newTerminal()
	cfg := testConfig(out, newClock())
	cfg.HideCursor = false

	ind, err := NewInfinite("msg ", cfg)
	require.NoError(t, err)
	out.Reset()

	require.NoError(t, ind.WriteLine("done"))
	assert.Equal(t, ClearLine+"done", out.String())
}

func TestFinish_Idempotent(t *testing.T) {
	out := newTerminal()
	before := exitHookCount()

	ind, err := NewInfinite("msg ", testConfig(out, newClock()))
	require.NoError(t, err)

	require.NoError(t, ind.Finish())
	require.NoError(t, ind.Finish())
	require.NoError(t, ind.Close())

	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.Equal(t, 1, strings.Count(out.String(), ShowCursor))
	assert.Equal(t, before, exitHookCount())
	assert.True(t, ind.Finished())
}

func TestElapsed_AccumulatesAcrossSegments(t *testing.T) {
	clock := newClock()
	ind, err := NewInfinite("", testConfig(newTerminal(), clock))
	require.NoError(t, err)

	assert.Equal(t, 0, ind.Elapsed())
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1, ind.Elapsed(), "elapsed is truncated to whole seconds")
	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, 3, ind.Elapsed())

	require.NoError(t, ind.Finish())
	clock.Advance(10 * time.Second)
	assert.Equal(t, 3, ind.Elapsed(), "time while finished is not counted")

	require.NoError(t, ind.Next(1))
	assert.False(t, ind.Finished())
	assert.Equal(t, 3, ind.Elapsed())
	clock.Advance(2 * time.Second)
	assert.Equal(t, 5, ind.Elapsed())
	assert.Equal(t, 5*time.Second, ind.ElapsedDuration())
}

func TestElapsed_Monotonic(t *testing.T) {
	clock := newClock()
	ind, err := NewInfinite("", testConfig(newTerminal(), clock))
	require.NoError(t, err)
	finishOnCleanup(t, ind)

	last := ind.Elapsed()
	for range 20 {
		clock.Advance(700 * time.Millisecond)
		require.NoError(t, ind.Next(1))
		e := ind.Elapsed()
		assert.GreaterOrEqual(t, e, last)
		last = e
	}
}

func TestAvg(t *testing.T) {
	clock := newClock()
	ind, err := NewInfinite("", testConfig(newTerminal(), clock))
	require.NoError(t, err)
	finishOnCleanup(t, ind)

	clock.Advance(10 * time.Second)
	assert.Zero(t, ind.Avg(), "avg with no progress is zero")

	require.NoError(t, ind.Next(4))
	assert.InDelta(t, 2.5, ind.Avg(), 1e-9)
}

func TestSMA(t *testing.T) {
	clock := newClock()
	cfg := testConfig(newTerminal(), clock)
	cfg.SMAWindow = 2

	ind, err := NewInfinite("", cfg)
	require.NoError(t, err)
	finishOnCleanup(t, ind)
	assert.Zero(t, ind.SMA())

	clock.Advance(4 * time.Second)
	require.NoError(t, ind.Next(1)) // 4s per unit
	clock.Advance(2 * time.Second)
	require.NoError(t, ind.Next(2)) // 1s per unit
	assert.InDelta(t, 2.5, ind.SMA(), 1e-9)

	clock.Advance(3 * time.Second)
	require.NoError(t, ind.Next(1)) // 3s per unit, first step leaves the window
	assert.InDelta(t, 2.0, ind.SMA(), 1e-9)

	clock.Advance(time.Second)
	require.NoError(t, ind.Next(0))
	assert.InDelta(t, 2.0, ind.SMA(), 1e-9, "zero steps are not sampled")
}

func TestNext_RestartResetsWidth(t *testing.T) {
	out := newTerminal()
	cfg := testConfig(out, newClock())
	cfg.HideCursor = false
	cfg.Render = TemplateRenderer("{index}")

	ind, err := NewInfinite("n=", cfg)
	require.NoError(t, err)

	require.NoError(t, ind.Next(100))
	require.NoError(t, ind.Finish())
	out.Reset()

	require.NoError(t, ind.Next(-99))
	assert.Equal(t, "\rn=1", out.String())
}

func TestUpdate_NoRenderer(t *testing.T) {
	out := newTerminal()
	ind, err := NewInfinite("msg", testConfig(out, newClock()))
	require.NoError(t, err)
	finishOnCleanup(t, ind)
	out.Reset()

	require.NoError(t, ind.Start())
	require.NoError(t, ind.Next(3))
	assert.Empty(t, out.String())
	assert.Equal(t, 3, ind.Index())
}

func TestRun(t *testing.T) {
	t.Run("returns callback error and finishes", func(t *testing.T) {
		out := newTerminal()
		ind, err := NewInfinite("", testConfig(out, newClock()))
		require.NoError(t, err)

		err = ind.Run(func() error {
			require.NoError(t, ind.Next(1))
			return errBrokenPipe
		})
		assert.ErrorIs(t, err, errBrokenPipe)
		assert.True(t, ind.Finished())
	})

	t.Run("finishes on panic", func(t *testing.T) {
		ind, err := NewInfinite("", testConfig(newTerminal(), newClock()))
		require.NoError(t, err)

		assert.Panics(t, func() {
			_ = ind.Run(func() error { panic("boom") })
		})
		assert.True(t, ind.Finished())
	})

	t.Run("reports finish error", func(t *testing.T) {
		out := &failingTerminal{okWrites: 2}
		cfg := DefaultConfig()
		cfg.Output = out

		ind, err := NewInfinite("", cfg)
		require.NoError(t, err)
		err = ind.Run(func() error { return nil })
		assert.ErrorIs(t, err, errBrokenPipe)
	})
}

func TestWriteErrorsPropagate(t *testing.T) {
	t.Run("hide cursor", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Output = &failingTerminal{okWrites: 0}
		before := exitHookCount()

		_, err := NewInfinite("msg", cfg)
		assert.ErrorIs(t, err, errBrokenPipe)
		assert.Equal(t, before, exitHookCount())
	})

	t.Run("initial message", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Output = &failingTerminal{okWrites: 1}
		before := exitHookCount()

		_, err := NewInfinite("msg", cfg)
		assert.ErrorIs(t, err, errBrokenPipe)
		assert.Equal(t, before, exitHookCount(), "hook is released when construction fails")
	})

	t.Run("update", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Output = &failingTerminal{okWrites: 2}
		cfg.Render = CounterRenderer()

		ind, err := NewInfinite("msg", cfg)
		require.NoError(t, err)
		assert.ErrorIs(t, ind.Next(1), errBrokenPipe)
		assert.Equal(t, 1, ind.Index())
		ind.guard.Release()
	})

	t.Run("finish still restores cursor", func(t *testing.T) {
		out := &failingTerminal{okWrites: 2}
		cfg := DefaultConfig()
		cfg.Output = out
		before := exitHookCount()

		ind, err := NewInfinite("msg", cfg)
		require.NoError(t, err)
		require.Equal(t, before+1, exitHookCount())

		assert.ErrorIs(t, ind.Finish(), errBrokenPipe)
		assert.Equal(t, before, exitHookCount(), "hook is released when the newline fails")
		assert.Equal(t, 4, out.writes, "show cursor is attempted after the failed newline")
		assert.True(t, ind.Finished())

		require.NoError(t, ind.Finish())
		assert.Equal(t, 4, out.writes)
	})
}

func TestLookup(t *testing.T) {
	clock := newClock()
	ind, err := NewInfinite("msg", testConfig(newTerminal(), clock))
	require.NoError(t, err)
	require.NoError(t, ind.Next(2))
	clock.Advance(4 * time.Second)

	tests := []struct {
		name string
		want any
	}{
		{"message", "msg"},
		{"index", 2},
		{"elapsed", 4},
		{"elapsed_td", 4 * time.Second},
		{"avg", 2.0},
		{"_width", nil},
		{"_index", nil},
		{"max", nil},
		{"percent", nil},
		{"no_such_field", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ind.Lookup(tt.name))
		})
	}
	require.NoError(t, ind.Finish())
}
