package progress

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// exitHooks is the process-wide list of cleanup hooks. Signal delivery runs
// on its own goroutine, so the list is locked even though indicators are not.
var exitHooks struct {
	mu    sync.Mutex
	hooks []*exitGuard
}

// osExit is replaced in tests.
var osExit = os.Exit

// exitGuard is a registered cleanup hook. Release removes it without running it.
type exitGuard struct {
	fn func()
}

func registerExitHook(fn func()) *exitGuard {
	g := &exitGuard{fn: fn}

	exitHooks.mu.Lock()
	defer exitHooks.mu.Unlock()
	exitHooks.hooks = append(exitHooks.hooks, g)
	return g
}

// Release deregisters the hook. Releasing twice, or releasing a nil guard, is a no-op.
func (g *exitGuard) Release() {
	if g == nil {
		return
	}

	exitHooks.mu.Lock()
	defer exitHooks.mu.Unlock()
	for i, h := range exitHooks.hooks {
		if h == g {
			exitHooks.hooks = append(exitHooks.hooks[:i], exitHooks.hooks[i+1:]...)
			return
		}
	}
}

// RunExitHooks runs every registered hook, most recent first, and clears the
// list. Programs using indicators should defer it in main.
func RunExitHooks() {
	exitHooks.mu.Lock()
	hooks := exitHooks.hooks
	exitHooks.hooks = nil
	exitHooks.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].fn()
	}
}

func exitHookCount() int {
	exitHooks.mu.Lock()
	defer exitHooks.mu.Unlock()
	return len(exitHooks.hooks)
}

// HandleSignals runs the exit hooks and exits with status 130 when the process
// receives SIGINT or SIGTERM. The returned function stops the handler.
//
// The hooks run on the handler's goroutine while the owning loop may still be
// drawing. Indicators are not synchronized, so the restored cursor can land
// next to a partial redraw; the process exits immediately afterwards.
// Programs that need a clean final line should cancel their loop on the
// signal instead and let Finish run on the owning goroutine.
func HandleSignals() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			RunExitHooks()
			osExit(130)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}
