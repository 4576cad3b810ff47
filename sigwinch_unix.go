//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package termisu

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// sigwinchFlag is set by the signal handler goroutine only via an atomic
// store — no allocation, no channel send — so it is safe to touch from
// signal-delivery context, per spec §5/§9.
var sigwinchFlag atomic.Bool

// watchSigwinch installs a SIGWINCH watcher and returns a stop function.
// Go delivers signals to a runtime-owned channel and re-dispatches to a
// goroutine rather than running arbitrary code inside the actual signal
// handler, but the consumer goroutine still follows the same discipline
// the spec requires of the handler itself: the only action taken is an
// atomic store.
func watchSigwinch() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				sigwinchFlag.Store(true)
			case <-done:
				signal.Stop(ch)
				return
			}
		}
	}()
	return func() { close(done) }
}

func consumeSigwinch() bool {
	return sigwinchFlag.CompareAndSwap(true, false)
}
