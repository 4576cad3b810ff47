// Package poller provides a unified, platform-chosen multiplexer over
// file-descriptor readiness and kernel timers: epoll+timerfd on Linux,
// kqueue on BSD/Darwin, and a poll()-based software-timer fallback
// elsewhere. Grounding for the fd/readiness side comes from the
// termios/ioctl and raw-mode patterns seen across the example pack (no
// example repo implements epoll/kqueue pollers directly); the interface
// shape follows golang.org/x/sys/unix's own epoll/kqueue/poll wrappers.
package poller

import "time"

// Events is a bitmask of readiness interests passed to RegisterFD.
type Events uint8

const (
	Readable Events = 1 << iota
	Writable
)

// ResultKind discriminates a PollResult's payload.
type ResultKind uint8

const (
	FDReadable ResultKind = iota
	FDWritable
	FDError
	TimerExpired
)

// TimerHandle is an opaque, per-Poller unique timer identifier. It carries
// no platform fd outside the Poller that issued it and is invalid after
// RemoveTimer.
type TimerHandle uint64

// Result is a tagged variant over the four outcomes a Wait call can report.
type Result struct {
	Kind        ResultKind
	FD          int
	Timer       TimerHandle
	Expirations uint64
}

// Poller is the common contract implemented by the epoll, kqueue, and
// poll() backends. Every method is idempotent where the docstring says so;
// Wait and WaitTimeout both retry EINTR internally rather than surfacing it.
type Poller interface {
	// RegisterFD arms interest in fd for the given event mask. A second
	// call for the same fd replaces the mask rather than accumulating it.
	RegisterFD(fd int, events Events) error
	// UnregisterFD removes fd's registration. Unknown fds are a no-op.
	UnregisterFD(fd int) error

	// AddTimer installs a timer that first fires after interval and then,
	// if repeating, every interval thereafter.
	AddTimer(interval time.Duration, repeating bool) (TimerHandle, error)
	// ModifyTimer rearms an existing timer to a new interval. Returns
	// ErrInvalidHandle for an unknown handle.
	ModifyTimer(handle TimerHandle, interval time.Duration) error
	// RemoveTimer cancels a timer. Idempotent: removing an unknown or
	// already-removed handle is a no-op.
	RemoveTimer(handle TimerHandle) error

	// Wait blocks indefinitely for the next readiness event or timer
	// expiration.
	Wait() (Result, error)
	// WaitTimeout blocks for at most timeout before returning ok=false.
	WaitTimeout(timeout time.Duration) (res Result, ok bool, err error)

	// Close releases all fds and timer state. Idempotent.
	Close() error
}

// ErrInvalidHandle is returned by ModifyTimer for a handle the Poller does
// not recognize.
type ErrInvalidHandle struct{ Handle TimerHandle }

func (e *ErrInvalidHandle) Error() string {
	return "poller: invalid timer handle"
}
