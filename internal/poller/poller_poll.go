//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package poller

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type softTimer struct {
	interval       time.Duration
	repeating      bool
	scheduledFirst time.Time
	next           time.Time
}

// pollPoller is the portable fallback backend: a poll() loop over an
// in-memory pollfd array plus software timers driven off the monotonic
// clock. Its defining correctness requirement (spec §4.8) is that a
// caller-supplied timeout is a wall-clock deadline honored even when
// timers are armed — a poll loop that only wakes on fd-readiness or timer
// expiry would under-honor it.
type pollPoller struct {
	mu sync.Mutex

	fds    map[int]Events
	timers map[TimerHandle]*softTimer
	nextID TimerHandle
	closed bool
}

func New() (Poller, error) {
	return &pollPoller{
		fds:    make(map[int]Events),
		timers: make(map[TimerHandle]*softTimer),
	}, nil
}

func (p *pollPoller) RegisterFD(fd int, events Events) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fds[fd] = events
	return nil
}

func (p *pollPoller) UnregisterFD(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fds, fd)
	return nil
}

func (p *pollPoller) AddTimer(interval time.Duration, repeating bool) (TimerHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	h := p.nextID
	now := time.Now()
	p.timers[h] = &softTimer{
		interval:       interval,
		repeating:      repeating,
		scheduledFirst: now.Add(interval),
		next:           now.Add(interval),
	}
	return h, nil
}

func (p *pollPoller) ModifyTimer(handle TimerHandle, interval time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.timers[handle]
	if !ok {
		return &ErrInvalidHandle{Handle: handle}
	}
	now := time.Now()
	t.interval = interval
	t.scheduledFirst = now.Add(interval)
	t.next = now.Add(interval)
	return nil
}

func (p *pollPoller) RemoveTimer(handle TimerHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.timers, handle)
	return nil
}

// Close drops every fd registration and timer. Idempotent.
func (p *pollPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.fds = make(map[int]Events)
	p.timers = make(map[TimerHandle]*softTimer)
	return nil
}

func (p *pollPoller) Wait() (Result, error) {
	res, ok, err := p.waitUntil(nil)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, errors.New("poller: wait returned no event with no timeout")
	}
	return res, nil
}

func (p *pollPoller) WaitTimeout(timeout time.Duration) (Result, bool, error) {
	deadline := time.Now().Add(timeout)
	return p.waitUntil(&deadline)
}

// waitUntil implements the deadline-respecting loop: each iteration it
// recomputes the minimum of (a) time remaining until deadline and (b) time
// until the soonest timer, polls for at most that long, and returns "no
// event" the instant the deadline passes even if timers remain armed.
func (p *pollPoller) waitUntil(deadline *time.Time) (Result, bool, error) {
	for {
		now := time.Now()

		remaining := time.Duration(-1)
		if deadline != nil {
			remaining = deadline.Sub(now)
			if remaining < 0 {
				return Result{}, false, nil
			}
		}

		p.mu.Lock()
		pfds, fdOrder := p.buildPollFDs()
		nextTimer, dueNow := p.nextTimerWait(now)
		p.mu.Unlock()

		if dueNow.handle != 0 {
			return p.fireTimer(dueNow.handle, now), true, nil
		}

		effective := minPositive(remaining, nextTimer)
		timeoutMS := -1
		if effective >= 0 {
			timeoutMS = int(effective / time.Millisecond)
		}

		n, err := unix.Poll(pfds, timeoutMS)
		if err == unix.EINTR {
			// deadline is an absolute time.Time; the next iteration's
			// Sub(now) naturally accounts for time already spent.
			continue
		}
		if err != nil {
			return Result{}, false, errors.Wrap(err, "poller: poll")
		}
		if n > 0 {
			for i, pfd := range pfds {
				if pfd.Revents == 0 {
					continue
				}
				fd := fdOrder[i]
				switch {
				case pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0:
					return Result{Kind: FDError, FD: fd}, true, nil
				case pfd.Revents&unix.POLLOUT != 0:
					return Result{Kind: FDWritable, FD: fd}, true, nil
				default:
					return Result{Kind: FDReadable, FD: fd}, true, nil
				}
			}
		}

		if deadline != nil && !time.Now().Before(*deadline) {
			return Result{}, false, nil
		}
		// n == 0 with no deadline reached: either a timer just became due
		// (checked again at loop top) or poll's timeout granularity woke us
		// early; loop and recompute.
	}
}

func (p *pollPoller) buildPollFDs() ([]unix.PollFd, []int) {
	pfds := make([]unix.PollFd, 0, len(p.fds))
	order := make([]int, 0, len(p.fds))
	for fd, ev := range p.fds {
		var mask int16
		if ev&Readable != 0 {
			mask |= unix.POLLIN
		}
		if ev&Writable != 0 {
			mask |= unix.POLLOUT
		}
		pfds = append(pfds, unix.PollFd{Fd: int32(fd), Events: mask})
		order = append(order, fd)
	}
	return pfds, order
}

type dueTimer struct {
	handle TimerHandle
}

// nextTimerWait returns the duration until the soonest-armed timer (-1 if
// none) and, if one is already due, identifies it directly so the caller
// can fire it without an extra poll() round trip.
func (p *pollPoller) nextTimerWait(now time.Time) (time.Duration, dueTimer) {
	best := time.Duration(-1)
	for h, t := range p.timers {
		until := t.next.Sub(now)
		if until <= 0 {
			return 0, dueTimer{handle: h}
		}
		if best < 0 || until < best {
			best = until
		}
	}
	return best, dueTimer{}
}

func (p *pollPoller) fireTimer(handle TimerHandle, now time.Time) Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.timers[handle]
	if !ok {
		return Result{}
	}
	exp := int64(now.Sub(t.scheduledFirst)/t.interval) + 1
	if exp < 1 {
		exp = 1
	}
	if t.repeating {
		t.next = t.scheduledFirst.Add(time.Duration(exp) * t.interval)
	} else {
		delete(p.timers, handle)
	}
	return Result{Kind: TimerExpired, Timer: handle, Expirations: uint64(exp)}
}

func minPositive(a, b time.Duration) time.Duration {
	if a < 0 {
		return b
	}
	if b < 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}
