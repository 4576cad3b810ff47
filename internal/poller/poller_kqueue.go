//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package poller

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// kqueuePoller is the BSD/Darwin backend: one kqueue fd, fd readiness via
// EVFILT_READ/EVFILT_WRITE, timers via EVFILT_TIMER keyed by a synthetic
// identifier distinct from any real fd.
type kqueuePoller struct {
	mu sync.Mutex

	kq        int
	nextID    TimerHandle
	timerByID map[TimerHandle]time.Duration
	closed    bool
}

func New() (Poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, errors.Wrap(err, "poller: kqueue")
	}
	return &kqueuePoller{kq: kq, timerByID: make(map[TimerHandle]time.Duration)}, nil
}

// RegisterFD deletes any existing read/write filters for fd (ignoring
// ENOENT) before adding the requested ones, so a narrower second
// registration doesn't leave a stale filter armed.
func (p *kqueuePoller) RegisterFD(fd int, events Events) error {
	var changes []unix.Kevent_t
	changes = append(changes,
		unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: unix.EV_DELETE},
		unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: unix.EV_DELETE},
	)
	if _, err := unix.Kevent(p.kq, changes, nil, nil); err != nil && err != unix.ENOENT {
		return errors.Wrap(err, "poller: kevent delete")
	}

	changes = changes[:0]
	if events&Readable != 0 {
		changes = append(changes, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: unix.EV_ADD})
	}
	if events&Writable != 0 {
		changes = append(changes, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: unix.EV_ADD})
	}
	if len(changes) == 0 {
		return nil
	}
	if _, err := unix.Kevent(p.kq, changes, nil, nil); err != nil {
		return errors.Wrap(err, "poller: kevent add")
	}
	return nil
}

func (p *kqueuePoller) UnregisterFD(fd int) error {
	changes := []unix.Kevent_t{
		{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: unix.EV_DELETE},
		{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: unix.EV_DELETE},
	}
	if _, err := unix.Kevent(p.kq, changes, nil, nil); err != nil && err != unix.ENOENT {
		return errors.Wrap(err, "poller: kevent delete")
	}
	return nil
}

func (p *kqueuePoller) AddTimer(interval time.Duration, repeating bool) (TimerHandle, error) {
	p.mu.Lock()
	p.nextID++
	h := p.nextID
	p.timerByID[h] = interval
	p.mu.Unlock()

	flags := unix.EV_ADD
	if !repeating {
		flags |= unix.EV_ONESHOT
	}
	ev := unix.Kevent_t{
		Ident:  uint64(h),
		Filter: unix.EVFILT_TIMER,
		Flags:  uint16(flags),
		Data:   int64(interval / time.Millisecond),
	}
	if _, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil); err != nil {
		return 0, errors.Wrap(err, "poller: kevent add timer")
	}
	return h, nil
}

func (p *kqueuePoller) ModifyTimer(handle TimerHandle, interval time.Duration) error {
	p.mu.Lock()
	_, ok := p.timerByID[handle]
	if ok {
		p.timerByID[handle] = interval
	}
	p.mu.Unlock()
	if !ok {
		return &ErrInvalidHandle{Handle: handle}
	}
	ev := unix.Kevent_t{
		Ident:  uint64(handle),
		Filter: unix.EVFILT_TIMER,
		Flags:  unix.EV_ADD,
		Data:   int64(interval / time.Millisecond),
	}
	if _, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil); err != nil {
		return errors.Wrap(err, "poller: kevent modify timer")
	}
	return nil
}

func (p *kqueuePoller) RemoveTimer(handle TimerHandle) error {
	p.mu.Lock()
	_, ok := p.timerByID[handle]
	delete(p.timerByID, handle)
	p.mu.Unlock()
	if !ok {
		return nil
	}
	ev := unix.Kevent_t{Ident: uint64(handle), Filter: unix.EVFILT_TIMER, Flags: unix.EV_DELETE}
	_, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil)
	if err != nil && err != unix.ENOENT {
		return errors.Wrap(err, "poller: kevent remove timer")
	}
	return nil
}

func (p *kqueuePoller) Wait() (Result, error) {
	res, ok, err := p.wait(nil)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, errors.New("poller: wait returned no event with no timeout")
	}
	return res, nil
}

func (p *kqueuePoller) WaitTimeout(timeout time.Duration) (Result, bool, error) {
	ts := unix.NsecToTimespec(timeout.Nanoseconds())
	return p.wait(&ts)
}

func (p *kqueuePoller) wait(timeout *unix.Timespec) (Result, bool, error) {
	var events [1]unix.Kevent_t
	for {
		n, err := unix.Kevent(p.kq, nil, events[:], timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Result{}, false, errors.Wrap(err, "poller: kevent wait")
		}
		if n == 0 {
			return Result{}, false, nil
		}
		ev := events[0]
		if ev.Filter == unix.EVFILT_TIMER {
			exp := ev.Data
			if exp < 1 {
				exp = 1
			}
			return Result{Kind: TimerExpired, Timer: TimerHandle(ev.Ident), Expirations: uint64(exp)}, true, nil
		}
		fd := int(ev.Ident)
		if ev.Flags&unix.EV_ERROR != 0 {
			return Result{Kind: FDError, FD: fd}, true, nil
		}
		if ev.Filter == unix.EVFILT_WRITE {
			return Result{Kind: FDWritable, FD: fd}, true, nil
		}
		return Result{Kind: FDReadable, FD: fd}, true, nil
	}
}

func (p *kqueuePoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Close(p.kq)
}
