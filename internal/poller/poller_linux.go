//go:build linux

package poller

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type timerState struct {
	fd        int
	interval  time.Duration
	repeating bool
}

// epollPoller is the Linux backend: epoll_create1 for fd readiness,
// timerfd_create(CLOCK_MONOTONIC) per timer, each timerfd registered into
// the same epoll set so Wait only ever blocks on one syscall.
type epollPoller struct {
	mu sync.Mutex

	epfd   int
	timers map[TimerHandle]*timerState
	byFD   map[int]TimerHandle
	nextID TimerHandle
	closed bool
}

// New constructs the platform-appropriate Poller. On Linux this is always
// the epoll+timerfd backend.
func New() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "poller: epoll_create1")
	}
	return &epollPoller{
		epfd:   epfd,
		timers: make(map[TimerHandle]*timerState),
		byFD:   make(map[int]TimerHandle),
	}, nil
}

func toEpollMask(events Events) uint32 {
	var m uint32
	if events&Readable != 0 {
		m |= unix.EPOLLIN
	}
	if events&Writable != 0 {
		m |= unix.EPOLLOUT
	}
	return m
}

// RegisterFD uses ADD-then-MOD-on-EEXIST so a second, idempotent
// registration with a different mask replaces rather than accumulates.
func (p *epollPoller) RegisterFD(fd int, events Events) error {
	ev := &unix.EpollEvent{Events: toEpollMask(events), Fd: int32(fd)}
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev)
	if err == unix.EEXIST {
		err = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev)
	}
	if err != nil {
		return errors.Wrap(err, "poller: epoll_ctl")
	}
	return nil
}

func (p *epollPoller) UnregisterFD(fd int) error {
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err != nil && err != unix.ENOENT {
		return errors.Wrap(err, "poller: epoll_ctl del")
	}
	return nil
}

func (p *epollPoller) AddTimer(interval time.Duration, repeating bool) (TimerHandle, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return 0, errors.Wrap(err, "poller: timerfd_create")
	}
	if err := armTimerfd(fd, interval, repeating); err != nil {
		unix.Close(fd)
		return 0, err
	}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}); err != nil {
		unix.Close(fd)
		return 0, errors.Wrap(err, "poller: epoll_ctl add timerfd")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	h := p.nextID
	p.timers[h] = &timerState{fd: fd, interval: interval, repeating: repeating}
	p.byFD[fd] = h
	return h, nil
}

func armTimerfd(fd int, interval time.Duration, repeating bool) error {
	spec := unix.ItimerSpec{
		Value:    unix.NsecToTimespec(interval.Nanoseconds()),
		Interval: unix.Timespec{},
	}
	if repeating {
		spec.Interval = unix.NsecToTimespec(interval.Nanoseconds())
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		return errors.Wrap(err, "poller: timerfd_settime")
	}
	return nil
}

func (p *epollPoller) ModifyTimer(handle TimerHandle, interval time.Duration) error {
	p.mu.Lock()
	ts, ok := p.timers[handle]
	p.mu.Unlock()
	if !ok {
		return &ErrInvalidHandle{Handle: handle}
	}
	ts.interval = interval
	return armTimerfd(ts.fd, interval, ts.repeating)
}

func (p *epollPoller) RemoveTimer(handle TimerHandle) error {
	p.mu.Lock()
	ts, ok := p.timers[handle]
	if ok {
		delete(p.timers, handle)
		delete(p.byFD, ts.fd)
	}
	p.mu.Unlock()
	if !ok {
		return nil
	}
	_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, ts.fd, nil)
	return unix.Close(ts.fd)
}

func (p *epollPoller) Wait() (Result, error) {
	res, ok, err := p.wait(-1)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, errors.New("poller: wait returned no event with no timeout")
	}
	return res, nil
}

func (p *epollPoller) WaitTimeout(timeout time.Duration) (Result, bool, error) {
	ms := int(timeout / time.Millisecond)
	if timeout < 0 {
		ms = -1
	}
	return p.wait(ms)
}

func (p *epollPoller) wait(timeoutMS int) (Result, bool, error) {
	var events [1]unix.EpollEvent
	for {
		n, err := unix.EpollWait(p.epfd, events[:], timeoutMS)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Result{}, false, errors.Wrap(err, "poller: epoll_wait")
		}
		if n == 0 {
			return Result{}, false, nil
		}
		ev := events[0]
		fd := int(ev.Fd)

		p.mu.Lock()
		handle, isTimer := p.byFD[fd]
		p.mu.Unlock()
		if isTimer {
			count, rerr := readTimerfd(fd)
			if rerr != nil {
				return Result{}, false, rerr
			}
			return Result{Kind: TimerExpired, Timer: handle, Expirations: count}, true, nil
		}

		switch {
		case ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0:
			return Result{Kind: FDError, FD: fd}, true, nil
		case ev.Events&unix.EPOLLOUT != 0:
			return Result{Kind: FDWritable, FD: fd}, true, nil
		default:
			return Result{Kind: FDReadable, FD: fd}, true, nil
		}
	}
}

func readTimerfd(fd int) (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil || n != 8 {
		if err == unix.EAGAIN {
			return 0, nil
		}
		return 0, errors.Wrap(err, "poller: read timerfd")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (p *epollPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for _, ts := range p.timers {
		unix.Close(ts.fd)
	}
	p.timers = nil
	p.byFD = nil
	return unix.Close(p.epfd)
}
