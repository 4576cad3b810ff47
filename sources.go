package termisu

import (
	"sync/atomic"
	"time"
)

// Source is the common lifecycle every event source implements: start
// begins producing into channel, stop halts production, Running reports
// whether it is currently active, and Name identifies it for logging.
type Source interface {
	Start(channel chan<- Event)
	Stop()
	Running() bool
	Name() string
}

// InputSource drives an InputParser and forwards each decoded event to the
// shared channel, in its own goroutine. Start/Stop are idempotent via
// atomic CAS, matching the cooperative-task model of spec §5.
type InputSource struct {
	parser *InputParser

	running atomic.Bool
	stopCh  chan struct{}
}

// NewInputSource wraps parser.
func NewInputSource(parser *InputParser) *InputSource {
	return &InputSource{parser: parser}
}

func (s *InputSource) Name() string    { return "input" }
func (s *InputSource) Running() bool   { return s.running.Load() }

func (s *InputSource) Start(channel chan<- Event) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	go func() {
		defer s.running.Store(false)
		const pollMs = 100
		for {
			select {
			case <-stop:
				return
			default:
			}
			ev, ok, err := s.parser.Next(pollMs)
			if err != nil || !ok {
				continue
			}
			select {
			case channel <- ev:
			case <-stop:
				return
			}
		}
	}()
}

func (s *InputSource) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
}

// ResizeSource polls a size-provider callback at pollInterval, combined
// with a SIGWINCH-set atomic flag for latency bounding, and emits a Resize
// event on change. A generation counter ensures a stale task from a
// previous Start self-terminates if Start is called again before it
// notices Stop.
type ResizeSource struct {
	sizeProvider func() (w, h int)
	pollInterval time.Duration

	running    atomic.Bool
	generation atomic.Uint64
	stopSig    func()
}

// NewResizeSource constructs a ResizeSource that polls sizeProvider every
// pollInterval (default 100ms if zero).
func NewResizeSource(sizeProvider func() (w, h int), pollInterval time.Duration) *ResizeSource {
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	return &ResizeSource{sizeProvider: sizeProvider, pollInterval: pollInterval}
}

func (s *ResizeSource) Name() string  { return "resize" }
func (s *ResizeSource) Running() bool { return s.running.Load() }

func (s *ResizeSource) Start(channel chan<- Event) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	gen := s.generation.Add(1)
	s.stopSig = watchSigwinch()

	go func() {
		defer s.running.Store(false)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		oldW, oldH := s.sizeProvider()
		for range ticker.C {
			if s.generation.Load() != gen {
				return
			}
			consumeSigwinch()
			w, h := s.sizeProvider()
			if w == oldW && h == oldH {
				continue
			}
			ev := Event{Type: EventResize, NewWidth: w, NewHeight: h, OldWidth: oldW, OldHeight: oldH}
			oldW, oldH = w, h
			select {
			case channel <- ev:
			default:
			}
		}
	}()
}

func (s *ResizeSource) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.generation.Add(1)
	if s.stopSig != nil {
		s.stopSig()
	}
}

// TimerSource emits a periodic Tick stream driven by a time.Ticker. It is
// drift-prone but portable, and it leaves Event.MissedTicks at zero. This
// package has no timer source backed by a poller.Poller kernel timer.
type TimerSource struct {
	interval time.Duration

	running atomic.Bool
	stopCh  chan struct{}
}

// NewTimerSource constructs a sleep-based TimerSource ticking every interval.
func NewTimerSource(interval time.Duration) *TimerSource {
	return &TimerSource{interval: interval}
}

func (s *TimerSource) Name() string  { return "timer" }
func (s *TimerSource) Running() bool { return s.running.Load() }

func (s *TimerSource) Start(channel chan<- Event) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	go func() {
		defer s.running.Store(false)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		start := time.Now()
		var frame uint64
		last := start
		for {
			select {
			case now := <-ticker.C:
				frame++
				ev := Event{
					Type:              EventTick,
					ElapsedSinceStart: now.Sub(start),
					DeltaSinceLast:    now.Sub(last),
					FrameCounter:      frame,
				}
				last = now
				select {
				case channel <- ev:
				case <-stop:
					return
				}
			case <-stop:
				return
			}
		}
	}()
}

func (s *TimerSource) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
}
