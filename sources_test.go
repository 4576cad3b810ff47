package termisu

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeSourceEmitsOnChange(t *testing.T) {
	var w, h atomic.Int64
	w.Store(80)
	h.Store(24)

	src := NewResizeSource(func() (int, int) {
		return int(w.Load()), int(h.Load())
	}, 5*time.Millisecond)

	ch := make(chan Event, 4)
	src.Start(ch)
	defer src.Stop()

	require.Eventually(t, src.Running, time.Second, time.Millisecond)

	w.Store(100)
	h.Store(40)

	select {
	case ev := <-ch:
		assert.Equal(t, EventResize, ev.Type)
		assert.Equal(t, 100, ev.NewWidth)
		assert.Equal(t, 40, ev.NewHeight)
		assert.Equal(t, 80, ev.OldWidth)
		assert.Equal(t, 24, ev.OldHeight)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for resize event")
	}
}

func TestResizeSourceNoEventWithoutChange(t *testing.T) {
	src := NewResizeSource(func() (int, int) { return 80, 24 }, 5*time.Millisecond)
	ch := make(chan Event, 4)
	src.Start(ch)
	defer src.Stop()

	require.Eventually(t, src.Running, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event with unchanged size: %+v", ev)
	default:
	}
}

func TestResizeSourceStopStopsGoroutine(t *testing.T) {
	src := NewResizeSource(func() (int, int) { return 80, 24 }, 5*time.Millisecond)
	ch := make(chan Event, 4)
	src.Start(ch)
	require.Eventually(t, src.Running, time.Second, time.Millisecond)

	src.Stop()
	require.Eventually(t, func() bool { return !src.Running() }, time.Second, time.Millisecond)
}

func TestResizeSourceStaleGenerationSelfTerminates(t *testing.T) {
	var calls atomic.Int64
	src := NewResizeSource(func() (int, int) {
		calls.Add(1)
		return 80, 24
	}, 5*time.Millisecond)

	ch := make(chan Event, 4)
	src.Start(ch)
	require.Eventually(t, src.Running, time.Second, time.Millisecond)
	src.Stop()
	require.Eventually(t, func() bool { return !src.Running() }, time.Second, time.Millisecond)

	seenAtStop := calls.Load()
	// Restarting bumps the generation; the old goroutine (if somehow still
	// alive) must never deliver against the new run.
	src.Start(ch)
	require.Eventually(t, src.Running, time.Second, time.Millisecond)
	src.Stop()
	require.Eventually(t, func() bool { return !src.Running() }, time.Second, time.Millisecond)

	assert.GreaterOrEqual(t, calls.Load(), seenAtStop)
}

func TestResizeSourceStartStopIdempotent(t *testing.T) {
	src := NewResizeSource(func() (int, int) { return 80, 24 }, 5*time.Millisecond)
	ch := make(chan Event, 4)
	src.Start(ch)
	src.Start(ch) // second Start is a no-op (CAS guarded)
	require.True(t, src.Running())
	src.Stop()
	src.Stop() // second Stop is a no-op
	require.False(t, src.Running())
}

func TestTimerSourceEmitsTicksWithIncreasingFrameCounter(t *testing.T) {
	src := NewTimerSource(10 * time.Millisecond)
	ch := make(chan Event, 8)
	src.Start(ch)
	defer src.Stop()

	var first, second Event
	select {
	case first = <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first tick")
	}
	select {
	case second = <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for second tick")
	}

	assert.Equal(t, EventTick, first.Type)
	assert.Equal(t, uint64(1), first.FrameCounter)
	assert.Equal(t, EventTick, second.Type)
	assert.Equal(t, uint64(2), second.FrameCounter)
	assert.Greater(t, second.ElapsedSinceStart, first.ElapsedSinceStart)
	assert.Greater(t, second.DeltaSinceLast, time.Duration(0))
}

func TestTimerSourceStopStopsDelivery(t *testing.T) {
	src := NewTimerSource(5 * time.Millisecond)
	ch := make(chan Event, 8)
	src.Start(ch)
	require.Eventually(t, src.Running, time.Second, time.Millisecond)

	src.Stop()
	require.Eventually(t, func() bool { return !src.Running() }, time.Second, time.Millisecond)

	// drain whatever raced in before Stop took effect
	drain := true
	for drain {
		select {
		case <-ch:
		default:
			drain = false
		}
	}

	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("unexpected tick delivered after stop: %+v", ev)
		}
	case <-time.After(30 * time.Millisecond):
	}
}

func TestInputSourceStartStopIdempotent(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	parser := NewInputParser(NewReader(int(r.Fd())))
	src := NewInputSource(parser)
	ch := make(chan Event, 1)

	src.Start(ch)
	src.Start(ch) // no-op
	require.True(t, src.Running())

	src.Stop()
	src.Stop() // no-op
	require.Eventually(t, func() bool { return !src.Running() }, time.Second, time.Millisecond)
}
