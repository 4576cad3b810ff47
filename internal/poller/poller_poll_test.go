//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package poller

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollDeadlineRespectedWithActiveTimer(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	defer p.Close()

	_, err = p.AddTimer(200*time.Millisecond, true)
	require.NoError(t, err)

	start := time.Now()
	_, ok, err := p.WaitTimeout(20 * time.Millisecond)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, elapsed, 50*time.Millisecond)
}

func TestPollTimerFiresAfterInterval(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	defer p.Close()

	_, err = p.AddTimer(20*time.Millisecond, false)
	require.NoError(t, err)

	res, ok, err := p.WaitTimeout(200 * time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TimerExpired, res.Kind)
	assert.GreaterOrEqual(t, res.Expirations, uint64(1))
}

func TestPollRegisterFDIdempotent(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	defer p.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.NoError(t, p.RegisterFD(int(r.Fd()), Readable))
	require.NoError(t, p.RegisterFD(int(r.Fd()), Readable|Writable))
	require.NoError(t, p.UnregisterFD(int(r.Fd())))
	require.NoError(t, p.UnregisterFD(int(r.Fd()))) // idempotent
}
