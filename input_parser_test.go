package termisu

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestParser feeds data through a real pipe fd, so the Reader's
// EINTR-safe unix.Read path is exercised exactly as it would be against a
// tty, without needing one.
func newTestParser(t *testing.T, data []byte) *InputParser {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })
	return NewInputParser(NewReader(int(r.Fd())))
}

func TestParseArrowUp(t *testing.T) {
	p := newTestParser(t, []byte{0x1B, 0x5B, 0x41})
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventKey, ev.Type)
	require.Equal(t, KeyUp, ev.Key)
	require.Equal(t, ModNone, ev.Mods)
}

func TestParseCtrlArrowUp(t *testing.T) {
	p := newTestParser(t, []byte("\x1b[1;5A"))
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyUp, ev.Key)
	require.Equal(t, ModCtrl, ev.Mods)
}

func TestParseSGRMouseLeftClick(t *testing.T) {
	p := newTestParser(t, []byte("\x1b[<0;10;5M"))
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventMouse, ev.Type)
	require.Equal(t, 10, ev.MouseX)
	require.Equal(t, 5, ev.MouseY)
	require.Equal(t, MouseLeft, ev.MouseButton)
	require.Equal(t, ModNone, ev.Mods)
	require.False(t, ev.MouseMotion)
}

func TestParseX10MouseLeftClick(t *testing.T) {
	// ESC [ M cb x y, each byte = value+32: cb=0 (left press), x=10, y=5.
	p := newTestParser(t, []byte{0x1B, '[', 'M', 0 + 32, 10 + 32, 5 + 32})
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventMouse, ev.Type)
	require.Equal(t, 10, ev.MouseX)
	require.Equal(t, 5, ev.MouseY)
	require.Equal(t, MouseLeft, ev.MouseButton)
	require.Equal(t, ModNone, ev.Mods)
	require.False(t, ev.MouseMotion)
}

func TestParsePlainRune(t *testing.T) {
	p := newTestParser(t, []byte("q"))
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyRune, ev.Key)
	require.Equal(t, 'q', ev.Rune)
}

func TestParseBareEscapeTimesOut(t *testing.T) {
	p := newTestParser(t, []byte{0x1B})
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyEscape, ev.Key)
}

func TestParseSS3F1(t *testing.T) {
	p := newTestParser(t, []byte("\x1bOP"))
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyF1, ev.Key)
}

func TestParseTildeDelete(t *testing.T) {
	p := newTestParser(t, []byte("\x1b[3~"))
	ev, ok, err := p.Next(200)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, KeyDelete, ev.Key)
}
