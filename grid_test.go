package termisu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink is a mock Sink that records every call, for asserting the
// diff-minimality and style-caching properties from spec §8.
type recordingSink struct {
	moves      []([2]int)
	fgs        []Color
	bgs        []Color
	attrs      []Attribute
	resets     int
	writes     []string
	beginSyncs int
	endSyncs   int
	flushes    int
}

func (s *recordingSink) MoveCursor(x, y int)      { s.moves = append(s.moves, [2]int{x, y}) }
func (s *recordingSink) SetForeground(c Color)    { s.fgs = append(s.fgs, c) }
func (s *recordingSink) SetBackground(c Color)    { s.bgs = append(s.bgs, c) }
func (s *recordingSink) SetAttributes(a Attribute) { s.attrs = append(s.attrs, a) }
func (s *recordingSink) ResetAttributes()          { s.resets++ }
func (s *recordingSink) WriteRun(str string)       { s.writes = append(s.writes, str) }
func (s *recordingSink) BeginSync()                { s.beginSyncs++ }
func (s *recordingSink) EndSync()                  { s.endSyncs++ }
func (s *recordingSink) Flush() error              { s.flushes++; return nil }

func TestGridOutOfBoundsRejected(t *testing.T) {
	g := NewCellGrid(3, 2)
	assert.True(t, g.SetCell(0, 0, DefaultCell))
	assert.False(t, g.SetCell(3, 0, DefaultCell))
	assert.False(t, g.SetCell(-1, 0, DefaultCell))
	assert.False(t, g.SetCell(0, 2, DefaultCell))

	_, ok := g.GetCell(3, 0)
	assert.False(t, ok)
	_, ok = g.GetCell(2, 1)
	assert.True(t, ok)
}

func TestGridResizePreservesOverlap(t *testing.T) {
	g := NewCellGrid(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.SetCell(x, y, Cell{Ch: rune('a' + x), Fg: ANSI(1), Bg: Default})
		}
	}
	// Promote back to front so both buffers hold the pre-resize values.
	require.NoError(t, g.RenderTo(&recordingSink{}))

	g.Resize(2, 2)
	w, h := g.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c, ok := g.GetCell(x, y)
			require.True(t, ok)
			assert.Equal(t, rune('a'+x), c.Ch)
		}
	}

	g.Resize(4, 4)
	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			c, _ := g.GetCell(x, y)
			assert.Equal(t, DefaultCell, c)
		}
	}
}

func TestRenderToEmitsOneRunForOneStyle(t *testing.T) {
	g := NewCellGrid(3, 1)
	g.SetCell(0, 0, Cell{Ch: 'A', Fg: ANSI(1), Bg: Default})
	g.SetCell(1, 0, Cell{Ch: 'B', Fg: ANSI(1), Bg: Default})
	g.SetCell(2, 0, Cell{Ch: 'C', Fg: ANSI(1), Bg: Default})

	sink := &recordingSink{}
	require.NoError(t, g.RenderTo(sink))

	require.Len(t, sink.writes, 1)
	assert.Equal(t, "ABC", sink.writes[0])
	assert.Equal(t, 1, sink.flushes)
	assert.Equal(t, 1, sink.beginSyncs)
	assert.Equal(t, 1, sink.endSyncs)
}

func TestRenderToNoChangesOnlyFlushes(t *testing.T) {
	g := NewCellGrid(3, 1)
	g.SetCell(0, 0, Cell{Ch: 'A', Fg: ANSI(1), Bg: Default})
	sink := &recordingSink{}
	require.NoError(t, g.RenderTo(sink))

	sink2 := &recordingSink{}
	require.NoError(t, g.RenderTo(sink2))
	assert.Empty(t, sink2.writes)
	assert.Equal(t, 1, sink2.flushes)
}

func TestRenderToTwoDisjointRuns(t *testing.T) {
	g := NewCellGrid(5, 1)
	g.SetCell(0, 0, Cell{Ch: 'A', Fg: ANSI(1), Bg: Default})
	g.SetCell(1, 0, Cell{Ch: 'B', Fg: ANSI(1), Bg: Default})
	g.SetCell(3, 0, Cell{Ch: 'C', Fg: ANSI(2), Bg: Default})
	g.SetCell(4, 0, Cell{Ch: 'D', Fg: ANSI(2), Bg: Default})

	sink := &recordingSink{}
	require.NoError(t, g.RenderTo(sink))
	require.Len(t, sink.writes, 2)
	assert.Equal(t, "AB", sink.writes[0])
	assert.Equal(t, "CD", sink.writes[1])
}

func TestSyncToForcesFullRepaint(t *testing.T) {
	g := NewCellGrid(2, 1)
	g.SetCell(0, 0, Cell{Ch: 'A', Fg: ANSI(1), Bg: Default})
	g.SetCell(1, 0, Cell{Ch: 'B', Fg: ANSI(1), Bg: Default})
	require.NoError(t, g.RenderTo(&recordingSink{}))

	sink := &recordingSink{}
	require.NoError(t, g.SyncTo(sink))
	require.Len(t, sink.writes, 1)
	assert.Equal(t, "AB", sink.writes[0])
}
