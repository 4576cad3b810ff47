package termisu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCell(t *testing.T) {
	assert.Equal(t, ' ', DefaultCell.Ch)
	assert.True(t, DefaultCell.Fg.Equal(ANSI(7)))
	assert.True(t, DefaultCell.Bg.Equal(Default))
	assert.Equal(t, AttrNone, DefaultCell.Attr)
}

func TestCellEqualIgnoresNothing(t *testing.T) {
	a := Cell{Ch: 'x', Fg: ANSI(1), Bg: ANSI(2), Attr: AttrBold}
	b := a
	assert.True(t, a.Equal(b))
	b.Ch = 'y'
	assert.False(t, a.Equal(b))
}

func TestCellSameStyleIgnoresRune(t *testing.T) {
	a := Cell{Ch: 'x', Fg: ANSI(1), Bg: ANSI(2), Attr: AttrBold}
	b := Cell{Ch: 'y', Fg: ANSI(1), Bg: ANSI(2), Attr: AttrBold}
	assert.True(t, a.SameStyle(b))

	c := Cell{Ch: 'y', Fg: ANSI(1), Bg: ANSI(2), Attr: AttrUnderline}
	assert.False(t, a.SameStyle(c))
}
