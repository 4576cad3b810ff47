package termisu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorStartsHidden(t *testing.T) {
	c := NewCursor()
	assert.False(t, c.Visible())
	x, y := c.Position()
	assert.Equal(t, hiddenCoord, x)
	assert.Equal(t, hiddenCoord, y)
}

func TestCursorShowAfterHideRestoresPosition(t *testing.T) {
	c := NewCursor()
	c.MoveTo(5, 7)
	c.Show()
	x, y := c.Position()
	assert.Equal(t, 5, x)
	assert.Equal(t, 7, y)

	c.Hide()
	x, y = c.Position()
	assert.Equal(t, hiddenCoord, x)
	assert.Equal(t, hiddenCoord, y)

	c.Show()
	x, y = c.Position()
	assert.Equal(t, 5, x)
	assert.Equal(t, 7, y)
}

func TestCursorMoveWhileHiddenIsRememberedOnShow(t *testing.T) {
	c := NewCursor()
	c.MoveTo(1, 1)
	c.Show()
	c.Hide()
	c.MoveTo(9, 9) // moved while hidden
	c.Show()
	x, y := c.Position()
	assert.Equal(t, 9, x)
	assert.Equal(t, 9, y)
}

func TestCursorClampOnShrink(t *testing.T) {
	c := NewCursor()
	c.MoveTo(10, 10)
	c.Show()
	c.clamp(5, 5)
	x, y := c.Position()
	assert.Equal(t, 4, x)
	assert.Equal(t, 4, y)
}
