package termisu

// hiddenCoord is the sentinel coordinate pair that encodes a hidden cursor.
const hiddenCoord = -1

// Cursor tracks the application-requested cursor position and visibility.
// lastX/lastY is the single source of truth for "where the cursor is", set
// by MoveTo regardless of visibility; Position derives the hidden sentinel
// from it so a MoveTo while hidden does not leak through Position but is
// still what Show later restores.
type Cursor struct {
	visible bool
	lastX   int
	lastY   int
}

// NewCursor returns a hidden cursor at the origin.
func NewCursor() Cursor {
	return Cursor{visible: false, lastX: 0, lastY: 0}
}

// Position returns the current coordinates; (hiddenCoord, hiddenCoord) when
// hidden.
func (c Cursor) Position() (int, int) {
	if !c.visible {
		return hiddenCoord, hiddenCoord
	}
	return c.lastX, c.lastY
}

// Visible reports whether the cursor is currently shown.
func (c Cursor) Visible() bool { return c.visible }

// MoveTo sets the cursor's tracked position, preserving visibility state.
// Calling MoveTo while hidden still updates where Show will later reveal
// the cursor.
func (c *Cursor) MoveTo(x, y int) {
	c.lastX, c.lastY = x, y
}

// Hide hides the cursor. Its position is retained for a subsequent Show.
func (c *Cursor) Hide() {
	c.visible = false
}

// Show reveals the cursor at its last tracked position.
func (c *Cursor) Show() {
	c.visible = true
}

// clamp restricts the cursor's tracked position into [0,w) x [0,h). Called
// by CellGrid.Resize on a shrink.
func (c *Cursor) clamp(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	clampOne := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v >= max {
			return max - 1
		}
		return v
	}
	c.lastX = clampOne(c.lastX, w)
	c.lastY = clampOne(c.lastY, h)
}
