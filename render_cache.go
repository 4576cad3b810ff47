package termisu

// RenderCache wraps an underlying Sink with memoized "last-set" foreground,
// background, attribute, and cursor-visibility values. Each setter is a
// no-op when the new value already matches the cache, eliding redundant
// escape sequence emission; ResetAttributes clears the fg/bg/attr portion
// of the cache (cursor visibility is tracked separately since it is not
// touched by an SGR reset). Invalidate forces every cache entry stale, for
// use after a mode switch that may have perturbed terminal state outside
// this cache's knowledge.
type RenderCache struct {
	under Sink

	haveFg, haveBg, haveAttr bool
	fg                       Color
	bg                       Color
	attr                     Attribute

	haveCursorVisible bool
	cursorVisible     bool
}

// NewRenderCache wraps under in a fresh, fully-invalidated cache.
func NewRenderCache(under Sink) *RenderCache {
	return &RenderCache{under: under}
}

// Invalidate marks every memoized value stale so the next setter call
// always re-emits, regardless of whether the new value matches what was
// last cached.
func (c *RenderCache) Invalidate() {
	c.haveFg, c.haveBg, c.haveAttr, c.haveCursorVisible = false, false, false, false
}

func (c *RenderCache) MoveCursor(x, y int) { c.under.MoveCursor(x, y) }

func (c *RenderCache) SetForeground(fg Color) {
	if c.haveFg && c.fg.Equal(fg) {
		return
	}
	c.under.SetForeground(fg)
	c.fg, c.haveFg = fg, true
}

func (c *RenderCache) SetBackground(bg Color) {
	if c.haveBg && c.bg.Equal(bg) {
		return
	}
	c.under.SetBackground(bg)
	c.bg, c.haveBg = bg, true
}

func (c *RenderCache) SetAttributes(a Attribute) {
	if c.haveAttr && c.attr == a {
		return
	}
	c.under.SetAttributes(a)
	c.attr, c.haveAttr = a, true
}

func (c *RenderCache) ResetAttributes() {
	c.under.ResetAttributes()
	c.haveFg, c.haveBg, c.haveAttr = false, false, false
}

// SetCursorVisible is not part of the Sink interface (cursor visibility is
// driven by CellGrid.Cursor, not by the render scan) but is exposed for
// the terminal facade's own use when toggling cnorm/civis.
func (c *RenderCache) SetCursorVisible(visible bool, apply func(bool)) {
	if c.haveCursorVisible && c.cursorVisible == visible {
		return
	}
	apply(visible)
	c.cursorVisible, c.haveCursorVisible = visible, true
}

func (c *RenderCache) WriteRun(s string) { c.under.WriteRun(s) }
func (c *RenderCache) BeginSync()        { c.under.BeginSync() }
func (c *RenderCache) EndSync()          { c.under.EndSync() }
func (c *RenderCache) Flush() error      { return c.under.Flush() }
