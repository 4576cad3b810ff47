package termisu

import "github.com/mattn/go-runewidth"

// Sink is the write surface the renderer drives: move the cursor, change
// style, write runs of characters, and flush. A Sink is also responsible
// for honoring the synchronized-update framing (BeginSync/EndSync) if the
// underlying terminal supports it; a no-op implementation is fine for
// terminals that don't.
type Sink interface {
	// MoveCursor repositions the cursor to (x, y), 0-indexed from the
	// top-left.
	MoveCursor(x, y int)
	// SetForeground and SetBackground change the active color for
	// subsequent WriteRun calls; implementations are expected to memoize
	// via a RenderCache so repeated identical colors are free.
	SetForeground(c Color)
	SetBackground(c Color)
	// SetAttributes changes the active attribute bitset.
	SetAttributes(a Attribute)
	// ResetAttributes clears fg/bg/attr back to terminal defaults.
	ResetAttributes()
	// WriteRun writes a contiguous run of same-style characters.
	WriteRun(s string)
	// BeginSync/EndSync bracket a frame in a DEC synchronized-update
	// region. EndSync must be called on every exit path, including after
	// a panic recovery or an early return due to a WriteRun error.
	BeginSync()
	EndSync()
	// Flush pushes any buffered bytes out.
	Flush() error
}

// CellGrid is a double-buffered W x H array of Cells with diff-based
// rendering against a Sink. Both buffers always share the same dimensions.
type CellGrid struct {
	w, h   int
	front  []Cell
	back   []Cell
	cursor Cursor
}

// NewCellGrid allocates a grid of the given size, both buffers filled with
// DefaultCell.
func NewCellGrid(w, h int) *CellGrid {
	g := &CellGrid{cursor: NewCursor()}
	g.alloc(w, h)
	return g
}

func (g *CellGrid) alloc(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	g.front = make([]Cell, w*h)
	g.back = make([]Cell, w*h)
	for i := range g.front {
		g.front[i] = DefaultCell
		g.back[i] = DefaultCell
	}
}

// Size returns the grid's current dimensions.
func (g *CellGrid) Size() (int, int) { return g.w, g.h }

func (g *CellGrid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0, false
	}
	return y*g.w + x, true
}

// SetCell writes a cell into the back buffer at (x, y). Returns false
// without modifying anything if the coordinates are out of bounds — grid
// indexing never silently clamps or wraps.
func (g *CellGrid) SetCell(x, y int, c Cell) bool {
	i, ok := g.index(x, y)
	if !ok {
		return false
	}
	g.back[i] = c
	return true
}

// GetCell returns the back-buffer cell at (x, y) and true, or the zero
// Cell and false if out of bounds.
func (g *CellGrid) GetCell(x, y int) (Cell, bool) {
	i, ok := g.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return g.back[i], true
}

// Cursor returns a pointer to the grid's cursor so callers can
// Show/Hide/MoveTo it directly.
func (g *CellGrid) Cursor() *Cursor { return &g.cursor }

// ClearBack resets every back-buffer cell to DefaultCell, without touching
// the front buffer (so the next RenderTo will emit the whole grid as
// changed).
func (g *CellGrid) ClearBack() {
	for i := range g.back {
		g.back[i] = DefaultCell
	}
}

// Resize changes the grid's dimensions. If unchanged, it is a no-op.
// Otherwise both buffers are reallocated at the new size, the top-left
// min(oldW,newW) x min(oldH,newH) rectangle is preserved from both the old
// front and back buffers, new area is filled with DefaultCell, and the
// cursor (including its remembered last-shown position) is clamped into
// the new bounds.
func (g *CellGrid) Resize(w, h int) {
	if w == g.w && h == g.h {
		return
	}
	oldW, oldH := g.w, g.h
	oldFront, oldBack := g.front, g.back

	g.alloc(w, h)

	minW, minH := oldW, oldH
	if w < minW {
		minW = w
	}
	if h < minH {
		minH = h
	}
	for y := 0; y < minH; y++ {
		for x := 0; x < minW; x++ {
			oi := y*oldW + x
			ni := y*w + x
			g.front[ni] = oldFront[oi]
			g.back[ni] = oldBack[oi]
		}
	}
	g.cursor.clamp(w, h)
}

// runeWidth reports the terminal column width of a rune: 1 for ordinary
// glyphs, 2 for wide CJK glyphs, and never 0 from the renderer's point of
// view (zero-width combining marks still advance the cursor by one column
// here, since this grid stores one scalar per Cell — see the Open Question
// on double-width cells in spec.md §9).
func runeWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}

// renderRun is the renderer's scratch accumulator for a contiguous
// same-style span of changed cells.
type renderRun struct {
	x, y  int
	style Cell // Ch unused; Fg/Bg/Attr carry the run's style
	text  []rune
}

func (r *renderRun) reset() { r.text = r.text[:0] }

func (r *renderRun) empty() bool { return len(r.text) == 0 }

// RenderTo scans the grid in row-major order and emits to sink only the
// cells that differ from the front buffer, coalescing contiguous
// same-style runs into single writes. On return (success or error) the
// back buffer is copied into the front buffer only for the cells that were
// actually emitted, and sink.Flush is called. BeginSync/EndSync bracket
// the whole scan; EndSync always runs, even if a WriteRun call returns by
// way of the sink recording an error a caller inspects via Flush.
func (g *CellGrid) RenderTo(sink Sink) error {
	return g.render(sink, false)
}

// SyncTo behaves like RenderTo but forces every cell to be emitted
// regardless of front/back equality. Used after resize, alternate-screen
// entry, or to recover from external corruption of the terminal.
func (g *CellGrid) SyncTo(sink Sink) error {
	return g.render(sink, true)
}

func (g *CellGrid) render(sink Sink, force bool) (err error) {
	sink.BeginSync()
	defer sink.EndSync()

	cursorX, cursorY := -1, -1
	var lastStyle Cell
	haveLastStyle := false
	var run renderRun

	flushRun := func() {
		if run.empty() {
			return
		}
		if cursorX != run.x || cursorY != run.y {
			sink.MoveCursor(run.x, run.y)
		}
		if !haveLastStyle || !lastStyle.SameStyle(run.style) {
			applyStyle(sink, lastStyle, run.style, haveLastStyle)
			lastStyle = run.style
			haveLastStyle = true
		}
		sink.WriteRun(string(run.text))
		width := 0
		for _, r := range run.text {
			width += runeWidth(r)
		}
		cursorX, cursorY = run.x+width, run.y
		run.reset()
	}

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			back := g.back[i]
			if !force && back.Equal(g.front[i]) {
				flushRun()
				g.front[i] = back
				continue
			}
			if !run.empty() && run.y == y && run.x+len(run.text) == x && back.SameStyle(run.style) {
				run.text = append(run.text, back.Ch)
			} else {
				flushRun()
				run.x, run.y, run.style = x, y, back
				run.text = append(run.text[:0], back.Ch)
			}
			g.front[i] = back
		}
		flushRun()
	}
	flushRun()

	if g.cursor.Visible() {
		cx, cy := g.cursor.Position()
		sink.MoveCursor(cx, cy)
	}
	return sink.Flush()
}

// applyStyle emits the minimal style deltas between from and to. When to
// has dropped attribute bits that from had, a full reset is required
// (terminals offer no "turn off bold" escape independent of "turn off
// everything"), followed by re-setting to's remaining bits and colors.
func applyStyle(sink Sink, from, to Cell, haveFrom bool) {
	needReset := !haveFrom || (from.Attr&^to.Attr) != 0
	if needReset {
		sink.ResetAttributes()
		sink.SetAttributes(to.Attr)
		sink.SetForeground(to.Fg)
		sink.SetBackground(to.Bg)
		return
	}
	if to.Attr != from.Attr {
		sink.SetAttributes(to.Attr)
	}
	if !to.Fg.Equal(from.Fg) {
		sink.SetForeground(to.Fg)
	}
	if !to.Bg.Equal(from.Bg) {
		sink.SetBackground(to.Bg)
	}
}
