package termisu

// Cell is a single character position: a Unicode scalar plus its style.
type Cell struct {
	Ch   rune
	Fg   Color
	Bg   Color
	Attr Attribute
}

// DefaultCell is the cell used to fill newly exposed grid area:
// a space, white-on-default, with no attributes.
var DefaultCell = Cell{Ch: ' ', Fg: ANSI(7), Bg: Default, Attr: AttrNone}

// Equal reports whether two cells have the same rune and effective style.
func (c Cell) Equal(o Cell) bool {
	return c.Ch == o.Ch && c.Attr == o.Attr && c.Fg.Equal(o.Fg) && c.Bg.Equal(o.Bg)
}

// SameStyle reports whether two cells would be emitted with the same SGR
// sequence, ignoring the rune itself. Used by the renderer to decide
// whether a changed cell can extend the current run.
func (c Cell) SameStyle(o Cell) bool {
	return c.Attr == o.Attr && c.Fg.Equal(o.Fg) && c.Bg.Equal(o.Bg)
}
