package termisu

import (
	"fmt"
	"strings"

	"github.com/omarluq/termisu-sub002/terminfo"
)

// TerminalSink adapts a TerminalFacade plus a terminfo capability table
// into the CellGrid's Sink interface, emitting capability strings (tparm'd
// where needed) for cursor movement, colors, and attributes, and raw
// true-color SGR sequences for RGB colors (terminfo has no standard
// capability for those). Wrap it in a RenderCache to elide redundant
// style emission, per spec §4.5.
type TerminalSink struct {
	term TerminalFacade
	caps terminfo.Capabilities
}

// NewTerminalSink builds a sink over term using caps (from a parsed
// terminfo entry, or terminfo.Fallback if none was found).
func NewTerminalSink(term TerminalFacade, caps terminfo.Capabilities) *TerminalSink {
	return &TerminalSink{term: term, caps: caps}
}

func (s *TerminalSink) writeCap(name string, params ...int64) {
	tmpl, ok := s.caps[name]
	if !ok {
		return
	}
	s.write(terminfo.Tparm(tmpl, params...))
}

func (s *TerminalSink) write(str string) {
	if str == "" {
		return
	}
	_, _ = s.term.Write([]byte(str))
}

// MoveCursor emits the cup capability with 0-indexed (x, y); cup's
// template itself carries %i to convert to 1-based row/col.
func (s *TerminalSink) MoveCursor(x, y int) {
	s.writeCap("cup", int64(y), int64(x))
}

func (s *TerminalSink) SetForeground(c Color) {
	s.setColor(c, true)
}

func (s *TerminalSink) SetBackground(c Color) {
	s.setColor(c, false)
}

func (s *TerminalSink) setColor(c Color, fg bool) {
	switch c.Mode() {
	case ColorModeDefault:
		return
	case ColorModeRGB:
		r, g, b := c.RGB255()
		if fg {
			s.write(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b))
		} else {
			s.write(fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b))
		}
	default:
		idx := int64(c.Index())
		if fg {
			s.writeCap("setaf", idx)
		} else {
			s.writeCap("setab", idx)
		}
	}
}

// attributeCaps pairs each Attribute bit with the terminfo capability that
// enables it. Strikethrough has no classic terminfo capability, and Hidden
// is not looked up under its invis capability; both are emitted as raw SGR
// codes 8 and 9, which the xterm family and most modern terminals accept
// unconditionally.
var attributeCaps = []struct {
	bit  Attribute
	name string
	raw  string
}{
	{AttrBold, "bold", "\x1b[1m"},
	{AttrUnderline, "smul", "\x1b[4m"},
	{AttrBlink, "blink", "\x1b[5m"},
	{AttrReverse, "rev", "\x1b[7m"},
	{AttrDim, "dim", "\x1b[2m"},
	{AttrCursive, "sitm", "\x1b[3m"},
	{AttrHidden, "", "\x1b[8m"},
	{AttrStrikethrough, "", "\x1b[9m"},
}

func (s *TerminalSink) SetAttributes(a Attribute) {
	var b strings.Builder
	for _, entry := range attributeCaps {
		if a&entry.bit == 0 {
			continue
		}
		if tmpl, ok := s.caps[entry.name]; ok && entry.name != "" {
			b.WriteString(terminfo.Tparm(tmpl))
		} else {
			b.WriteString(entry.raw)
		}
	}
	s.write(b.String())
}

func (s *TerminalSink) ResetAttributes() {
	if tmpl, ok := s.caps["sgr0"]; ok {
		s.write(terminfo.Tparm(tmpl))
		return
	}
	s.write("\x1b[m\x1b(B")
}

func (s *TerminalSink) WriteRun(str string) {
	s.write(str)
}

func (s *TerminalSink) BeginSync() {
	s.write(BSU)
}

func (s *TerminalSink) EndSync() {
	s.write(ESU)
}

func (s *TerminalSink) Flush() error {
	return s.term.Flush()
}
