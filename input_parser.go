package termisu

import (
	"strconv"
	"strings"
)

// escapeTimeoutMs is how long the parser waits after a bare ESC before
// deciding no escape sequence follows and reporting a plain Escape key.
const escapeTimeoutMs = 50

// maxSequenceLen bounds how many parameter bytes a CSI sequence may
// accumulate before the parser gives up and reports Unknown, per spec
// §4.7.
const maxSequenceLen = 32

// InputParser turns a byte stream read through a Reader into Event values,
// implementing the escape-sequence grammar of spec §4.7: bare control
// bytes, ESC-prefixed Alt-modified keys, CSI (including SGR/X10 mouse,
// Kitty keyboard, and modifyOtherKeys), and SS3.
type InputParser struct {
	r *Reader
}

// NewInputParser wraps r.
func NewInputParser(r *Reader) *InputParser {
	return &InputParser{r: r}
}

// Next waits for and decodes one event, honoring timeoutMs the way Reader
// does (negative means indefinite; 0 is non-blocking). ok is false if no
// byte arrived before the timeout.
func (p *InputParser) Next(timeoutMs int) (Event, bool, error) {
	ok, err := p.r.WaitForData(timeoutMs)
	if err != nil || !ok {
		return Event{}, false, err
	}
	b, ok, err := p.r.ReadByte()
	if err != nil || !ok {
		return Event{}, false, err
	}

	switch {
	case b == 0x1B:
		return p.parseEscape()
	case b == 0x00:
		return keyEvent(KeyCtrlSpace, 0), true, nil
	case b == 0x08:
		return keyEvent(KeyBackspace, 0), true, nil
	case b == 0x09:
		return keyEvent(KeyTab, 0), true, nil
	case b == 0x0A || b == 0x0D:
		return keyEvent(KeyEnter, 0), true, nil
	case b == 0x7F:
		return keyEvent(KeyBackspace, 0), true, nil
	case b >= 0x01 && b <= 0x1A:
		return p.ctrlLetterEvent(b), true, nil
	default:
		return p.runeEvent(b)
	}
}

func keyEvent(k Key, mods Modifiers) Event {
	return Event{Type: EventKey, Key: k, Mods: mods}
}

var ctrlLetterKeys = map[byte]Key{
	1: KeyCtrlA, 2: KeyCtrlB, 3: KeyCtrlC, 4: KeyCtrlD, 5: KeyCtrlE,
	6: KeyCtrlF, 7: KeyCtrlG, 8: KeyCtrlH, 10: KeyCtrlJ, 11: KeyCtrlK,
	12: KeyCtrlL, 14: KeyCtrlN, 15: KeyCtrlO, 16: KeyCtrlP, 17: KeyCtrlQ,
	18: KeyCtrlR, 19: KeyCtrlS, 20: KeyCtrlT, 21: KeyCtrlU, 22: KeyCtrlV,
	23: KeyCtrlW, 24: KeyCtrlX, 25: KeyCtrlY, 26: KeyCtrlZ,
}

func (p *InputParser) ctrlLetterEvent(b byte) Event {
	if k, ok := ctrlLetterKeys[b]; ok {
		return keyEvent(k, ModCtrl)
	}
	return keyEvent(KeyUnknown, ModCtrl)
}

// runeEvent decodes a UTF-8 sequence starting with the already-read lead
// byte b.
func (p *InputParser) runeEvent(b byte) (Event, bool, error) {
	n := utf8SeqLen(b)
	buf := []byte{b}
	for len(buf) < n {
		nb, ok, err := p.r.ReadByte()
		if err != nil {
			return Event{}, false, err
		}
		if !ok {
			break
		}
		buf = append(buf, nb)
	}
	r := decodeRune(buf)
	return Event{Type: EventKey, Key: KeyRune, Rune: r}, true, nil
}

func utf8SeqLen(lead byte) int {
	switch {
	case lead&0x80 == 0:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func decodeRune(buf []byte) rune {
	r := []rune(string(buf))
	if len(r) == 0 {
		return 0xFFFD
	}
	return r[0]
}

// parseEscape handles the byte immediately following a bare ESC: a 50ms
// wait for a following byte, then CSI/SS3 dispatch or an Alt-modified key.
func (p *InputParser) parseEscape() (Event, bool, error) {
	ok, err := p.r.WaitForData(escapeTimeoutMs)
	if err != nil {
		return Event{}, false, err
	}
	if !ok {
		return keyEvent(KeyEscape, 0), true, nil
	}
	b, ok, err := p.r.ReadByte()
	if err != nil || !ok {
		return keyEvent(KeyEscape, 0), true, nil
	}
	switch b {
	case '[':
		return p.parseCSI()
	case 'O':
		return p.parseSS3()
	default:
		ev, ok, err := p.decodeNonEscapeByte(b)
		if err != nil || !ok {
			return Event{}, ok, err
		}
		ev.Mods |= ModAlt
		return ev, true, nil
	}
}

// decodeNonEscapeByte re-runs the plain-byte dispatch used in Next for a
// byte already consumed after ESC, so Alt+<anything> reuses the same
// control/printable decoding.
func (p *InputParser) decodeNonEscapeByte(b byte) (Event, bool, error) {
	switch {
	case b == 0x00:
		return keyEvent(KeyCtrlSpace, 0), true, nil
	case b == 0x08 || b == 0x7F:
		return keyEvent(KeyBackspace, 0), true, nil
	case b == 0x09:
		return keyEvent(KeyTab, 0), true, nil
	case b == 0x0A || b == 0x0D:
		return keyEvent(KeyEnter, 0), true, nil
	case b >= 0x01 && b <= 0x1A:
		return p.ctrlLetterEvent(b), true, nil
	default:
		return p.runeEvent(b)
	}
}

func (p *InputParser) parseSS3() (Event, bool, error) {
	b, ok, err := p.r.ReadByte()
	if err != nil || !ok {
		return keyEvent(KeyUnknown, 0), true, err
	}
	if k, found := ss3Keys[b]; found {
		return keyEvent(k, 0), true, nil
	}
	return keyEvent(KeyUnknown, 0), true, nil
}

// parseCSI collects parameter bytes until a final byte in 0x40..0x7E,
// bounded to maxSequenceLen, then dispatches on the leading sniff byte and
// final byte per spec §4.7. '<', '[' and 'M' are leading sniff bytes, not
// final bytes, even though '[' and 'M' fall inside 0x40..0x7E: '[' opens the
// Linux-console "ESC [ [ x" function keys, and the legacy X10
// mouse report is "ESC [ M" followed by three raw (non-parameter) bytes,
// so 'M' in that position must be collected and routed to parseX10Mouse
// rather than treated as an empty sequence's final byte.
func (p *InputParser) parseCSI() (Event, bool, error) {
	var params []byte
	for i := 0; len(params) < maxSequenceLen; i++ {
		b, ok, err := p.r.ReadByte()
		if err != nil {
			return Event{}, false, err
		}
		if !ok {
			return keyEvent(KeyUnknown, 0), true, nil
		}
		if i == 0 && b == 'M' {
			return p.parseX10Mouse()
		}
		if i == 0 && (b == '<' || b == '[') {
			params = append(params, b)
			continue
		}
		if b >= 0x40 && b <= 0x7E {
			return p.dispatchCSI(params, b)
		}
		params = append(params, b)
	}
	return keyEvent(KeyUnknown, 0), true, nil
}

func (p *InputParser) dispatchCSI(params []byte, final byte) (Event, bool, error) {
	if len(params) > 0 && params[0] == '<' {
		return parseSGRMouse(params[1:], final), true, nil
	}
	if final == 'u' {
		return parseKittyKey(string(params)), true, nil
	}
	if final == '~' {
		return parseTildeSequence(string(params)), true, nil
	}
	if len(params) >= 1 && params[0] == '[' {
		if k, ok := linuxConsoleKeys[final]; ok {
			return keyEvent(k, 0), true, nil
		}
	}

	nums, mods := splitParams(string(params))
	_ = nums
	if k, ok := csiFinalKeys[final]; ok {
		return keyEvent(k, mods), true, nil
	}
	return keyEvent(KeyUnknown, mods), true, nil
}

// splitParams parses a semicolon-separated numeric parameter list and
// decodes a trailing modifier code (xterm_code = 1 + bits) into Modifiers.
// The modifier is conventionally the second parameter for key sequences.
func splitParams(s string) ([]int, Modifiers) {
	if s == "" {
		return nil, ModNone
	}
	parts := strings.Split(s, ";")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		v, _ := strconv.Atoi(part)
		nums = append(nums, v)
	}
	mods := ModNone
	if len(nums) >= 2 {
		mods = modifiersFromXterm(nums[1])
	}
	return nums, mods
}

func modifiersFromXterm(code int) Modifiers {
	if code <= 1 {
		return ModNone
	}
	bits := code - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	if bits&8 != 0 {
		m |= ModMeta
	}
	return m
}

func parseTildeSequence(params string) Event {
	parts := strings.Split(params, ";")
	if len(parts) >= 3 && parts[0] == "27" {
		mod, _ := strconv.Atoi(parts[1])
		keycode, _ := strconv.Atoi(parts[2])
		return Event{Type: EventKey, Key: codepointToKey(keycode), Mods: modifiersFromXterm(mod)}
	}
	n, _ := strconv.Atoi(parts[0])
	mods := ModNone
	if len(parts) >= 2 {
		m, _ := strconv.Atoi(parts[1])
		mods = modifiersFromXterm(m)
	}
	if k, ok := csiTildeKeys[n]; ok {
		return keyEvent(k, mods)
	}
	return keyEvent(KeyUnknown, mods)
}

func parseKittyKey(params string) Event {
	parts := strings.Split(params, ":")
	head := strings.Split(parts[0], ";")
	codepoint, _ := strconv.Atoi(head[0])
	mods := ModNone
	if len(head) >= 2 {
		m, _ := strconv.Atoi(head[1])
		mods = modifiersFromXterm(m)
	}
	return Event{Type: EventKey, Key: codepointToKey(codepoint), Rune: runeIfPrintable(codepoint), Mods: mods}
}

func codepointToKey(cp int) Key {
	if k, ok := kittySpecialCodepoints[cp]; ok {
		return k
	}
	return KeyRune
}

func runeIfPrintable(cp int) rune {
	if _, special := kittySpecialCodepoints[cp]; special {
		return 0
	}
	return rune(cp)
}

// parseSGRMouse decodes "Cb;x;y" + final (M=press/motion, m=release) per
// spec §4.7: button from Cb's low two bits, wheel from bit 6, motion from
// bit 5, modifiers from bits 2/3/4.
func parseSGRMouse(params []byte, final byte) Event {
	nums, _ := splitParams(string(params))
	if len(nums) < 3 {
		return Event{Type: EventMouse, MouseButton: MouseNone}
	}
	cb, x, y := nums[0], nums[1], nums[2]
	return decodeMouse(cb, x, y, final == 'm')
}

func decodeMouse(cb, x, y int, isRelease bool) Event {
	wheel := cb&0x40 != 0
	motion := cb&0x20 != 0
	mods := ModNone
	if cb&0x04 != 0 {
		mods |= ModShift
	}
	if cb&0x08 != 0 {
		mods |= ModAlt
	}
	if cb&0x10 != 0 {
		mods |= ModCtrl
	}

	var button MouseButton
	switch {
	case wheel:
		if cb&1 != 0 {
			button = MouseWheelDown
		} else {
			button = MouseWheelUp
		}
		isRelease = false
	case isRelease:
		button = MouseRelease
	default:
		switch cb & 0x03 {
		case 0:
			button = MouseLeft
		case 1:
			button = MouseMiddle
		case 2:
			button = MouseRight
		default:
			button = MouseRelease
		}
	}

	return Event{
		Type:        EventMouse,
		MouseButton: button,
		MouseX:      x,
		MouseY:      y,
		MouseMotion: motion,
		Mods:        mods,
	}
}

// parseX10Mouse decodes the legacy "ESC [ M" + 3 raw bytes protocol: each
// byte has 32 subtracted; the x and y coordinates are then clamped to
// 1..223, while the button byte is decoded as is.
func (p *InputParser) parseX10Mouse() (Event, bool, error) {
	raw := make([]byte, 0, 3)
	for i := 0; i < 3; i++ {
		b, ok, err := p.r.ReadByte()
		if err != nil {
			return Event{}, false, err
		}
		if !ok {
			return Event{Type: EventMouse, MouseButton: MouseNone}, true, nil
		}
		raw = append(raw, b)
	}
	cb := int(raw[0]) - 32
	x := clampX10(int(raw[1]) - 32)
	y := clampX10(int(raw[2]) - 32)
	return decodeMouse(cb, x, y, false), true, nil
}

func clampX10(v int) int {
	if v < 1 {
		return 1
	}
	if v > 223 {
		return 223
	}
	return v
}
