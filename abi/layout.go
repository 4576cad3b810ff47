// Package abi defines the bit-exact struct layouts this library commits to
// at its FFI boundary (ABI_VERSION 1): Color, CellStyle, Size, and Event.
// Language bindings built on top of a C header rely on these offsets not
// moving silently; LayoutSignature lets a binding assert at load time that
// the Go side and its own generated header still agree.
package abi

// ABIVersion is the layout generation this package implements.
const ABIVersion = 1

// ColorMode mirrors termisu.ColorMode's wire representation.
type ColorMode uint8

const (
	ColorModeDefault ColorMode = iota
	ColorModeANSI
	ColorMode256
	ColorModeRGB
)

// Color is the 12-byte FFI representation of termisu.Color:
// {mode:u8, _pad[3], index:i32, r:u8, g:u8, b:u8, _pad[1]}.
type Color struct {
	Mode    ColorMode
	_pad0   [3]byte
	Index   int32
	R, G, B byte
	_pad1   [1]byte
}

// CellStyle is the 28-byte (with trailing pad) FFI representation of a
// cell's style: {fg:Color(12), bg:Color(12), attr:u16}.
type CellStyle struct {
	FG   Color
	BG   Color
	Attr uint16
	_pad [2]byte
}

// Size is the FFI representation of a terminal size: {w:i32, h:i32}.
type Size struct {
	W, H int32
}

// EventType mirrors termisu.EventType's wire discriminator.
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventTick
	EventModeChange
)

// eventPayloadOffset is the byte offset within Event at which
// variant-specific fields begin, after the 1-byte discriminator and
// 1-byte modifiers field.
const eventPayloadOffset = 2

// Event is the 96-byte FFI representation of termisu.Event. The
// discriminator sits at offset 0, modifiers at offset 1; variant payloads
// begin at eventPayloadOffset and are laid out as a union over the widest
// variant (Mouse: button, x, y, motion).
type Event struct {
	Type EventType
	Mods uint8

	// Payload is a raw byte union big enough for the widest variant, to be
	// interpreted according to Type. This package defines no accessors or
	// marshal code for it.
	Payload [94]byte
}

func init() {
	if eventPayloadOffset != 2 {
		panic("abi: eventPayloadOffset drifted from the documented FFI layout")
	}
}
