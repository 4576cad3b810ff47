package termisu

import "time"

// EventType discriminates the Event tagged variant.
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventTick
	EventModeChange
)

// Event is a flat tagged variant over {Key, Mouse, Resize, Tick,
// ModeChange}, following the single-struct-with-discriminator shape the
// teacher's own Event uses (Type/Mod/Key/Ch/Width/Height), generalized to
// the additional variants this spec requires.
type Event struct {
	Type EventType
	Mods Modifiers

	// EventKey
	Key  Key
	Rune rune

	// EventMouse
	MouseButton MouseButton
	MouseX      int
	MouseY      int
	MouseMotion bool

	// EventResize
	NewWidth  int
	NewHeight int
	OldWidth  int
	OldHeight int

	// EventTick
	ElapsedSinceStart time.Duration
	DeltaSinceLast    time.Duration
	FrameCounter      uint64
	MissedTicks       uint64

	// EventModeChange
	Mode         ModeFlags
	PreviousMode *ModeFlags
}

// Changed reports whether an EventModeChange actually altered the active
// mode: true unless the new mode equals the previous one (treating an
// absent previous mode as ModeNone).
func (e Event) Changed() bool {
	if e.PreviousMode == nil {
		return e.Mode != ModeNone
	}
	return e.Mode != *e.PreviousMode
}
