package termisu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeChangeChangedSemantics(t *testing.T) {
	// mode defaults to ModeNone, previous absent: no change.
	e1 := Event{Type: EventModeChange, Mode: ModeNone, PreviousMode: nil}
	assert.False(t, e1.Changed())

	// previous absent, mode set to something non-default: changed.
	e2 := Event{Type: EventModeChange, Mode: ModeEcho, PreviousMode: nil}
	assert.True(t, e2.Changed())

	// previous present and equal to mode: no change.
	x := ModeCbreak
	e3 := Event{Type: EventModeChange, Mode: ModeCbreak, PreviousMode: &x}
	assert.False(t, e3.Changed())

	// previous present and different: changed.
	y := ModeRaw
	e4 := Event{Type: EventModeChange, Mode: ModeCooked, PreviousMode: &y}
	assert.True(t, e4.Changed())
}
