package abi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestColorLayoutIs12Bytes(t *testing.T) {
	var c Color
	assert.EqualValues(t, 12, unsafe.Sizeof(c))
}

func TestCellStyleLayoutIs28Bytes(t *testing.T) {
	var cs CellStyle
	assert.EqualValues(t, 28, unsafe.Sizeof(cs))
}

func TestSizeLayoutIs8Bytes(t *testing.T) {
	var s Size
	assert.EqualValues(t, 8, unsafe.Sizeof(s))
}

func TestEventLayoutIs96Bytes(t *testing.T) {
	var e Event
	assert.EqualValues(t, 96, unsafe.Sizeof(e))
}

func TestLayoutSignatureStableAcrossCalls(t *testing.T) {
	assert.Equal(t, LayoutSignature(), LayoutSignature())
}
