package abi

import (
	"fmt"
	"hash/fnv"
	"unsafe"
)

// LayoutSignature returns an FNV-1a hash over the sizes and field offsets
// of every FFI-exposed struct, so a language binding can assert at load
// time that its own generated header still matches this build's memory
// layout instead of silently reading garbage after a drift.
func LayoutSignature() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "abi_version=%d\n", ABIVersion)

	var c Color
	fmt.Fprintf(h, "Color size=%d mode=%d index=%d r=%d g=%d b=%d\n",
		unsafe.Sizeof(c),
		unsafe.Offsetof(c.Mode), unsafe.Offsetof(c.Index),
		unsafe.Offsetof(c.R), unsafe.Offsetof(c.G), unsafe.Offsetof(c.B))

	var cs CellStyle
	fmt.Fprintf(h, "CellStyle size=%d fg=%d bg=%d attr=%d\n",
		unsafe.Sizeof(cs), unsafe.Offsetof(cs.FG), unsafe.Offsetof(cs.BG), unsafe.Offsetof(cs.Attr))

	var sz Size
	fmt.Fprintf(h, "Size size=%d w=%d h=%d\n", unsafe.Sizeof(sz), unsafe.Offsetof(sz.W), unsafe.Offsetof(sz.H))

	var ev Event
	fmt.Fprintf(h, "Event size=%d type=%d mods=%d payload=%d\n",
		unsafe.Sizeof(ev), unsafe.Offsetof(ev.Type), unsafe.Offsetof(ev.Mods), unsafe.Offsetof(ev.Payload))

	return h.Sum64()
}
