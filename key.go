package termisu

// Key enumerates the keyboard keys the input parser can produce, covering
// printable runes (via KeyRune), control characters with dedicated names,
// and the closed set of navigation/function keys reachable through CSI,
// SS3, and the Kitty/modifyOtherKeys extensions.
type Key int

const (
	KeyUnknown Key = iota
	KeyRune        // printable character; see Event.Rune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyBackTab
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause

	// KeyCtrlA..KeyCtrlZ cover Ctrl+{a..z}, decoded from 0x01..0x1A.
	// There is no KeyCtrlI or KeyCtrlM, and the parser never produces
	// KeyCtrlH or KeyCtrlJ: 0x08, 0x09, 0x0A and 0x0D decode to
	// KeyBackspace, KeyTab and KeyEnter.
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
	KeyCtrlSpace
)

// Modifiers is a bit set of modifier keys active alongside a Key or Mouse
// event.
type Modifiers uint8

const (
	ModNone  Modifiers = 0
	ModShift Modifiers = 1 << 0
	ModAlt   Modifiers = 1 << 1
	ModCtrl  Modifiers = 1 << 2
	ModMeta  Modifiers = 1 << 3
)

// MouseButton enumerates the button/event a Mouse event reports.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseRelease
	MouseWheelUp
	MouseWheelDown
)
