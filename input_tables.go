package termisu

// ss3Keys maps the single byte following "ESC O" to a Key, per spec §4.7.
var ss3Keys = map[byte]Key{
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
}

// csiFinalKeys maps a CSI final byte with no numeric parameter (or an
// ignored one) to a Key, per spec §4.7's "Other finals" table.
var csiFinalKeys = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'Z': KeyBackTab,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

// csiTildeKeys maps the CSI "~"-terminated numeric parameter to a Key, per
// spec §4.7.
var csiTildeKeys = map[int]Key{
	1: KeyHome, 7: KeyHome,
	2: KeyInsert,
	3: KeyDelete,
	4: KeyEnd, 8: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
	25: KeyF13, 26: KeyF14, 28: KeyF15, 29: KeyF16,
	31: KeyF17, 32: KeyF18, 33: KeyF19, 34: KeyF20,
}

// linuxConsoleKeys maps the legacy Linux-console "ESC [ [ x" prefix's
// trailing byte to a Key.
var linuxConsoleKeys = map[byte]Key{
	'A': KeyF1, 'B': KeyF2, 'C': KeyF3, 'D': KeyF4, 'E': KeyF5,
}

// kittySpecialCodepoints maps the Kitty keyboard protocol's
// non-Unicode-scalar codepoints (its "special" key range) to a Key, per
// spec §4.7.
var kittySpecialCodepoints = map[int]Key{
	27:  KeyEscape,
	13:  KeyEnter,
	9:   KeyTab,
	127: KeyBackspace,
	57358: KeyCapsLock,
	57359: KeyScrollLock,
	57360: KeyNumLock,
	57361: KeyPrintScreen,
	57362: KeyPause,
	57376: KeyF13, 57377: KeyF14, 57378: KeyF15, 57379: KeyF16,
	57380: KeyF17, 57381: KeyF18, 57382: KeyF19, 57383: KeyF20,
	57384: KeyF21, 57385: KeyF22, 57386: KeyF23, 57387: KeyF24,
}
