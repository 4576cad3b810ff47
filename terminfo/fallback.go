package terminfo

// Fallback returns a built-in capability table for terminals matching the
// xterm family or the Linux console, used when no compiled terminfo entry
// can be located. The escape sequences are exact bytes, not re-derived.
func Fallback(termName string) Capabilities {
	caps := Capabilities{
		"smcup": "\x1b[?1049h",
		"rmcup": "\x1b[?1049l",
		"cnorm": "\x1b[?12l\x1b[?25h",
		"civis": "\x1b[?25l",
		"clear": "\x1b[H\x1b[2J",
		"sgr0":  "\x1b[m\x1b(B",
		"bold":  "\x1b[1m",
		"smul":  "\x1b[4m",
		"blink": "\x1b[5m",
		"rev":   "\x1b[7m",
		"setaf": "\x1b[38;5;%p1%dm",
		"setab": "\x1b[48;5;%p1%dm",
		"cup":   "\x1b[%i%p1%d;%p2%dH",
	}
	// Both the xterm family and the Linux console accept this baseline set
	// unmodified; termName is accepted for future per-family divergence
	// (e.g. the Linux console's narrower SGR repertoire) but is not
	// currently branched on.
	_ = termName
	return caps
}
