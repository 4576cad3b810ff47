package termisu

// ModeFlags is a bit set of termios-level terminal modes, per spec §6.
type ModeFlags uint8

const (
	ModeNone      ModeFlags = 0
	ModeCanonical ModeFlags = 1 << 0
	ModeEcho      ModeFlags = 1 << 1
	ModeSignals   ModeFlags = 1 << 2
	ModeExtended  ModeFlags = 1 << 3

	ModeFlowControl     ModeFlags = 1 << 4
	ModeOutputProcessing ModeFlags = 1 << 5
	ModeCrToNl          ModeFlags = 1 << 6
)

// Mode presets, per spec §6.
const (
	ModeRaw      = ModeNone
	ModeCbreak   = ModeEcho | ModeSignals
	ModeCooked   = ModeCanonical | ModeEcho | ModeSignals | ModeExtended
	ModePassword = ModeCanonical | ModeSignals
	ModeSemiRaw  = ModeSignals
)

// Synchronized-update framing sequences, exact bytes per spec §6. A Sink
// implementation backed by a real terminal writes BSU before the first
// write of a render pass and ESU after the last, unconditionally.
const (
	BSU = "\x1b[?2026h"
	ESU = "\x1b[?2026l"
)

// TerminalFacade is the thin collaborator this core depends on but does
// not own the lifecycle of: a TTY file pair plus termios mode management.
// Production code is expected to supply a real implementation (this repo
// ships one, in terminal.go, built on golang.org/x/sys/unix); tests supply
// an in-memory fake.
type TerminalFacade interface {
	Write(p []byte) (int, error)
	Flush() error
	Read(p []byte) (int, error)
	Size() (cols, rows int)

	SetMode(mode ModeFlags) error
	CurrentMode() ModeFlags
	// WithMode runs fn with mode active, restoring the previous mode
	// afterward on every exit path, including a panic inside fn. When
	// preserveScreen is true, the caller's render cache must be
	// invalidated after the mode transition (see RenderCache.Invalidate)
	// since the transition may have perturbed terminal state outside the
	// cache's view (e.g. an alternate-screen switch).
	WithMode(mode ModeFlags, preserveScreen bool, fn func()) error

	InFD() int
	OutFD() int
}
