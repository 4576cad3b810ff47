package termisu

import (
	"bufio"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Terminal is the default TerminalFacade implementation: a POSIX tty file
// pair with termios mode switching, grounded on the /dev/tty-open and
// termios-flag-twiddling sequence common to termbox-go's Init and
// kungfusheep/glyph's EnterRawMode, generalized to the ModeFlags bit set
// of spec §6 instead of one hardcoded preset.
type Terminal struct {
	mu sync.Mutex

	in  *os.File
	out *os.File
	buf *bufio.Writer

	mode ModeFlags
	orig unix.Termios
}

// OpenTerminal opens path (conventionally "/dev/tty") for both reading and
// writing and returns a Terminal wrapping it in ModeCooked. Call Close to
// restore the original mode and release the fds.
func OpenTerminal(path string) (*Terminal, error) {
	if path == "" {
		path = "/dev/tty"
	}
	in, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "termisu: open terminal for reading")
	}
	out, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		in.Close()
		return nil, errors.Wrap(err, "termisu: open terminal for writing")
	}

	orig, err := getTermios(int(out.Fd()))
	if err != nil {
		in.Close()
		out.Close()
		return nil, err
	}

	return &Terminal{
		in:   in,
		out:  out,
		buf:  bufio.NewWriter(out),
		mode: ModeCooked,
		orig: orig,
	}, nil
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Write(p)
}

func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Flush()
}

// Read retries internally on EINTR, per spec §5's signal-safety
// requirement that interruptible reads retry rather than surface EINTR to
// the caller.
func (t *Terminal) Read(p []byte) (int, error) {
	for {
		n, err := t.in.Read(p)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return n, err
		}
	}
}

func (t *Terminal) Size() (cols, rows int) {
	c, r, err := getWinsize(int(t.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return c, r
}

func (t *Terminal) CurrentMode() ModeFlags {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *Terminal) SetMode(mode ModeFlags) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setModeLocked(mode)
}

func (t *Terminal) setModeLocked(mode ModeFlags) error {
	raw := deriveTermios(t.orig, mode)
	if err := setTermios(int(t.out.Fd()), raw); err != nil {
		return err
	}
	t.mode = mode
	return nil
}

// WithMode switches to mode, runs fn, and restores the previous mode
// afterward regardless of how fn exits (including via panic). preserveScreen
// is passed through for the caller to decide whether to invalidate a
// RenderCache; Terminal itself holds no render cache.
func (t *Terminal) WithMode(mode ModeFlags, preserveScreen bool, fn func()) error {
	t.mu.Lock()
	previous := t.mode
	if err := t.setModeLocked(mode); err != nil {
		t.mu.Unlock()
		return err
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		_ = t.setModeLocked(previous)
		t.mu.Unlock()
	}()

	fn()
	return nil
}

func (t *Terminal) InFD() int  { return int(t.in.Fd()) }
func (t *Terminal) OutFD() int { return int(t.out.Fd()) }

// Close restores the original termios state and releases both fds.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.buf.Flush()
	err := setTermios(int(t.out.Fd()), t.orig)
	t.in.Close()
	t.out.Close()
	return err
}
