//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package termisu

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// rawTermios derives a "raw" termios from base: no break/parity/strip
// processing, no output post-processing, 8-bit chars, no echo/canonical/
// signals/extended input, and a VMIN=1/VTIME=0 read policy. This mirrors
// the flag combination classic TUI libraries (termbox-go's Init,
// kungfusheep/glyph's EnterRawMode) apply, generalized to also honor the
// individual flow-control/output-processing/CR-NL bits in a ModeFlags
// value rather than hardcoding a single preset.
func deriveTermios(base unix.Termios, mode ModeFlags) unix.Termios {
	t := base

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN

	if mode&ModeCanonical != 0 {
		t.Lflag |= unix.ICANON
	}
	if mode&ModeEcho != 0 {
		t.Lflag |= unix.ECHO
	}
	if mode&ModeSignals != 0 {
		t.Lflag |= unix.ISIG
	}
	if mode&ModeExtended != 0 {
		t.Lflag |= unix.IEXTEN
	}
	if mode&ModeFlowControl != 0 {
		t.Iflag |= unix.IXON
	}
	if mode&ModeOutputProcessing != 0 {
		t.Oflag |= unix.OPOST
	}
	if mode&ModeCrToNl != 0 {
		t.Iflag |= unix.ICRNL
	}

	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	return t
}

func getTermios(fd int) (unix.Termios, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return unix.Termios{}, errors.Wrap(err, "termisu: get termios")
	}
	return *t, nil
}

func setTermios(fd int, t unix.Termios) error {
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &t); err != nil {
		return errors.Wrap(err, "termisu: set termios")
	}
	return nil
}

func getWinsize(fd int) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, errors.Wrap(err, "termisu: get window size")
	}
	return int(ws.Col), int(ws.Row), nil
}
