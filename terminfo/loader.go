// Package terminfo decodes the compiled ncurses terminfo database and
// evaluates its parametrized capability strings. It is grounded on the
// classic terminfo binary layout (see parser.go) the way isgasho/terminfo
// and gdamore/tcell both read it, though this package reads the binary
// format directly rather than going through tic/infocmp.
package terminfo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no compiled terminfo entry could be located
// for a terminal name in any of the standard search locations.
var ErrNotFound = errors.New("terminfo: not found")

// searchDirs returns the ordered list of base directories to probe, per the
// loader's documented precedence: $TERMINFO, $HOME/.terminfo, the entries
// of $TERMINFO_DIRS (blank entries mean /usr/share/terminfo), then the
// well-known system locations.
func searchDirs() []string {
	var dirs []string

	if v := os.Getenv("TERMINFO"); v != "" {
		dirs = append(dirs, v)
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}
	if v := os.Getenv("TERMINFO_DIRS"); v != "" {
		for _, entry := range strings.Split(v, ":") {
			if entry == "" {
				entry = "/usr/share/terminfo"
			}
			dirs = append(dirs, entry)
		}
	}
	dirs = append(dirs,
		"/lib/terminfo",
		"/usr/local/share/terminfo",
		"/usr/share/terminfo",
	)
	return dirs
}

// Load locates and reads the compiled terminfo entry for name, trying each
// search directory's standard "<first-char>/<name>" layout and, as a
// fallback within the same directory, the Darwin-style
// "<hex(first-char)>/<name>" layout. It returns ErrNotFound if name is
// empty or no location yields a readable file.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	first := name[0]
	stdSub := string(first)
	hexSub := strings.ToUpper(hexByte(first))

	for _, dir := range searchDirs() {
		if dir == "" {
			continue
		}
		for _, sub := range [2]string{stdSub, hexSub} {
			path := filepath.Join(dir, sub, name)
			data, err := os.ReadFile(path)
			if err == nil {
				return data, nil
			}
		}
	}
	return nil, ErrNotFound
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}
