package termisu

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger. It writes to io.Discard
// by default and can be replaced with SetLogger. The poller, event
// sources, and event loop do not write to it.
var Logger = zerolog.New(io.Discard)

// SetLogger replaces the package-level logger, e.g. with
// zerolog.New(os.Stderr).Level(zerolog.DebugLevel) for diagnostics.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
