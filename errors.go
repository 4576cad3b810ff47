package termisu

import "errors"

// Sentinel errors forming the taxonomy in spec §7, for comparison with
// errors.Is and for StatusFromError. No function in this package returns
// them: terminfo.Load reports a missing entry with terminfo.ErrNotFound,
// SetCell reports out-of-bounds coordinates by returning false, and the
// poller reports an unknown timer handle with *poller.ErrInvalidHandle.
var (
	// ErrNotFound denotes a terminal name with no terminfo entry.
	ErrNotFound = errors.New("termisu: terminfo entry not found")

	// ErrClosed denotes an operation performed on a closed instance.
	ErrClosed = errors.New("termisu: use of closed instance")

	// ErrInvalidHandle denotes an unknown timer handle or other opaque
	// handle no longer valid.
	ErrInvalidHandle = errors.New("termisu: invalid handle")

	// ErrInvalidArgument denotes a programmer error: out-of-range color
	// components, empty characters, malformed options.
	ErrInvalidArgument = errors.New("termisu: invalid argument")

	// ErrRejected denotes a domain rule rejecting an otherwise well-formed
	// request.
	ErrRejected = errors.New("termisu: rejected")

	// ErrTimeout denotes a blocking operation that exceeded its deadline.
	// It is a normal outcome, not an exceptional error.
	ErrTimeout = errors.New("termisu: timeout")
)

// StatusCode mirrors the FFI-boundary status codes in spec §6. Internal Go
// code prefers Go errors; StatusFromError maps a Go error to the bit-exact
// code an FFI caller expects.
type StatusCode uint8

const (
	StatusOK StatusCode = iota
	StatusTimeout
	StatusInvalidArgument
	StatusInvalidHandle
	StatusRejected
	StatusError
)

// StatusFromError maps a sentinel error (or nil) to its StatusCode.
func StatusFromError(err error) StatusCode {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrTimeout):
		return StatusTimeout
	case errors.Is(err, ErrInvalidArgument):
		return StatusInvalidArgument
	case errors.Is(err, ErrInvalidHandle):
		return StatusInvalidHandle
	case errors.Is(err, ErrRejected):
		return StatusRejected
	default:
		return StatusError
	}
}
