package termisu

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// fdSetSize is the hard limit of the select-based readiness path, per spec
// §5/§9; fds at or above it fall back to a single-fd poll() call instead of
// corrupting the fixed-size fd_set bitmask.
const fdSetSize = 1024

// maxFillRetries caps EINTR retries on a single fill so a storm of
// interrupting signals cannot live-lock the reader.
const maxFillRetries = 100

// Reader is a buffered, EINTR-safe input reader over a single fd. It is
// the input-side analogue of Terminal: it owns no fd itself (the caller
// retains ownership, matching FD discipline in spec §5) but buffers reads
// from it.
type Reader struct {
	fd  int
	buf []byte // unread bytes, in order; consumed from the front
}

// NewReader wraps fd for buffered reading.
func NewReader(fd int) *Reader {
	return &Reader{fd: fd}
}

// Available reports whether there is buffered data, or the fd currently
// has readable bytes.
func (r *Reader) Available() (bool, error) {
	if len(r.buf) > 0 {
		return true, nil
	}
	return readinessCheck(r.fd, 0)
}

// WaitForData blocks up to timeoutMs (negative means indefinite) for
// readable data, returning true if data became available.
func (r *Reader) WaitForData(timeoutMs int) (bool, error) {
	if len(r.buf) > 0 {
		return true, nil
	}
	return readinessCheck(r.fd, timeoutMs)
}

// PeekByte returns the next byte without consuming it, filling the buffer
// from the fd if empty. ok is false on EOF.
func (r *Reader) PeekByte() (b byte, ok bool, err error) {
	if len(r.buf) == 0 {
		if err := r.fill(); err != nil {
			return 0, false, err
		}
	}
	if len(r.buf) == 0 {
		return 0, false, nil
	}
	return r.buf[0], true, nil
}

// ReadByte consumes and returns the next byte, filling the buffer from the
// fd if empty. ok is false on EOF.
func (r *Reader) ReadByte() (b byte, ok bool, err error) {
	b, ok, err = r.PeekByte()
	if ok {
		r.buf = r.buf[1:]
	}
	return b, ok, err
}

// ReadBytes consumes up to n buffered/freshly-read bytes. It returns fewer
// than n only at EOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		b, ok, err := r.ReadByte()
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

// fill reads whatever is immediately available from the fd into the
// buffer, retrying on EINTR up to maxFillRetries times. EOF is surfaced as
// a no-op (empty read), not an error.
func (r *Reader) fill() error {
	var tmp [4096]byte
	for attempt := 0; attempt < maxFillRetries; attempt++ {
		n, err := unix.Read(r.fd, tmp[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "termisu: reader fill")
		}
		if n > 0 {
			r.buf = append(r.buf, tmp[:n]...)
		}
		return nil
	}
	return errors.New("termisu: reader fill exceeded EINTR retry cap")
}

// readinessCheck waits up to timeoutMs (negative means indefinite) for fd
// to become readable, using a select()-based bitmask for fds below
// fdSetSize and falling back to a single-fd poll() above it. Both paths
// retry EINTR internally.
func readinessCheck(fd int, timeoutMs int) (bool, error) {
	if fd >= fdSetSize {
		return pollReadiness(fd, timeoutMs)
	}
	return selectReadiness(fd, timeoutMs)
}

func selectReadiness(fd int, timeoutMs int) (bool, error) {
	for {
		var rfds unix.FdSet
		fdSet(&rfds, fd)

		var tv *unix.Timeval
		if timeoutMs >= 0 {
			t := unix.NsecToTimeval(int64(timeoutMs) * 1e6)
			tv = &t
		}

		n, err := unix.Select(fd+1, &rfds, nil, nil, tv)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, errors.Wrap(err, "termisu: select")
		}
		return n > 0, nil
	}
}

func pollReadiness(fd int, timeoutMs int) (bool, error) {
	for {
		pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfd, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, errors.Wrap(err, "termisu: poll")
		}
		return n > 0 && pfd[0].Revents&unix.POLLIN != 0, nil
	}
}

// fdSet sets fd's bit in set, sized generically off the platform's actual
// word width for FdSet.Bits (64 bits on Linux, 32 on some BSDs) rather than
// assuming one.
func fdSet(set *unix.FdSet, fd int) {
	wordBits := int(unsafe.Sizeof(set.Bits[0])) * 8
	word := fd / wordBits
	bit := uint(fd % wordBits)
	switch wordBits {
	case 64:
		(*[16]int64)(unsafe.Pointer(&set.Bits))[word] |= 1 << bit
	default:
		(*[32]int32)(unsafe.Pointer(&set.Bits))[word] |= 1 << bit
	}
}
