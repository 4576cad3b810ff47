// Package termisu drives a character terminal from an in-memory cell grid.
//
// Applications build their UI by writing Cells into a double-buffered grid
// (SetCell / Resize / RenderTo), and read keyboard, mouse, resize, and timer
// events back from a single event loop (EventLoop.Events). The terminfo
// subpackage decodes the compiled capability database used to drive the
// terminal; internal/poller supplies an epoll/kqueue/poll multiplexer. The
// event loop's sources do not use it: they run on time.Ticker and on the
// Reader's own select/poll readiness check.
package termisu
