// Command termisu-demo drives a terminal with termisu directly: it opens
// the controlling tty, switches to raw mode, paints a static frame, and
// waits for a keypress or a few timer ticks (repainting on resize) before
// restoring the terminal and exiting. It exists to
// exercise the full stack end to end — terminfo lookup, the cell grid,
// the input parser, and the event loop — the way a real application would.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarluq/termisu-sub002"
	"github.com/omarluq/termisu-sub002/terminfo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termisu-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("TERMISU_DEBUG") == "" {
		logger = zerolog.Nop()
	}
	termisu.SetLogger(logger)

	term, err := termisu.OpenTerminal("")
	if err != nil {
		return err
	}
	defer term.Close()

	caps := loadCapabilities()
	cache := termisu.NewRenderCache(termisu.NewTerminalSink(term, caps))

	w, h := term.Size()
	grid := termisu.NewCellGrid(w, h)
	paintFrame(grid)

	loop := termisu.NewEventLoop()
	reader := termisu.NewReader(term.InFD())
	parser := termisu.NewInputParser(reader)
	loop.AddSource(termisu.NewInputSource(parser))
	loop.AddSource(termisu.NewResizeSource(term.Size, 100*time.Millisecond))
	loop.AddSource(termisu.NewTimerSource(time.Second))

	return term.WithMode(termisu.ModeRaw, true, func() {
		cache.Invalidate()
		if err := grid.SyncTo(cache); err != nil {
			return
		}

		loop.Start()
		defer loop.Stop()

		ticks := 0
		for ev := range loop.Events() {
			switch ev.Type {
			case termisu.EventKey:
				if ev.Key != termisu.KeyUnknown {
					return
				}
			case termisu.EventResize:
				grid.Resize(ev.NewWidth, ev.NewHeight)
				paintFrame(grid)
				_ = grid.SyncTo(cache)
			case termisu.EventTick:
				ticks++
				if ticks > 5 {
					return
				}
			}
		}
	})
}

func loadCapabilities() terminfo.Capabilities {
	name := os.Getenv("TERM")
	if name == "" {
		name = "xterm"
	}
	if data, err := terminfo.Load(name); err == nil {
		if caps, err := terminfo.Parse(data); err == nil {
			return caps
		}
	}
	return terminfo.Fallback(name)
}

func paintFrame(grid *termisu.CellGrid) {
	w, h := grid.Size()
	grid.ClearBack()
	msg := []rune("termisu — press any key to exit")
	for i, r := range msg {
		if i >= w {
			break
		}
		grid.SetCell(i, 0, termisu.Cell{
			Ch: r,
			Fg: termisu.ANSI(6),
			Bg: termisu.Default,
		})
	}
	for x := 0; x < w; x++ {
		grid.SetCell(x, h-1, termisu.Cell{Ch: '-', Fg: termisu.ANSI(8), Bg: termisu.Default})
	}
}
