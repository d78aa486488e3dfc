package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
	"github.com/npratt/countdown/internal/scheduler"
	"github.com/npratt/countdown/internal/surface"
)

// renderOptions controls a headless render.
type renderOptions struct {
	Slots    []string
	Duration time.Duration
	Final    bool // print only the final display state
}

// renderSession runs a session on virtual time and writes every display
// write to w, stamped with the loop offset. The whole session takes
// milliseconds of wall time.
func renderSession(w io.Writer, logger *slog.Logger, opts renderOptions) error {
	loop := scheduler.NewLoop()

	var emitter events.Emitter = events.EmitterFunc(func(events.Event) {})
	if !opts.Final {
		emitter = events.EmitterFunc(func(e events.Event) {
			if line := events.Format(e); line != "" {
				_, _ = fmt.Fprintf(w, "[%s] %s\n", formatOffset(loop.Now()), line)
			}
		})
	}

	page := surface.NewPage(opts.Slots, surface.WithEmitter(emitter))
	engine := countdown.New(page, loop,
		countdown.WithLogger(logger),
		countdown.WithObserver(func(t countdown.Transition) { emitTransition(emitter, t) }),
	)

	if err := engine.InitializeDisplay(); err != nil {
		return err
	}
	if err := engine.StartSession(); err != nil {
		return err
	}
	runErr := loop.Advance(opts.Duration)

	if opts.Final {
		for _, name := range page.Names() {
			slot, _ := page.Slot(name)
			_, _ = fmt.Fprintf(w, "%s = %q", name, slot.Text)
			for _, class := range slot.Classes {
				_, _ = fmt.Fprintf(w, " .%s", class)
			}
			_, _ = fmt.Fprintln(w)
		}
	}
	_, _ = fmt.Fprintf(w, "status: %s at %s\n", engine.Status(), formatOffset(loop.Now()))
	return runErr
}

// formatOffset renders a loop offset as MM:SS.
func formatOffset(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
