package main

import (
	"context"
	"fmt"
	"io"

	"github.com/npratt/countdown/internal/events"
)

// printEvents writes each event as a timestamped line until the channel
// closes or ctx is done. The returned channel closes when printing stops.
func printEvents(ctx context.Context, w io.Writer, ch <-chan events.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if line := events.FormatWithTimestamp(event); line != "" {
					_, _ = fmt.Fprintln(w, line)
				}
			}
		}
	}()
	return done
}

// runConsole starts a session immediately and prints every event until the
// session finishes, the loop fails, or ctx is done.
func runConsole(ctx context.Context, a *app, w io.Writer) error {
	printed := printEvents(ctx, w, a.router.Subscribe())

	a.initialize()
	a.requestStart()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- a.runLoop(loopCtx)
	}()

	var err error
	select {
	case err = <-loopDone:
	case <-a.finished:
		cancel()
		err = <-loopDone
	}

	a.close()
	<-printed
	return err
}
