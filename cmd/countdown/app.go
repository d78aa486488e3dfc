package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/npratt/countdown/internal/config"
	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
	"github.com/npratt/countdown/internal/scheduler"
	"github.com/npratt/countdown/internal/surface"
)

// app wires one run of the countdown: the event router, the display page,
// the loop, the engine and the event log.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	router *events.Router
	page   *surface.Page
	loop   *scheduler.Loop
	engine *countdown.Engine

	logSink    *events.LogSink
	sinkCancel context.CancelFunc
	finished   chan struct{}
}

func newApp(cfg *config.Config, logger *slog.Logger, loopOpts ...scheduler.Option) *app {
	router := events.NewRouter(cfg.Events.BufferSize)
	loop := scheduler.NewLoop(loopOpts...)
	page := surface.NewPage(cfg.Surface.Slots, surface.WithEmitter(router))

	a := &app{
		cfg:      cfg,
		logger:   logger,
		router:   router,
		page:     page,
		loop:     loop,
		finished: make(chan struct{}, 1),
	}
	a.engine = countdown.New(page, loop,
		countdown.WithLogger(logger),
		countdown.WithObserver(a.onTransition),
	)
	return a
}

// onTransition publishes engine status changes and signals finished sessions.
func (a *app) onTransition(t countdown.Transition) {
	emitTransition(a.router, t)
	if t.To == countdown.StatusFinished {
		select {
		case a.finished <- struct{}{}:
		default:
		}
	}
}

// emitTransition converts an engine transition into a session event.
func emitTransition(e events.Emitter, t countdown.Transition) {
	switch t.To {
	case countdown.StatusRunning:
		e.Emit(&events.SessionStartEvent{
			BaseEvent: events.NewEngineEvent(events.EventSessionStart),
			SessionID: t.SessionID,
			Restart:   t.From == countdown.StatusRunning,
			Minutes:   t.State.Minutes,
			Seconds:   t.State.Seconds,
		})
	case countdown.StatusFinished:
		e.Emit(&events.SessionFinishedEvent{
			BaseEvent: events.NewEngineEvent(events.EventSessionFinished),
			SessionID: t.SessionID,
			Minutes:   t.State.Minutes,
			Seconds:   t.State.Seconds,
		})
	}
}

// startLogSink subscribes the JSON lines event log to the router.
func (a *app) startLogSink(ctx context.Context) error {
	sinkCtx, cancel := context.WithCancel(ctx)
	sink := events.NewLogSink(a.cfg.Paths.Log)
	if err := sink.Start(sinkCtx, a.router.Subscribe()); err != nil {
		cancel()
		return fmt.Errorf("start log sink: %w", err)
	}
	a.logSink = sink
	a.sinkCancel = cancel
	return nil
}

// initialize queues the idle display write. Subscribers attached before the
// loop runs see it.
func (a *app) initialize() {
	a.loop.Post(func() error {
		return a.engine.InitializeDisplay()
	})
}

// requestStart queues a session start on the loop. Safe from any goroutine.
func (a *app) requestStart() {
	a.loop.Post(func() error {
		return a.engine.StartSession()
	})
}

// runLoop drives the loop in real time. A loop failure is published as an
// error event before it is returned.
func (a *app) runLoop(ctx context.Context) error {
	err := a.loop.Run(ctx)
	if err != nil {
		a.logger.Error("loop stopped", "error", err)
		a.router.Emit(&events.ErrorEvent{
			BaseEvent: events.NewEvent(events.EventError, events.SourceLoop),
			Message:   err.Error(),
		})
	}
	return err
}

// close stops the engine, closes the router and flushes the event log.
func (a *app) close() {
	a.engine.Stop()
	a.router.Close()
	if a.logSink != nil {
		if err := a.logSink.Stop(); err != nil {
			a.logger.Warn("close event log", "error", err)
		}
		a.sinkCancel()
	}
	if dropped := a.router.Dropped(); dropped > 0 {
		a.logger.Warn("events dropped by slow subscribers", "count", dropped)
	}
}
