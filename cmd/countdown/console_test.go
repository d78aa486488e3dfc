package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
)

func TestPrintEvents(t *testing.T) {
	ch := make(chan events.Event, 4)
	ch <- &events.SlotTextEvent{
		BaseEvent: events.NewSurfaceEvent(events.EventSlotText),
		Slot:      countdown.SlotMinutes,
		Value:     "24",
	}
	ch <- &events.SlotClassEvent{
		BaseEvent: events.NewSurfaceEvent(events.EventSlotClass),
		Slot:      countdown.SlotDone,
		Class:     countdown.ShowMessageClass,
	}
	close(ch)

	var buf bytes.Buffer
	<-printEvents(context.Background(), &buf, ch)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], `minutes = "24"`) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "done += .show_message") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "[") {
		t.Errorf("lines should carry a timestamp, got %q", lines[0])
	}
}

func TestPrintEvents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan events.Event)

	done := printEvents(ctx, &bytes.Buffer{}, ch)
	cancel()
	<-done
}

func TestEmitTransition(t *testing.T) {
	var got []events.Event
	emitter := events.EmitterFunc(func(e events.Event) { got = append(got, e) })

	state := countdown.State{Minutes: countdown.InitialMinutes, Seconds: countdown.InitialSeconds}
	emitTransition(emitter, countdown.Transition{SessionID: "a", From: countdown.StatusIdle, To: countdown.StatusRunning, State: state})
	emitTransition(emitter, countdown.Transition{SessionID: "b", From: countdown.StatusRunning, To: countdown.StatusRunning, State: state})
	emitTransition(emitter, countdown.Transition{SessionID: "b", From: countdown.StatusRunning, To: countdown.StatusFinished})
	emitTransition(emitter, countdown.Transition{To: countdown.StatusIdle})

	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if s := got[0].(*events.SessionStartEvent); s.Restart || s.SessionID != "a" {
		t.Errorf("first start = %+v", s)
	}
	if s := got[1].(*events.SessionStartEvent); !s.Restart {
		t.Error("running to running should be a restart")
	}
	if _, ok := got[2].(*events.SessionFinishedEvent); !ok {
		t.Errorf("third event = %T", got[2])
	}
}
