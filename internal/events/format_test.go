package events

import (
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "nil",
			event: nil,
			want:  "",
		},
		{
			name: "session start",
			event: &SessionStartEvent{
				BaseEvent: NewEngineEvent(EventSessionStart),
				SessionID: "3f2a9c1e-0000-4000-8000-000000000000",
				Minutes:   24,
				Seconds:   59,
			},
			want: "session started: 3f2a9c1e at 24:59",
		},
		{
			name: "session restart",
			event: &SessionStartEvent{
				BaseEvent: NewEngineEvent(EventSessionStart),
				SessionID: "abc",
				Restart:   true,
				Minutes:   24,
				Seconds:   59,
			},
			want: "session restarted: abc at 24:59",
		},
		{
			name: "session finished",
			event: &SessionFinishedEvent{
				BaseEvent: NewEngineEvent(EventSessionFinished),
				SessionID: "abc-def",
			},
			want: "session finished: abc",
		},
		{
			name:  "slot text keeps leading space",
			event: slotText("done", " Time Up!! Take a Break"),
			want:  `done = " Time Up!! Take a Break"`,
		},
		{
			name: "slot class",
			event: &SlotClassEvent{
				BaseEvent: NewSurfaceEvent(EventSlotClass),
				Slot:      "done",
				Class:     "show_message",
			},
			want: "done += .show_message",
		},
		{
			name:  "error",
			event: &ErrorEvent{BaseEvent: NewEvent(EventError, SourceLoop), Message: "boom"},
			want:  "error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.event); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatWithTimestamp(t *testing.T) {
	ev := slotText("minutes", "23")
	ev.Time = time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)

	got := FormatWithTimestamp(ev)
	if got != `[09:30:15] minutes = "23"` {
		t.Errorf("FormatWithTimestamp() = %q", got)
	}

	unknown := &BaseEvent{EventType: "custom", Time: ev.Time}
	if got := FormatWithTimestamp(unknown); !strings.HasSuffix(got, "custom") {
		t.Errorf("unknown event should fall back to its type, got %q", got)
	}
}
