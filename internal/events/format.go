package events

import (
	"fmt"
	"strings"
)

// Format converts an event to a single human-readable line without timestamp.
// Returns empty string for nil or unknown event types.
func Format(event Event) string {
	if event == nil {
		return ""
	}

	switch e := event.(type) {
	case *SessionStartEvent:
		verb := "session started"
		if e.Restart {
			verb = "session restarted"
		}
		return fmt.Sprintf("%s: %s at %d:%02d", verb, ShortID(e.SessionID), e.Minutes, e.Seconds)
	case *SessionFinishedEvent:
		return fmt.Sprintf("session finished: %s", ShortID(e.SessionID))
	case *SlotTextEvent:
		return fmt.Sprintf("%s = %q", e.Slot, e.Value)
	case *SlotClassEvent:
		return fmt.Sprintf("%s += .%s", e.Slot, e.Class)
	case *ErrorEvent:
		return "error: " + e.Message
	default:
		return ""
	}
}

// FormatWithTimestamp prefixes Format's output with the event's wall time.
func FormatWithTimestamp(event Event) string {
	if event == nil {
		return ""
	}
	ts := event.Timestamp().Format("15:04:05")
	detail := Format(event)
	if detail == "" {
		return fmt.Sprintf("[%s] %s", ts, event.Type())
	}
	return fmt.Sprintf("[%s] %s", ts, detail)
}

// ShortID returns the first segment of a UUID-style session ID.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
