package events

import (
	"encoding/json"
	"fmt"
)

// ParseLine decodes one JSON line written by LogSink back into a typed event.
// Unknown types decode into a bare BaseEvent so callers can still show them.
func ParseLine(line []byte) (Event, error) {
	var base BaseEvent
	if err := json.Unmarshal(line, &base); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	if base.EventType == "" {
		return nil, fmt.Errorf("parse event: missing type")
	}

	var event Event
	switch base.EventType {
	case EventSessionStart:
		event = &SessionStartEvent{}
	case EventSessionFinished:
		event = &SessionFinishedEvent{}
	case EventSlotText:
		event = &SlotTextEvent{}
	case EventSlotClass:
		event = &SlotClassEvent{}
	case EventError:
		event = &ErrorEvent{}
	default:
		return &base, nil
	}

	if err := json.Unmarshal(line, event); err != nil {
		return nil, fmt.Errorf("parse %s event: %w", base.EventType, err)
	}
	return event, nil
}
