// Package events defines the event taxonomy for countdown sessions and the
// channel-based plumbing that carries events from the engine and display
// surface to the TUI, console and log file.
package events

import "time"

// EventType identifies the category and nature of an event.
type EventType string

const (
	// Session lifecycle
	EventSessionStart    EventType = "session.start"
	EventSessionFinished EventType = "session.finished"

	// Display surface writes
	EventSlotText  EventType = "slot.text"
	EventSlotClass EventType = "slot.class"

	// Errors surfaced by the loop driver
	EventError EventType = "error"
)

// Source constants identify the origin of events.
const (
	SourceEngine  = "engine"
	SourceSurface = "surface"
	SourceLoop    = "loop"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
}

// Emitter publishes events. Implementations must not block.
type Emitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f(event).
func (f EmitterFunc) Emit(event Event) {
	f(event)
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Source returns the origin of the event.
func (e BaseEvent) Source() string {
	return e.Src
}

// SessionStartEvent is emitted when a session starts or restarts.
type SessionStartEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Restart   bool   `json:"restart,omitempty"`
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
}

// SessionFinishedEvent is emitted once per session when time is up.
type SessionFinishedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
}

// SlotTextEvent is emitted for every text write to a display slot.
type SlotTextEvent struct {
	BaseEvent
	Slot  string `json:"slot"`
	Value string `json:"value"`
}

// SlotClassEvent is emitted when a class is added to a display slot.
type SlotClassEvent struct {
	BaseEvent
	Slot  string `json:"slot"`
	Class string `json:"class"`
}

// ErrorEvent is emitted when the loop stops on an error.
type ErrorEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// NewEvent creates a BaseEvent stamped with the current time.
func NewEvent(eventType EventType, source string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
	}
}

// NewEngineEvent creates a BaseEvent with the engine as the source.
func NewEngineEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceEngine)
}

// NewSurfaceEvent creates a BaseEvent with the display surface as the source.
func NewSurfaceEvent(eventType EventType) BaseEvent {
	return NewEvent(eventType, SourceSurface)
}
