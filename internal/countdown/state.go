// Package countdown implements the session countdown engine: a minutes counter
// and a seconds counter advanced by two independent periodic ticks, pushed to
// a display surface, ending with a "time up" message.
package countdown

import "time"

// Slot names exposed by a display surface.
const (
	SlotMinutes = "minutes"
	SlotSeconds = "seconds"
	SlotDone    = "done"
)

// Slots lists every slot the engine writes to.
var Slots = []string{SlotMinutes, SlotSeconds, SlotDone}

const (
	// InitialMinutes and InitialSeconds start a session at 24:59, one second
	// short of the advertised 25:00.
	InitialMinutes = 24
	InitialSeconds = 59

	// SecondsReset is what the seconds counter wraps to once it reaches zero
	// while minutes remain. It is 60, not 59: the tick that wraps still shows
	// 0, and the next tick shows 59.
	SecondsReset = 60

	// MinutePeriod and SecondPeriod are the tick cadences.
	MinutePeriod = 60 * time.Second
	SecondPeriod = time.Second

	// IdleMinutesText and IdleSecondsText are shown before any session starts.
	IdleMinutesText = "25"
	IdleSecondsText = "00"

	// DoneMessage is written to the done slot when the session ends.
	DoneMessage = " Time Up!! Take a Break"

	// ShowMessageClass makes the done slot visible.
	ShowMessageClass = "show_message"
)

// State is the pair of counters owned by an Engine.
// Minutes may go negative: only the second tick ends a session.
type State struct {
	Minutes int
	Seconds int
}

// Status is the session lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Transition describes a status change, reported to an Engine's observer.
type Transition struct {
	SessionID string
	From      Status
	To        Status
	State     State
}
