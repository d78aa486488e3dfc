package countdown

import (
	"errors"
	"fmt"
)

// Display is the sink the engine pushes counter text and the completion flag to.
type Display interface {
	SetText(slot, value string) error
	AddClass(slot, class string) error
}

// ErrSlotMissing matches any SlotMissingError via errors.Is.
var ErrSlotMissing = errors.New("display slot missing")

// SlotMissingError is returned by a Display when a write targets a slot it
// does not expose.
type SlotMissingError struct {
	Slot string
}

func (e *SlotMissingError) Error() string {
	return fmt.Sprintf("display slot %q not found", e.Slot)
}

// Is reports whether target is ErrSlotMissing.
func (e *SlotMissingError) Is(target error) bool {
	return target == ErrSlotMissing
}
