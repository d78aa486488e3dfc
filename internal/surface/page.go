// Package surface provides the display surface the countdown engine writes
// to: a fixed set of named slots, each holding text and a set of classes.
package surface

import (
	"slices"
	"sync"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
)

// Slot is a read-only copy of one slot's contents.
type Slot struct {
	Text    string
	Classes []string
}

// HasClass reports whether class has been applied to the slot.
func (s Slot) HasClass(class string) bool {
	return slices.Contains(s.Classes, class)
}

// Page is a display surface with a fixed set of slots. Writes to a slot the
// page does not expose fail with *countdown.SlotMissingError. Every
// successful write is published to the page's emitter, if any.
type Page struct {
	mu      sync.RWMutex
	order   []string
	slots   map[string]*Slot
	emitter events.Emitter
}

// Option configures a Page.
type Option func(*Page)

// WithEmitter publishes slot writes as SlotTextEvent and SlotClassEvent.
func WithEmitter(e events.Emitter) Option {
	return func(p *Page) {
		p.emitter = e
	}
}

// NewPage creates a page exposing the given slot names. With no names it
// exposes countdown.Slots.
func NewPage(names []string, opts ...Option) *Page {
	if len(names) == 0 {
		names = countdown.Slots
	}

	p := &Page{
		slots: make(map[string]*Slot, len(names)),
	}
	for _, name := range names {
		if _, dup := p.slots[name]; dup {
			continue
		}
		p.order = append(p.order, name)
		p.slots[name] = &Slot{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetText replaces the text of a slot.
func (p *Page) SetText(slot, value string) error {
	p.mu.Lock()
	s, ok := p.slots[slot]
	if !ok {
		p.mu.Unlock()
		return &countdown.SlotMissingError{Slot: slot}
	}
	s.Text = value
	p.mu.Unlock()

	if p.emitter != nil {
		p.emitter.Emit(&events.SlotTextEvent{
			BaseEvent: events.NewSurfaceEvent(events.EventSlotText),
			Slot:      slot,
			Value:     value,
		})
	}
	return nil
}

// AddClass applies a class to a slot. Adding a class twice is a no-op, but
// the write is still published.
func (p *Page) AddClass(slot, class string) error {
	p.mu.Lock()
	s, ok := p.slots[slot]
	if !ok {
		p.mu.Unlock()
		return &countdown.SlotMissingError{Slot: slot}
	}
	if !slices.Contains(s.Classes, class) {
		s.Classes = append(s.Classes, class)
	}
	p.mu.Unlock()

	if p.emitter != nil {
		p.emitter.Emit(&events.SlotClassEvent{
			BaseEvent: events.NewSurfaceEvent(events.EventSlotClass),
			Slot:      slot,
			Class:     class,
		})
	}
	return nil
}

// Slot returns a copy of the named slot.
func (p *Page) Slot(name string) (Slot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.slots[name]
	if !ok {
		return Slot{}, false
	}
	return Slot{Text: s.Text, Classes: slices.Clone(s.Classes)}, true
}

// Names returns the exposed slot names in creation order.
func (p *Page) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.order)
}
