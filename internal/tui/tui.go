// Package tui renders the countdown display surface in the terminal using
// bubbletea. The TUI is a pure sink: it mirrors slot writes it receives as
// events and never touches the engine directly.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/countdown/internal/events"
)

// TUI is the terminal front end for a countdown session.
type TUI struct {
	eventChan <-chan events.Event
	onStart   func()
	onQuit    func()
	altScreen bool
	autoStart bool
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI fed by eventChan.
func New(eventChan <-chan events.Event, opts ...Option) *TUI {
	t := &TUI{
		eventChan: eventChan,
		altScreen: true,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithOnStart sets the callback invoked when the user presses 's'.
func WithOnStart(fn func()) Option {
	return func(t *TUI) {
		t.onStart = fn
	}
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithAltScreen controls whether the TUI takes over the full terminal.
func WithAltScreen(enabled bool) Option {
	return func(t *TUI) {
		t.altScreen = enabled
	}
}

// WithAutoStart starts a session as soon as the TUI opens.
func WithAutoStart(enabled bool) Option {
	return func(t *TUI) {
		t.autoStart = enabled
	}
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run() error {
	m := newModel(t.eventChan, t.onStart, t.onQuit, t.autoStart)

	var opts []tea.ProgramOption
	if t.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
