package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
)

// slotView is the TUI's copy of one display slot.
type slotView struct {
	text    string
	classes []string
}

func (s slotView) hasClass(class string) bool {
	return slices.Contains(s.classes, class)
}

// model is the bubbletea model for the TUI.
type model struct {
	// Event source
	eventChan <-chan events.Event

	// Mirrored display surface
	slots map[string]slotView

	// Session state as reported by engine events
	status    countdown.Status
	sessionID string
	errMsg    string

	// UI state
	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// Callbacks
	onStart   func()
	onQuit    func()
	autoStart bool
}

// eventMsg wraps an event for the bubbletea message system.
type eventMsg struct {
	events.Event
}

// channelClosedMsg signals that the event channel was closed.
type channelClosedMsg struct{}

// autoStartMsg asks the model to start a session on launch.
type autoStartMsg struct{}

// newModel creates a new model with the given configuration.
func newModel(eventChan <-chan events.Event, onStart, onQuit func(), autoStart bool) model {
	return model{
		eventChan: eventChan,
		slots:     make(map[string]slotView),
		status:    countdown.StatusIdle,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		help:      help.New(),
		keys:      defaultKeyMap(),
		onStart:   onStart,
		onQuit:    onQuit,
		autoStart: autoStart,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.eventChan)}
	if m.autoStart {
		cmds = append(cmds, func() tea.Msg { return autoStartMsg{} })
	}
	return tea.Batch(cmds...)
}

// waitForEvent creates a command that waits for the next event from the channel.
// Returns channelClosedMsg if the channel is closed.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return eventMsg{event}
	}
}

// slot returns the mirrored slot, empty if nothing was written to it yet.
func (m model) slot(name string) slotView {
	return m.slots[name]
}

// doneVisible reports whether the done slot carries the show class.
func (m model) doneVisible() bool {
	return m.slot(countdown.SlotDone).hasClass(countdown.ShowMessageClass)
}
