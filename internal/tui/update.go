package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
)

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		cmd := m.handleEvent(msg.Event)
		return m, tea.Batch(cmd, waitForEvent(m.eventChan))

	case channelClosedMsg:
		slog.Info("event channel closed, exiting TUI")
		return m, tea.Quit

	case autoStartMsg:
		m.start()
		return m, nil

	case spinner.TickMsg:
		if m.status != countdown.StatusRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		m.start()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// start asks the host to start a session. The display changes only once the
// resulting events arrive.
func (m *model) start() {
	m.errMsg = ""
	if m.onStart != nil {
		m.onStart()
	}
}

// handleEvent applies an event to the mirrored state.
func (m *model) handleEvent(event events.Event) tea.Cmd {
	switch e := event.(type) {
	case *events.SlotTextEvent:
		s := m.slots[e.Slot]
		s.text = e.Value
		m.slots[e.Slot] = s

	case *events.SlotClassEvent:
		s := m.slots[e.Slot]
		if !s.hasClass(e.Class) {
			s.classes = append(s.classes, e.Class)
		}
		m.slots[e.Slot] = s

	case *events.SessionStartEvent:
		wasRunning := m.status == countdown.StatusRunning
		m.status = countdown.StatusRunning
		m.sessionID = e.SessionID
		if !wasRunning {
			return m.spinner.Tick
		}

	case *events.SessionFinishedEvent:
		m.status = countdown.StatusFinished

	case *events.ErrorEvent:
		m.errMsg = e.Message
	}
	return nil
}
