package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/events"
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderClock())
	if m.doneVisible() {
		sections = append(sections, styles.DoneVisible.Render(m.slot(countdown.SlotDone).text))
	}
	if m.errMsg != "" {
		sections = append(sections, styles.Error.Render("error: "+m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	body := styles.Container.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))

	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// renderHeader renders the title, status and short session ID.
func (m model) renderHeader() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("countdown"))
	b.WriteString(" ")

	switch m.status {
	case countdown.StatusRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(styles.StatusRunning.Render(m.status.String()))
	case countdown.StatusFinished:
		b.WriteString(styles.StatusFinished.Render(m.status.String()))
	default:
		b.WriteString(styles.StatusIdle.Render(m.status.String()))
	}

	if m.sessionID != "" {
		b.WriteString(" ")
		b.WriteString(styles.Session.Render(events.ShortID(m.sessionID)))
	}
	return b.String()
}

// renderClock renders the minutes and seconds slots as written, so quirks such
// as a lone "0" show exactly as the engine produced them.
func (m model) renderClock() string {
	return styles.Clock.Render(m.slot(countdown.SlotMinutes).text + ":" + m.slot(countdown.SlotSeconds).text)
}
