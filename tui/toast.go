package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sangamparmar/MovieFrenz/payment"
)

const toastDuration = 2 * time.Second

type toast struct {
	id    int
	level payment.NoticeLevel
	text  string
}

// toastExpiredMsg carries the id of the toast it was scheduled for so a
// newer toast is not dismissed by an older timer.
type toastExpiredMsg struct {
	id int
}

func (m *appModel) showToast(level payment.NoticeLevel, text string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, level: level, text: text}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *appModel) expireToast(msg toastExpiredMsg) {
	if m.toast != nil && m.toast.id == msg.id {
		m.toast = nil
	}
}

func (m appModel) toastView() string {
	if m.toast == nil {
		return ""
	}
	color := lipgloss.Color("2")
	icon := "✓"
	switch m.toast.level {
	case payment.NoticeWarning:
		color = lipgloss.Color("3")
		icon = "!"
	case payment.NoticeError:
		color = lipgloss.Color("1")
		icon = "✗"
	}
	box := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(color).
		Padding(0, 2).
		Render(icon + " " + m.toast.text)
	if m.width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}
