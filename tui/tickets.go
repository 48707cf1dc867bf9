package tui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sangamparmar/MovieFrenz/document"
	"github.com/sangamparmar/MovieFrenz/model"
	"github.com/sangamparmar/MovieFrenz/service"
)

type ticketsMsg struct {
	tickets []model.Ticket
	err     error
}

type exportMsg struct {
	ticketID string
	path     string
	err      error
}

type copiedMsg struct {
	id  string
	err error
}

type openedMsg struct {
	path string
	err  error
}

// ticketView is what the ticket screen shows: ticketsLoading, ticketsEmpty
// or ticketsPopulated.
type ticketView interface {
	ticketView()
}

type ticketsLoading struct{}

type ticketsEmpty struct{}

type ticketsPopulated struct {
	tickets []model.Ticket
}

func (ticketsLoading) ticketView()   {}
func (ticketsEmpty) ticketView()     {}
func (ticketsPopulated) ticketView() {}

func (m appModel) ticketView() ticketView {
	if !m.fetchDone {
		return ticketsLoading{}
	}
	if len(m.tickets) == 0 {
		return ticketsEmpty{}
	}
	return ticketsPopulated{tickets: m.tickets}
}

func (m appModel) ticketsView() string {
	switch v := m.ticketView().(type) {
	case ticketsLoading:
		return fmt.Sprintf("%s Loading your tickets\n\n%s", m.spinner.View(), hint("Fetching data..."))
	case ticketsEmpty:
		return lipgloss.NewStyle().Padding(0, 2).Render(model.NoTicketsMessage)
	case ticketsPopulated:
		return m.ticketList.View() + "\n" + hint(fmt.Sprintf("%d tickets", len(v.tickets)))
	default:
		return ""
	}
}

// mountTickets switches to the ticket screen and starts its single fetch.
// Tickets from an earlier mount stay visible through a failed fetch.
func (m *appModel) mountTickets() tea.Cmd {
	m.state = stateTickets
	m.fetchDone = false
	return tea.Batch(m.fetchTicketsCmd(), m.spinner.Tick)
}

func (m appModel) fetchTicketsCmd() tea.Cmd {
	client := m.client
	cred := m.credential
	timeout := m.timeout
	return func() tea.Msg {
		if client == nil {
			return ticketsMsg{err: errors.New("no ticket client configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tickets, err := client.GetTickets(ctx, cred)
		return ticketsMsg{tickets: tickets, err: err}
	}
}

// applyTickets settles a fetch. It runs whatever screen is showing.
func (m appModel) applyTickets(msg ticketsMsg) appModel {
	m.fetchDone = true
	if msg.err != nil {
		switch {
		case service.IsUnauthorized(msg.err):
			m.logger.Warn("fetch tickets rejected", "reason", "unauthorized", "error", msg.err)
		case service.IsNotFound(msg.err):
			m.logger.Error("fetch tickets failed", "reason", "endpoint not found", "error", msg.err)
		default:
			m.logger.Error("fetch tickets failed", "error", msg.err)
		}
		return m
	}
	m.tickets = msg.tickets
	m.ticketList.SetItems(buildTicketItems(msg.tickets))
	m.logger.Debug("tickets loaded", "count", len(msg.tickets))
	return m
}

func (m appModel) handleTicketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		if listPtr := m.activeList(); listPtr != nil && (listPtr.SettingFilter() || listPtr.IsFiltered()) {
			listPtr.ResetFilter()
			return m, nil, true
		}
		return m, nil, true
	case key.Matches(msg, keys.Download):
		ticket, ok := m.selectedTicket()
		if !ok {
			return m, nil, true
		}
		return m, exportTicketCmd(ticket, m.downloadDir), true
	case key.Matches(msg, keys.CopyID):
		ticket, ok := m.selectedTicket()
		if !ok || strings.TrimSpace(ticket.Id) == "" {
			return m, nil, true
		}
		return m, copyIDCmd(ticket.Id), true
	case key.Matches(msg, keys.OpenPDF):
		if m.lastExport == "" {
			return m, nil, true
		}
		return m, openFileCmd(m.lastExport), true
	}
	return m, nil, false
}

func (m appModel) selectedTicket() (model.Ticket, bool) {
	if _, ok := m.ticketView().(ticketsPopulated); !ok {
		return model.Ticket{}, false
	}
	item, ok := m.ticketList.SelectedItem().(ticketItem)
	if !ok {
		return model.Ticket{}, false
	}
	return item.ticket, true
}

func exportTicketCmd(ticket model.Ticket, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := document.Save(ticket, dir)
		return exportMsg{ticketID: ticket.Id, path: path, err: err}
	}
}

func copyIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{id: id, err: clipboard.WriteAll(id)}
	}
}

func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{path: path, err: openFile(path)}
	}
}

func openFile(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "linux":
		return exec.Command("xdg-open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return fmt.Errorf("unsupported OS for opening files: %s", runtime.GOOS)
	}
}

type ticketItem struct {
	ticket model.Ticket
}

func (t ticketItem) Title() string {
	title, _ := showtimeDetails(t.ticket.Showtime)
	return title
}

func (t ticketItem) Description() string {
	_, when := showtimeDetails(t.ticket.Showtime)
	seats := model.FormatSeats(t.ticket.Seats)
	if seats == "" {
		seats = "No seats"
	}
	return fmt.Sprintf("%s • %s (%d seats)", when, seats, len(t.ticket.Seats))
}

func (t ticketItem) FilterValue() string {
	parts := []string{t.ticket.Showtime.Title, t.ticket.Showtime.Showtime, model.FormatSeats(t.ticket.Seats), t.ticket.Id}
	return strings.ToLower(strings.Join(parts, " "))
}

// showtimeDetails renders the title and start time of a showing.
func showtimeDetails(showtime model.Showtime) (string, string) {
	title := strings.TrimSpace(showtime.Title)
	if title == "" {
		title = "Untitled showing"
	}
	when := strings.TrimSpace(showtime.Showtime)
	if when == "" {
		when = "time to be announced"
	}
	return title, when
}

func buildTicketItems(tickets []model.Ticket) []list.Item {
	items := make([]list.Item, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, ticketItem{ticket: ticket})
	}
	return items
}
