package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sangamparmar/MovieFrenz/model"
	"github.com/sangamparmar/MovieFrenz/payment"
	"github.com/sangamparmar/MovieFrenz/service"
)

type appState int

const (
	stateTickets appState = iota
	statePayment
	stateConfirmation
)

const defaultTimeout = 12 * time.Second

// TicketSource is the part of the API client the ticket screen needs.
type TicketSource interface {
	GetTickets(ctx context.Context, cred service.Credential) ([]model.Ticket, error)
}

type Options struct {
	Client      TicketSource
	Credential  service.Credential
	Logger      *slog.Logger
	DownloadDir string
	Timeout     time.Duration

	// Selection starts the program on the payment screen when set.
	Selection *model.BookingSelection
}

type appModel struct {
	client      TicketSource
	credential  service.Credential
	identity    *service.Identity
	logger      *slog.Logger
	downloadDir string
	timeout     time.Duration

	state appState

	width  int
	height int

	tickets    []model.Ticket
	fetchDone  bool
	ticketList list.Model
	lastExport string

	selection   model.BookingSelection
	form        payment.Form
	inputs      [4]textinput.Model
	focus       int
	booking     *model.Booking
	bookingPath string

	spinner spinner.Model

	toast    *toast
	toastSeq int
}

func New(opts Options) tea.Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	m := appModel{
		client:      opts.Client,
		credential:  opts.Credential,
		logger:      logger,
		downloadDir: opts.DownloadDir,
		timeout:     timeout,
		state:       stateTickets,
	}
	if identity, err := opts.Credential.Identity(); err == nil {
		m.identity = &identity
	}

	m.ticketList = newList("My Tickets")
	m.inputs = newPaymentInputs()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	if opts.Selection != nil {
		m.selection = *opts.Selection
		m.state = statePayment
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	switch m.state {
	case stateTickets:
		return tea.Batch(m.fetchTicketsCmd(), m.spinner.Tick)
	case statePayment:
		return textinput.Blink
	default:
		return nil
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.state {
		case stateTickets:
			if m.handleFilterInput(msg) {
				return m, nil
			}
			if next, cmd, handled := m.handleTicketKey(msg); handled {
				return next, cmd
			}
		case statePayment:
			return m.handlePaymentKey(msg)
		case stateConfirmation:
			return m.handleConfirmationKey(msg)
		}
		// fallthrough to component update

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoading() {
			return m, cmd
		}
		return m, nil

	case toastExpiredMsg:
		m.expireToast(msg)
		return m, nil

	case ticketsMsg:
		return m.applyTickets(msg), nil

	case exportMsg:
		if msg.err != nil {
			m.logger.Error("export ticket failed", "ticket_id", msg.ticketID, "error", msg.err)
			return m, m.showToast(payment.NoticeError, "Could not save ticket: "+msg.err.Error())
		}
		m.lastExport = msg.path
		m.logger.Info("ticket exported", "ticket_id", msg.ticketID, "path", msg.path)
		return m, m.showToast(payment.NoticeSuccess, "Ticket saved to "+msg.path)

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("copy ticket id failed", "error", msg.err)
			return m, m.showToast(payment.NoticeError, "Clipboard unavailable")
		}
		return m, m.showToast(payment.NoticeSuccess, "Copied ticket id "+msg.id)

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("open pdf failed", "path", msg.path, "error", msg.err)
			return m, m.showToast(payment.NoticeError, msg.err.Error())
		}
		return m, nil

	case bookingSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save last booking failed", "error", msg.err)
			return m, nil
		}
		m.bookingPath = msg.path
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateTickets:
		if _, ok := m.ticketView().(ticketsPopulated); ok {
			m.ticketList, cmd = m.ticketList.Update(msg)
		}
	case statePayment:
		cmd = m.updateFocusedInput(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	body := ""
	switch m.state {
	case stateTickets:
		body = m.ticketsView()
	case statePayment:
		body = m.paymentView()
	case stateConfirmation:
		body = m.confirmationView()
	}
	return m.toastView() + "\n" + m.headerView() + "\n\n" + body
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("MovieFrenz")
	sub := []string{}
	switch m.state {
	case stateTickets:
		sub = append(sub, "My Tickets")
	case statePayment:
		sub = append(sub, "Payment")
	case stateConfirmation:
		sub = append(sub, "Booking Confirmed")
	}
	if m.identity != nil {
		if label := m.identity.Label(); label != "" {
			sub = append(sub, "Signed in as "+label)
		}
		if m.identity.Expired(time.Now()) {
			sub = append(sub, "token expired")
		} else if !m.identity.ExpiresAt.IsZero() {
			sub = append(sub, "token expires "+m.identity.ExpiresAt.Local().Format("Jan 2 15:04"))
		}
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	var hints string
	switch m.state {
	case stateTickets:
		hints = helpLine(keys.Quit, keys.Download, keys.CopyID, keys.OpenPDF) + hint(" • type to filter")
	case statePayment:
		hints = helpLine(keys.Quit, keys.NextField, keys.PrevMethod, keys.Submit)
	case stateConfirmation:
		hints = helpLine(keys.Quit, keys.Tickets)
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hints
}

func (m appModel) handleConfirmationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tickets):
		cmd := m.mountTickets()
		return m, cmd
	case key.Matches(msg, keys.Back), msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

// activeList is the list receiving type-to-filter input, if any.
func (m *appModel) activeList() *list.Model {
	if m.state != stateTickets {
		return nil
	}
	if _, ok := m.ticketView().(ticketsPopulated); !ok {
		return nil
	}
	return &m.ticketList
}

func (m appModel) isLoading() bool {
	_, loading := m.ticketView().(ticketsLoading)
	return m.state == stateTickets && loading
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 7
	if h < 6 {
		h = 6
	}
	m.ticketList.SetSize(m.width, h)
	for i := range m.inputs {
		m.inputs[i].Width = min(40, max(10, m.width-24))
	}
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}
