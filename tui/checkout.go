package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sangamparmar/MovieFrenz/model"
	"github.com/sangamparmar/MovieFrenz/payment"
	"github.com/sangamparmar/MovieFrenz/store"
)

type bookingSavedMsg struct {
	path string
	err  error
}

var methodOrder = []model.PaymentMethod{model.PaymentMethodCreditCard, model.PaymentMethodUPI}

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(18)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func newPaymentInputs() [4]textinput.Model {
	var inputs [4]textinput.Model
	for _, field := range []payment.Field{payment.FieldCardNumber, payment.FieldExpiryDate, payment.FieldCVV, payment.FieldUPIID} {
		input := textinput.New()
		input.Prompt = ""
		input.Width = 24
		switch field {
		case payment.FieldCardNumber:
			input.Placeholder = "1234 5678 9012 3456"
			input.CharLimit = payment.CardNumberMaxLen
		case payment.FieldExpiryDate:
			input.Placeholder = "MM/YY"
			input.CharLimit = payment.ExpiryMaxLen
		case payment.FieldCVV:
			input.Placeholder = "123"
			input.CharLimit = payment.CVVMaxLen
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		case payment.FieldUPIID:
			input.Placeholder = "name@bank"
		}
		inputs[field] = input
	}
	return inputs
}

// focusables: 0 is the method toggle, then the visible fields, then Pay.
func (m appModel) focusCount() int {
	return len(payment.FieldsFor(m.form.Method)) + 2
}

func (m appModel) focusedField() (payment.Field, bool) {
	fields := payment.FieldsFor(m.form.Method)
	idx := m.focus - 1
	if idx < 0 || idx >= len(fields) {
		return 0, false
	}
	return fields[idx], true
}

func (m *appModel) setFocus(focus int) tea.Cmd {
	count := m.focusCount()
	m.focus = ((focus % count) + count) % count
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if field, ok := m.focusedField(); ok {
		return m.inputs[field].Focus()
	}
	return nil
}

func (m *appModel) selectMethod(method model.PaymentMethod) {
	m.form = m.form.SelectMethod(method)
	m.focus = 0
}

func (m appModel) handlePaymentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		return m.submitPayment()
	case key.Matches(msg, keys.NextField):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case key.Matches(msg, keys.PrevField):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	}

	if m.focus == 0 {
		switch {
		case key.Matches(msg, keys.CreditCard):
			m.selectMethod(model.PaymentMethodCreditCard)
		case key.Matches(msg, keys.UPI):
			m.selectMethod(model.PaymentMethodUPI)
		case key.Matches(msg, keys.NextMethod):
			m.selectMethod(cycleMethod(m.form.Method, 1))
		case key.Matches(msg, keys.PrevMethod):
			m.selectMethod(cycleMethod(m.form.Method, -1))
		}
		return m, nil
	}

	cmd := m.updateFocusedInput(msg)
	if field, ok := m.focusedField(); ok {
		var notice *payment.Notice
		m.form, notice = m.form.EditField(field, m.inputs[field].Value())
		if raw, masked := m.inputs[field].Value(), m.form.Value(field); masked != raw {
			pos := maskedCursor(field, raw, m.inputs[field].Position(), masked)
			m.inputs[field].SetValue(masked)
			m.inputs[field].SetCursor(pos)
		}
		if notice != nil {
			return m, tea.Batch(cmd, m.showToast(notice.Level, notice.Text))
		}
	}
	return m, cmd
}

// maskedCursor keeps the cursor behind the same typed character once the
// mask has inserted or dropped separators.
func maskedCursor(field payment.Field, raw string, pos int, masked string) int {
	typed := func(r rune) bool { return true }
	switch field {
	case payment.FieldCardNumber:
		typed = func(r rune) bool { return !unicode.IsSpace(r) }
	case payment.FieldExpiryDate:
		typed = unicode.IsDigit
	}

	before := []rune(raw)
	if pos > len(before) {
		pos = len(before)
	}
	n := 0
	for _, r := range before[:pos] {
		if typed(r) {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	out := []rune(masked)
	for i, r := range out {
		if typed(r) {
			n--
			if n == 0 {
				return i + 1
			}
		}
	}
	return len(out)
}

func (m *appModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	field, ok := m.focusedField()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[field], cmd = m.inputs[field].Update(msg)
	return cmd
}

func cycleMethod(current model.PaymentMethod, step int) model.PaymentMethod {
	idx := -1
	for i, method := range methodOrder {
		if method == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if step < 0 {
			return methodOrder[len(methodOrder)-1]
		}
		return methodOrder[0]
	}
	n := len(methodOrder)
	return methodOrder[((idx+step)%n+n)%n]
}

// submitPayment validates the form. A failure only raises a notification;
// success attaches the method and moves on to the confirmation screen.
func (m appModel) submitPayment() (tea.Model, tea.Cmd) {
	booking, notice, err := m.form.Submit(m.selection)
	toastCmd := m.showToast(notice.Level, notice.Text)
	if err != nil {
		m.logger.Debug("payment rejected", "method", string(m.form.Method), "error", err)
		return m, toastCmd
	}
	m.logger.Info("payment accepted", "method", string(booking.PaymentMethod), "seats", len(booking.SelectedSeats))
	m.booking = &booking
	m.state = stateConfirmation
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m, tea.Batch(toastCmd, saveBookingCmd(booking))
}

func saveBookingCmd(booking model.Booking) tea.Cmd {
	return func() tea.Msg {
		path, err := store.SaveLastBooking(booking)
		return bookingSavedMsg{path: path, err: err}
	}
}

func (m appModel) paymentView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Payment Details"))
	b.WriteString("\n")
	b.WriteString(hint(selectionSummary(m.selection.Showtime, m.selection.SelectedSeats)))
	b.WriteString("\n\n")

	toggles := make([]string, 0, len(methodOrder))
	for _, method := range methodOrder {
		mark := "( )"
		if m.form.Method == method {
			mark = "(•)"
		}
		toggles = append(toggles, mark+" "+method.Label())
	}
	row := labelStyle.Render("Payment Method") + strings.Join(toggles, "   ")
	if m.focus == 0 {
		row = focusedStyle.Render("> ") + row
	} else {
		row = "  " + row
	}
	b.WriteString(row)
	b.WriteString("\n")

	for i, field := range payment.FieldsFor(m.form.Method) {
		prefix := "  "
		if m.focus == i+1 {
			prefix = focusedStyle.Render("> ")
		}
		b.WriteString(prefix + labelStyle.Render(field.Label()) + m.inputs[field].View() + "\n")
	}

	button := "[ Pay ]"
	if m.focus == m.focusCount()-1 {
		button = focusedStyle.Render("[ Pay ]")
	}
	b.WriteString("\n  " + button)
	return cardStyle.Render(b.String())
}

func (m appModel) confirmationView() string {
	if m.booking == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Booking confirmed"))
	b.WriteString("\n\n")
	title, when := showtimeDetails(m.booking.Showtime)
	b.WriteString(labelStyle.Render("Movie") + title + "\n")
	b.WriteString(labelStyle.Render("Showtime") + when + "\n")
	seats := model.FormatSeats(m.booking.SelectedSeats)
	if seats == "" {
		seats = "N/A"
	}
	b.WriteString(labelStyle.Render("Seats") + fmt.Sprintf("%s (%d seats)", seats, len(m.booking.SelectedSeats)) + "\n")
	b.WriteString(labelStyle.Render("Paid with") + m.booking.PaymentMethod.Label() + "\n")
	if m.bookingPath != "" {
		b.WriteString("\n" + hint("Saved to "+m.bookingPath))
	}
	return cardStyle.Render(b.String())
}

func selectionSummary(showtime model.Showtime, seats []model.Seat) string {
	title, when := showtimeDetails(showtime)
	label := model.FormatSeats(seats)
	if label == "" {
		label = "no seats"
	}
	return fmt.Sprintf("%s • %s • %s", title, when, label)
}
