package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Download   key.Binding
	OpenPDF    key.Binding
	CopyID     key.Binding
	CreditCard key.Binding
	UPI        key.Binding
	PrevMethod key.Binding
	NextMethod key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Tickets    key.Binding
}

// Ticket screen actions are ctrl-prefixed because plain runes feed the
// list filter. CreditCard/UPI only apply while the method toggle has focus.
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Download:   key.NewBinding(key.WithKeys("enter", "ctrl+d"), key.WithHelp("enter", "download pdf")),
	OpenPDF:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open pdf")),
	CopyID:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy ticket id")),
	CreditCard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "credit card")),
	UPI:        key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "upi")),
	PrevMethod: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "switch method")),
	NextMethod: key.NewBinding(key.WithKeys("right", " ")),
	NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pay")),
	Tickets:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "my tickets")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return hint(strings.Join(parts, " • "))
}
