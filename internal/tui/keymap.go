package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the record screens.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	TabDeals     key.Binding
	TabBookings  key.Binding
	TabInventory key.Binding
	TabCycle     key.Binding

	FilterActivate key.Binding
	Refresh        key.Binding
	Departments    key.Binding

	// Action hub.
	OpenHub  key.Binding
	Stage    key.Binding
	Reassign key.Binding
	Dormant  key.Binding
	Tags     key.Binding

	// Communication handoffs.
	Call     key.Binding
	WhatsApp key.Binding
	SMS      key.Binding
	Mail     key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	TabDeals: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "deals"),
	),
	TabBookings: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "bookings"),
	),
	TabInventory: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "inventory"),
	),
	TabCycle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next screen"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Departments: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "department"),
	),
	OpenHub: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "actions"),
	),
	Stage: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stage"),
	),
	Reassign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assign"),
	),
	Dormant: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "dormant"),
	),
	Tags: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tags"),
	),
	Call: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "call"),
	),
	WhatsApp: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "whatsapp"),
	),
	SMS: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "sms"),
	),
	Mail: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mail"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
