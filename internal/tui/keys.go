package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	Home       key.Binding
	End        key.Binding
	SwitchPane key.Binding

	// Actions
	Toggle         key.Binding
	Edit           key.Binding
	Delete         key.Binding
	ToggleAll      key.Binding
	ClearCompleted key.Binding
	NextFilter     key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	Search         key.Binding
	Reload         key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding

	// Text fields
	Submit key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "new todo/list"),
		),

		// Actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		ClearCompleted: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear completed"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("f", "right", "l"),
			key.WithHelp("f", "next filter"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		FilterDone: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),

		// Text fields
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/dismiss"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// listHelp is the short help shown under the list
func listHelp() []key.Binding {
	return []key.Binding{Keys.Toggle, Keys.Edit, Keys.Delete, Keys.ToggleAll, Keys.ClearCompleted, Keys.NextFilter, Keys.Search, Keys.SwitchPane, Keys.Help}
}

// fullHelp groups every binding for the help screen
func fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Keys.Up, Keys.Down, Keys.Home, Keys.End, Keys.SwitchPane},
		{Keys.Toggle, Keys.Edit, Keys.Delete, Keys.ToggleAll, Keys.ClearCompleted},
		{Keys.NextFilter, Keys.FilterAll, Keys.FilterActive, Keys.FilterDone, Keys.Search},
		{Keys.Reload, Keys.Escape, Keys.Help, Keys.Quit},
	}
}
