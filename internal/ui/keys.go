package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextView   key.Binding
	PrevView   key.Binding

	// View switching
	ViewJokes     key.Binding
	ViewRandom    key.Binding
	ViewFavorites key.Binding

	// List actions
	Filter         key.Binding
	Refresh        key.Binding
	ToggleFavorite key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Filter panel
	Confirm  key.Binding
	Escape   key.Binding
	Check    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab", "Next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "Previous view"),
		),

		// View switching
		ViewJokes: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Jokes"),
		),
		ViewRandom: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Random"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Favorites"),
		),

		// List actions
		Filter: key.NewBinding(
			key.WithKeys("f", "/"),
			key.WithHelp("f", "Filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Fetch again"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "Toggle favorite"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		// Filter panel
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Done"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Check: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle category"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.ToggleFavorite, k.NextView, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.PrevView, k.ViewJokes, k.ViewRandom, k.ViewFavorites},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Filter, k.Refresh, k.ToggleFavorite},
		{k.Confirm, k.Escape, k.Check, k.Tab},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
