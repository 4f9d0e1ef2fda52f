package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is a dialog drawn over the whole screen while it is open.
// Update returns the updated modal, a command, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}
