package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/norris/internal/jokes"
	"github.com/five82/norris/internal/session"
)

type filterFieldID int

const (
	fieldFirstName filterFieldID = iota
	fieldLastName
	fieldQuantity
	fieldNerdy
	fieldExplicit
)

type filterField struct {
	id      filterFieldID
	label   string
	input   textinput.Model // unused for checkboxes
	checked bool
}

func (f filterField) isCheckbox() bool {
	return f.id == fieldNerdy || f.id == fieldExplicit
}

// filterPanel is the per-view filter form. It closes on Done or Cancel;
// applied tells the two apart.
type filterPanel struct {
	view    session.View
	fields  []filterField
	focus   int
	loading bool
	spin    string
	applied bool
}

var _ Modal = (*filterPanel)(nil)

// newFilterPanel builds the form for view, pre-filled with c. The favorites
// view only filters by category; random draws also take a quantity.
func newFilterPanel(view session.View, c jokes.Criteria) *filterPanel {
	p := &filterPanel{view: view}
	if view.Remote() {
		p.fields = append(p.fields,
			textField(fieldFirstName, "First name", "e.g. John", c.FirstName, 40),
			textField(fieldLastName, "Last name", "e.g. Doe", c.LastName, 40),
		)
	}
	if view == session.ViewRandom {
		p.fields = append(p.fields, textField(fieldQuantity, "Quantity", "5", c.Quantity, 3))
	}
	p.fields = append(p.fields,
		filterField{id: fieldNerdy, label: "Nerdy", checked: c.Nerdy},
		filterField{id: fieldExplicit, label: "Explicit", checked: c.Explicit},
	)
	p.setFocus(0)
	return p
}

func textField(id filterFieldID, label, placeholder, value string, limit int) filterField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 30
	in.SetValue(value)
	return filterField{id: id, label: label, input: in}
}

// Criteria returns what the form currently holds.
func (p *filterPanel) Criteria() jokes.Criteria {
	var c jokes.Criteria
	for _, f := range p.fields {
		switch f.id {
		case fieldFirstName:
			c.FirstName = strings.TrimSpace(f.input.Value())
		case fieldLastName:
			c.LastName = strings.TrimSpace(f.input.Value())
		case fieldQuantity:
			c.Quantity = strings.TrimSpace(f.input.Value())
		case fieldNerdy:
			c.Nerdy = f.checked
		case fieldExplicit:
			c.Explicit = f.checked
		}
	}
	return c
}

func (p *filterPanel) setFocus(idx int) {
	n := len(p.fields)
	if n == 0 {
		return
	}
	for i := range p.fields {
		if !p.fields[i].isCheckbox() {
			p.fields[i].input.Blur()
		}
	}
	p.focus = (idx%n + n) % n
	if f := &p.fields[p.focus]; !f.isCheckbox() {
		f.input.Focus()
	}
}

// Update implements Modal.
func (p *filterPanel) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}

	focused := &p.fields[p.focus]
	switch {
	case key.Matches(keyMsg, keys.Escape):
		return p, nil, true

	case key.Matches(keyMsg, keys.Confirm):
		// Done is not offered while the view is fetching.
		if p.loading {
			return p, nil, false
		}
		p.applied = true
		return p, nil, true

	case key.Matches(keyMsg, keys.Tab):
		p.setFocus(p.focus + 1)
		return p, nil, false

	case key.Matches(keyMsg, keys.ShiftTab):
		p.setFocus(p.focus - 1)
		return p, nil, false

	case focused.isCheckbox() && key.Matches(keyMsg, keys.Check):
		focused.checked = !focused.checked
		return p, nil, false
	}

	if focused.isCheckbox() {
		return p, nil, false
	}
	var cmd tea.Cmd
	focused.input, cmd = focused.input.Update(keyMsg)
	return p, cmd, false
}

// View implements Modal.
func (p *filterPanel) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filter " + p.view.Title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	if p.view.Remote() {
		b.WriteString(styles.MutedText.Render("Names replace Chuck Norris in the jokes."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Leave blank to keep him."))
		b.WriteString("\n\n")
	}

	categoriesShown := false
	for i, f := range p.fields {
		labelStyle := styles.MutedText
		if i == p.focus {
			labelStyle = styles.AccentText
		}
		if f.isCheckbox() {
			if !categoriesShown {
				b.WriteString(styles.Text.Render("Categories"))
				b.WriteString("\n")
				categoriesShown = true
			}
			box := "[ ]"
			if f.checked {
				box = "[x]"
			}
			b.WriteString(labelStyle.Render(box + " " + f.label))
			b.WriteString("\n")
			continue
		}
		b.WriteString(labelStyle.Render(padRight(f.label+":", 12)))
		b.WriteString(f.input.View())
		b.WriteString("\n\n")
	}
	b.WriteString("\n")

	if p.loading {
		b.WriteString(styles.WarningText.Render(strings.TrimSpace(p.spin + " Loading…")))
		b.WriteString(styles.FaintText.Render("  •  Esc: Cancel"))
	} else {
		b.WriteString(styles.FaintText.Render("Enter: Done  •  Esc: Cancel  •  Tab: Next field"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(54)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
