package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/norris/internal/session"
)

// renderHeader renders the logo, the view tabs and the fetch status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("norris", styles.Logo)}

	tabs := make([]string, 0, len(session.Views))
	for i, v := range session.Views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == m.view {
			tabs = append(tabs, styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(" "+label+" ", styles.Tab))
	}
	parts = append(parts, strings.Join(tabs, bg.Space()))

	if status := m.statusContent(styles, bg); status != "" {
		parts = append(parts, status)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  ") + sep)
}

// statusContent describes the state of the current view.
func (m Model) statusContent(styles Styles, bg BgStyle) string {
	if m.view == session.ViewFavorites {
		total := len(m.session.Favorites())
		shown := len(m.session.Display(m.view))
		if shown == total {
			return bg.Render(fmt.Sprintf("%d saved", total), styles.MutedText)
		}
		return bg.Render(fmt.Sprintf("%d of %d saved", shown, total), styles.MutedText)
	}

	snap := m.session.Snapshot(m.view)
	if snap.Loading {
		return bg.Render(m.spinner.View()+" Loading...", styles.WarningText)
	}
	if snap.LastError != nil {
		label := classifyFetchError(snap.LastError)
		if snap.IsOffline() {
			label = "OFFLINE"
		}
		parts := []string{bg.Render(label, styles.DangerText)}
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("last "+snap.LastUpdated.Format("15:04:05"), styles.MutedText))
		}
		return bg.Join(parts, "  ")
	}
	if !snap.HasData {
		return ""
	}
	return bg.Render(fmt.Sprintf("%d jokes", len(snap.Raw)), styles.Text) + bg.Space() +
		bg.Render("updated "+snap.LastUpdated.Format("15:04:05"), styles.FaintText)
}

// classifyFetchError turns a fetch error into a short status label.
func classifyFetchError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status"):
		return "SERVICE ERROR"
	case strings.Contains(msg, "decode response"), strings.Contains(msg, " returned "):
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints, or the latest notice.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	bar := styles.Footer.Width(m.width)

	if m.notice != "" {
		style := styles.SuccessText
		if m.noticeErr {
			style = styles.WarningText
		}
		return bar.Render(bg.Render(truncate(m.notice, m.width-2), style))
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"j/k", "Navigate"},
		{"s", "Favorite"},
		{"f", "Filter"},
	}
	if m.view.Remote() {
		commands = append(commands, cmd{"r", "Reload"})
	}
	commands = append(commands, cmd{"Tab", "View"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return bar.Render(bg.Join(segments, "  "))
}
