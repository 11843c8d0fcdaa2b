package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// alertModal blocks all input until acknowledged with enter or esc.
type alertModal struct {
	message string
	hint    string
}

func newAlert(message, hint string) alertModal {
	return alertModal{message: message, hint: hint}
}

func (a alertModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil, false
	}
	if key.Matches(keyMsg, keys.Confirm) || key.Matches(keyMsg, keys.Escape) {
		return a, nil, true
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("!"))
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render(a.message))
	if a.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render(a.hint))
	}

	boxWidth := min(max(lipgloss.Width(a.message)+8, 32), max(width-4, 10))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
