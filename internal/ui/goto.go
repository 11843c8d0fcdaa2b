package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/router"
)

func (m *Model) initGoToInput() {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "/author/1"
	in.CharLimit = 256
	in.Width = 40
	m.gotoInput = in
}

// openGoTo shows the path prompt prefilled with the current path.
func (m *Model) openGoTo() tea.Cmd {
	m.showGoTo = true
	m.gotoInput.SetValue(m.route.Path)
	m.gotoInput.CursorEnd()
	return m.gotoInput.Focus()
}

func (m Model) handleGoToKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeGoTo()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		path := strings.TrimSpace(m.gotoInput.Value())
		m.closeGoTo()
		if path == "" {
			return m, nil
		}
		m.navigate(path)
		if m.route.View == router.ViewLogin {
			return m, textinput.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) closeGoTo() {
	m.showGoTo = false
	m.gotoInput.Blur()
}

// renderGoToBar replaces the command bar while the prompt is open.
func (m Model) renderGoToBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	label := bg.Render(m.tr.T(locale.GoToPrompt)+":", styles.AccentText)
	hint := bg.Render("enter/esc", styles.FaintText)
	input := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface)).Render(m.gotoInput.View())

	return styles.Header.Width(m.width).Render(label + bg.Space() + input + bg.Spaces(2) + hint)
}
