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

const (
	loginUsername = iota
	loginPassword
)

// initLoginInputs initializes the username and password inputs.
func (m *Model) initLoginInputs() {
	user := textinput.New()
	user.Placeholder = strings.ToLower(m.tr.T(locale.Username))
	user.CharLimit = 150
	user.Width = 30

	pass := textinput.New()
	pass.Placeholder = strings.ToLower(m.tr.T(locale.Password))
	pass.CharLimit = 128
	pass.Width = 30
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	m.loginInputs[loginUsername] = user
	m.loginInputs[loginPassword] = pass
}

// resetLoginForm clears both fields and focuses the username.
func (m *Model) resetLoginForm() {
	for i := range m.loginInputs {
		m.loginInputs[i].SetValue("")
		m.loginInputs[i].Blur()
	}
	m.loginFocusIdx = loginUsername
	m.loginInputs[loginUsername].Focus()
	m.submitting = false
}

func (m *Model) focusLoginField(idx int) {
	m.loginInputs[m.loginFocusIdx].Blur()
	m.loginFocusIdx = idx
	m.loginInputs[idx].Focus()
}

// handleLoginKey handles keyboard input on the login page.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.back()
		if m.route.View == router.ViewLogin {
			m.navigate(router.PathAuthors)
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.loginFocusIdx == loginUsername {
			m.focusLoginField(loginPassword)
			return m, nil
		}
		return m.submitLogin()

	case key.Matches(msg, m.keys.NextField):
		m.focusLoginField((m.loginFocusIdx + 1) % len(m.loginInputs))
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.focusLoginField((m.loginFocusIdx - 1 + len(m.loginInputs)) % len(m.loginInputs))
		return m, nil
	}

	var cmd tea.Cmd
	i := m.loginFocusIdx
	m.loginInputs[i], cmd = m.loginInputs[i].Update(msg)
	return m, cmd
}

// submitLogin sends the form to the controller, which does the presence
// check.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.submitting || m.ctrl == nil {
		return m, nil
	}
	m.submitting = true
	username := m.loginInputs[loginUsername].Value()
	password := m.loginInputs[loginPassword].Value()
	return m, loginCmd(m.ctx, m.ctrl, username, password)
}

// renderLogin renders the login form centered in the content area.
func (m Model) renderLogin(height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.tr.T(locale.LoginTitle)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	labels := []string{m.tr.T(locale.Username), m.tr.T(locale.Password)}
	labelWidth := max(lipgloss.Width(labels[0]), lipgloss.Width(labels[1])) + 2
	for i, label := range labels {
		text := padRight(label+":", labelWidth)
		if i == m.loginFocusIdx {
			b.WriteString(styles.AccentText.Render(text))
		} else {
			b.WriteString(styles.MutedText.Render(text))
		}
		b.WriteString(m.loginInputs[i].View())
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(styles.WarningText.Render(m.tr.T(locale.Loading)))
	} else {
		b.WriteString(styles.FaintText.Render("Enter: Submit  •  Tab: Next field  •  Esc: Cancel"))
	}

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(56).
		Render(b.String())

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, form)
}
