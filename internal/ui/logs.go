package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/logtail"
)

// LogTailLimit is the number of log lines loaded into the overlay.
const LogTailLimit = 500

type logTailMsg struct {
	entries []logtail.Entry
	err     error
}

func loadLogTailCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, LogTailLimit)
		return logTailMsg{entries: entries, err: err}
	}
}

// openLogs shows the overlay and starts reading the log file.
func (m *Model) openLogs() tea.Cmd {
	m.showLogs = true
	m.logLines = nil
	m.logErr = nil
	m.syncLogViewport()
	if m.logPath == "" {
		return nil
	}
	return loadLogTailCmd(m.logPath)
}

func (m *Model) applyLogTail(msg logTailMsg) {
	m.logErr = msg.err
	m.logLines = make([]string, 0, len(msg.entries))
	for _, e := range msg.entries {
		m.logLines = append(m.logLines, m.formatLogEntry(e))
	}
	m.syncLogViewport()
	m.logViewport.GotoBottom()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = false
	case key.Matches(msg, m.keys.Refresh):
		return m, m.openLogs()
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
	}
	return m, nil
}

// formatLogEntry colors the level of one entry.
func (m Model) formatLogEntry(e logtail.Entry) string {
	line := e.String()
	var color string
	switch strings.ToLower(e.Level) {
	case "error", "dpanic", "panic", "fatal":
		color = m.theme.Danger
	case "warn":
		color = m.theme.Warning
	case "debug":
		color = m.theme.Faint
	default:
		return line
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(line)
}

func (m *Model) syncLogViewport() {
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.height-2, 1)

	styles := m.theme.Styles()
	switch {
	case m.logErr != nil:
		m.logViewport.SetContent(styles.DangerText.Render(m.logErr.Error()))
	case m.logPath == "":
		m.logViewport.SetContent(styles.MutedText.Render("Logging is disabled"))
	case len(m.logLines) == 0:
		m.logViewport.SetContent(styles.MutedText.Render("No log entries in " + m.logPath))
	default:
		m.logViewport.SetContent(strings.Join(m.logLines, "\n"))
	}
}

// renderLogs renders the log overlay over the whole screen.
func (m Model) renderLogs() string {
	title := "Log"
	if m.logPath != "" {
		title += " " + truncateMiddle(m.logPath, max(m.width-16, 10))
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, m.height, true)
}
