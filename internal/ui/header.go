package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/router"
)

// renderHeader renders the status bar: app name, API host, page links,
// session state and fetch status.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var parts []string
	parts = append(parts, bg.Render("shelf", styles.Logo))

	if m.width >= LayoutWideWidth && m.apiBase != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiBase, 40), styles.MutedText))
	}

	parts = append(parts,
		m.renderLink(bg, styles, "a", m.tr.T(locale.AuthorsTitle), m.route.View == router.ViewAuthors),
		m.renderLink(bg, styles, "b", m.tr.T(locale.BooksTitle), m.route.View == router.ViewBooks),
	)

	if m.snapshot.IsAuthenticated() {
		parts = append(parts,
			bg.Render("●", styles.SuccessText)+bg.Space()+bg.Render(m.tr.T(locale.LoggedInAs), styles.Text),
			m.renderLink(bg, styles, "o", m.tr.T(locale.LogoutAction), false),
		)
	} else {
		parts = append(parts,
			m.renderLink(bg, styles, "l", m.tr.T(locale.LoginTitle), m.route.View == router.ViewLogin))
	}

	if m.snapshot.Loading {
		parts = append(parts, bg.Render(m.tr.T(locale.Loading), styles.WarningText.Bold(true)))
	}

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if err := m.snapshot.LastError(); err != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(err.Error(), maxErr), styles.DangerText),
		)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderLink renders "key:Label"; the active page is bold instead of underlined.
func (m Model) renderLink(bg BgStyle, styles Styles, key, label string, active bool) string {
	labelStyle := styles.Link
	if active {
		labelStyle = styles.Text.Bold(true)
	}
	return bg.Render(key, styles.AccentText) + bg.Sep(":") + bg.Render(label, labelStyle)
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}

	since := time.Since(last)
	out := last.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route.View {
	case router.ViewLogin:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Submit"},
			{"esc", "Cancel"},
		}
	case router.ViewAuthors:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{":", "Go to"},
			{"u", "Back"},
			{"r", "Reload"},
			{"?", "More"},
		}
	case router.ViewBooks, router.ViewAuthorDetail:
		commands = []cmd{
			{"j/k", "Scroll"},
			{":", "Go to"},
			{"u", "Back"},
			{"r", "Reload"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{":", "Go to"},
			{"u", "Back"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments, bg.Render(truncate(m.route.Path, 30), styles.InfoText))

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
