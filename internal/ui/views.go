package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/locale"
	"github.com/five82/shelf/internal/router"
)

// renderMain renders header, command bar and the routed page.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showGoTo {
		b.WriteString(m.renderGoToBar())
	} else {
		b.WriteString(m.renderCommandBar())
	}
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// listRows is the number of rows visible inside a titled box.
func (m Model) listRows() int {
	return max(m.contentHeight()-2, 1)
}

// renderContent renders the page for the current route.
func (m Model) renderContent() string {
	height := m.contentHeight()

	switch m.route.View {
	case router.ViewAuthors:
		return m.renderAuthors(height)
	case router.ViewBooks:
		title := fmt.Sprintf("%s (%d)", m.tr.T(locale.BooksTitle), len(m.snapshot.Books))
		return m.renderTitledBox(title, m.listViewport.View(), m.width, height, !m.showGoTo)
	case router.ViewAuthorDetail:
		return m.renderTitledBox(m.authorDetailTitle(), m.listViewport.View(), m.width, height, !m.showGoTo)
	case router.ViewLogin:
		return m.renderLogin(height)
	default:
		return m.renderNotFound(height)
	}
}

// renderAuthors renders the selectable authors list.
func (m Model) renderAuthors(height int) string {
	title := fmt.Sprintf("%s (%d)", m.tr.T(locale.AuthorsTitle), len(m.snapshot.Authors))
	width := m.width - 2

	if len(m.snapshot.Authors) == 0 {
		return m.renderTitledBox(title, m.emptyLine(locale.NoAuthors, width), m.width, height, !m.showGoTo)
	}

	rows := m.listRows()
	start := 0
	if m.selectedRow >= rows {
		start = m.selectedRow - rows + 1
	}
	end := min(start+rows, len(m.snapshot.Authors))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		bgColor := m.theme.FocusBg
		if selected {
			bgColor = m.theme.SelectionBg
		}
		content := m.formatAuthorRow(m.snapshot.Authors[i], bgColor, selected)
		lines = append(lines, NewBgStyle(bgColor).FillLine(content, width))
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, !m.showGoTo)
}

// formatAuthorRow formats "#ID Name · born YYYY".
func (m Model) formatAuthorRow(a library.Author, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	idStyle, nameStyle, metaStyle := styles.MutedText, styles.Text, styles.FaintText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, metaStyle = sel, sel.Bold(true), sel
	}

	out := bg.Render(fmt.Sprintf("#%d", a.ID), idStyle) + bg.Space() +
		bg.Render(truncate(a.FullName(), m.width/2), nameStyle)
	if a.BirthdayYear != 0 {
		out += bg.Render(" · ", metaStyle) + bg.Render(m.tr.T(locale.BornIn, strconv.Itoa(a.BirthdayYear)), metaStyle)
	}
	return out
}

// booksContent renders one line per book with its author names.
func (m Model) booksContent(books []library.Book, width int) string {
	if len(books) == 0 {
		return m.emptyLine(locale.NoBooks, width)
	}

	names := make(map[int64]string, len(m.snapshot.Authors))
	for _, a := range m.snapshot.Authors {
		names[a.ID] = a.FullName()
	}

	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	lines := make([]string, 0, len(books))
	for _, b := range books {
		line := bg.Render(fmt.Sprintf("#%d", b.ID), styles.MutedText) + bg.Space() +
			bg.Render(truncate(b.Name, width/2), styles.Text)
		if len(b.Authors) > 0 {
			authors := make([]string, 0, len(b.Authors))
			for _, id := range b.Authors {
				if name, ok := names[id]; ok {
					authors = append(authors, name)
				} else {
					authors = append(authors, fmt.Sprintf("#%d", id))
				}
			}
			line += bg.Render(" · ", styles.FaintText) + bg.Render(strings.Join(authors, ", "), styles.InfoText)
		}
		lines = append(lines, bg.FillLine(line, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) authorDetailTitle() string {
	if author, ok := router.FindAuthor(m.snapshot.Authors, m.route.AuthorID); ok {
		return author.FullName()
	}
	return m.tr.T(locale.UnknownAuthor, m.route.AuthorID)
}

// authorDetailContent renders the author's birth year and their books.
func (m Model) authorDetailContent(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	var b strings.Builder
	if author, ok := router.FindAuthor(m.snapshot.Authors, m.route.AuthorID); ok && author.BirthdayYear != 0 {
		b.WriteString(bg.FillLine(bg.Render(m.tr.T(locale.BornIn, strconv.Itoa(author.BirthdayYear)), styles.MutedText), width))
		b.WriteString("\n")
	}
	b.WriteString(bg.FillLine(bg.Render(m.tr.T(locale.BooksTitle), styles.AccentText.Bold(true)), width))
	b.WriteString("\n")
	b.WriteString(m.booksContent(router.BooksByAuthor(m.snapshot.Books, m.route.AuthorID), width))
	return b.String()
}

// syncListViewport resizes the shared viewport and refills it for the
// current route.
func (m *Model) syncListViewport() {
	width := max(m.width-2, 1)
	m.listViewport.Width = width
	m.listViewport.Height = m.listRows()
	m.listViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	switch m.route.View {
	case router.ViewBooks:
		m.listViewport.SetContent(m.booksContent(m.snapshot.Books, width))
	case router.ViewAuthorDetail:
		m.listViewport.SetContent(m.authorDetailContent(width))
	default:
		m.listViewport.SetContent("")
	}
}

// emptyLine renders the placeholder shown for an empty list. While a fetch
// is in flight it reads as loading instead.
func (m Model) emptyLine(msgKey string, width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	if m.snapshot.Loading {
		return bg.FillLine(bg.Render(m.tr.T(locale.Loading), styles.WarningText), width)
	}
	return bg.FillLine(bg.Render(m.tr.T(msgKey), styles.MutedText), width)
}

// renderNotFound renders the 404 page.
func (m Model) renderNotFound(height int) string {
	styles := m.theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render("404"),
		"",
		styles.Text.Render(m.tr.T(locale.NotFound, m.route.Path)),
		"",
		styles.FaintText.Render("a: "+m.tr.T(locale.AuthorsTitle)+"  •  u: Back"),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body)
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// When focused is true, uses BorderFocus color and FocusBg background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
