package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderListRow renders one two-column list row: a name column sized
// to the terminal and a muted detail column. The selected row fills
// the full width with the selection background.
func (m Model) renderListRow(name, detail string, selected bool) string {
	nameWidth := maxInt(10, m.width*2/5)
	name = truncate(name, nameWidth)
	detail = truncate(detail, maxInt(0, m.width-nameWidth-4))

	if selected {
		pad := maxInt(1, nameWidth+2-len([]rune(name)))
		bg := NewBgStyle(m.theme.SelectionBg)
		style := m.theme.Styles().Selected
		content := bg.Render(name, style) + bg.Spaces(pad) + bg.Render(detail, style)
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.SelectionBg)).
			Width(m.width).
			Render(content)
	}

	styles := m.theme.Styles()
	return styles.Text.Render(padRight(name, nameWidth+2)) + styles.MutedText.Render(detail)
}

// renderListTitle renders the view title line above a list.
func (m Model) renderListTitle(title string) string {
	return m.theme.Styles().AccentText.Bold(true).Render(" " + title)
}

// renderPlaceholder centers a muted message in the content area.
func (m Model) renderPlaceholder(message string) string {
	empty := m.theme.Styles().MutedText.Render(message)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, empty)
}
