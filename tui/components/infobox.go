// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/mkvcut/tui/styles"
)

// RenderInfoBox renders a bordered box with a tab-style header and content lines.
// Content lines are rendered as-is (caller handles styling). Lines wider than
// the box are not truncated.
//
//	╭─ Title ──────╮
//	│content       │
//	╰──────────────╯
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	headerText := headerStyle.Render(" " + title + " ")
	// "╭─" plus header plus fill plus "╮" spans the full width.
	fillWidth := width - 3 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	lines := make([]string, 0, len(contentLines)+2)
	lines = append(lines, borderStyle.Render("╭─")+headerText+borderStyle.Render(strings.Repeat("─", fillWidth)+"╮"))

	for _, line := range contentLines {
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}

	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}
