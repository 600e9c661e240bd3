// Package forms provides huh-based forms for interactive input.
package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/mkvcut/tui/styles"
)

// Theme returns a huh theme in the progress display's palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = fg(styles.Pink).Bold(true)
	t.Focused.Description = fg(styles.Lavender)
	t.Focused.ErrorIndicator = fg(styles.Pink).Bold(true)
	t.Focused.ErrorMessage = fg(styles.Pink)
	t.Focused.NoteTitle = fg(styles.Cyan).Bold(true)
	t.Focused.TextInput.Cursor = fg(styles.Cyan)
	t.Focused.TextInput.Placeholder = fg(styles.Purple)
	t.Focused.TextInput.Prompt = fg(styles.Cyan)
	t.Focused.TextInput.Text = fg(styles.LightLavender)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.BrightPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = fg(styles.Lavender)
	t.Blurred.Description = fg(styles.Purple)
	t.Blurred.ErrorIndicator = fg(styles.Pink)
	t.Blurred.ErrorMessage = fg(styles.Pink)
	t.Blurred.NoteTitle = fg(styles.Lavender)
	t.Blurred.TextInput.Cursor = fg(styles.Purple)
	t.Blurred.TextInput.Placeholder = fg(styles.Purple)
	t.Blurred.TextInput.Prompt = fg(styles.Purple)
	t.Blurred.TextInput.Text = fg(styles.Lavender)
	t.Blurred.FocusedButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Blurred.BlurredButton = lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Foreground(styles.Purple).
		Padding(0, 1)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}
