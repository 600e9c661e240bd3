package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/mkvcut/tui/styles"
)

// CutPhase is where a cut is in its lifecycle.
type CutPhase int

const (
	PhaseRunning CutPhase = iota
	PhaseCancelling
	PhaseCompleted
	PhaseFailed
)

// CutProgressState holds the state for the cut progress display.
type CutProgressState struct {
	Phase   CutPhase
	Percent float64
	Range   string // e.g. "0:01:30 - 0:02:00 (30s)"
	Output  string
	Message string
}

// BarCells returns how many of width cells a bar at percent fills,
// clamped to [0, width] so out-of-range reports still draw.
func BarCells(percent float64, width int) int {
	if width <= 0 || math.IsNaN(percent) {
		return 0
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	if filled < 0 {
		return 0
	}
	if filled > width {
		return width
	}
	return filled
}

// CutProgress renders a bordered info box showing the progress of one cut.
func CutProgress(state CutProgressState, width int) string {
	if width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	// Inner width for content (box border = 2, plus 1 space padding each side)
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	// Bar width: innerW minus " XXX%" label (5 chars) minus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := BarCells(state.Percent, barWidth)

	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
	lines := []string{
		" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", int(math.Round(state.Percent)))),
	}

	if state.Range != "" {
		lines = append(lines, " "+dimStyle.Render(state.Range))
	}
	if state.Output != "" {
		out := state.Output
		if lipgloss.Width(out) > innerW-2 {
			out = ansi.TruncateLeft(out, lipgloss.Width(out)-(innerW-5), "...")
		}
		lines = append(lines, " "+textStyle.Render(out))
	}

	switch state.Phase {
	case PhaseCancelling:
		lines = append(lines, " "+amberStyle.Render("Cancelling..."))
	case PhaseCompleted:
		lines = append(lines, " "+greenStyle.Render("Cut complete"))
	case PhaseFailed:
		msg := state.Message
		if lipgloss.Width(msg) > innerW-2 {
			msg = ansi.Truncate(msg, innerW-2, "...")
		}
		lines = append(lines, " "+redStyle.Render(msg))
	default:
		lines = append(lines, " "+dimStyle.Render("q / ctrl+c to cancel"))
	}

	return RenderInfoBox("Cut", lines, width)
}
