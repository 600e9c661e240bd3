package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/user/mkvcut/engine"
	"github.com/user/mkvcut/tui/components"
)

// plainBarLength is the number of cells in the plain progress bar.
const plainBarLength = 50

// FormatPlainProgress renders one carriage-return progress line.
func FormatPlainProgress(percent float64) string {
	filled := components.BarCells(percent, plainBarLength)
	bar := strings.Repeat("█", filled) + strings.Repeat(" ", plainBarLength-filled)
	return fmt.Sprintf("\rProgress: [%s] %d%%", bar, int(math.Round(percent)))
}

// PlainProgress prints a progress line to w for every Progress event and
// returns once the engine reports a terminal event or closes the channel.
func PlainProgress(w io.Writer, events <-chan engine.Event) Outcome {
	var o Outcome
	sawProgress := false
	for ev := range events {
		if p, ok := ev.(engine.Progress); ok {
			fmt.Fprint(w, FormatPlainProgress(p.Percent))
			sawProgress = true
		}
		o = apply(o, ev)
		if engine.IsTerminal(ev) {
			break
		}
	}
	if sawProgress {
		fmt.Fprintln(w)
	}
	if !o.Completed && o.Message == "" {
		o.Message = noResultMessage
	}
	return o
}
