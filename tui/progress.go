// Package tui displays the progress of a running cut.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/engine"
	"github.com/user/mkvcut/pkg/timeutil"
	"github.com/user/mkvcut/tui/components"
)

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 60

// noResultMessage is reported when the event channel closes without a terminal event.
const noResultMessage = "media engine exited without reporting a result"

// Outcome is how a cut ended, as seen by the display.
type Outcome struct {
	Completed   bool
	Message     string
	LastPercent float64
}

// engineEventMsg carries one engine event into the bubbletea loop.
type engineEventMsg struct {
	event engine.Event
}

// engineClosedMsg is sent if the event channel closes without a terminal event.
type engineClosedMsg struct{}

// waitForEvent returns a tea.Cmd that waits for the next event on the channel.
func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return engineClosedMsg{}
		}
		return engineEventMsg{event: ev}
	}
}

// progressModel is the bubbletea model for a single cut.
type progressModel struct {
	events <-chan engine.Event
	cancel context.CancelFunc
	state  components.CutProgressState
	width  int
	done   bool
}

func newProgressModel(events <-chan engine.Event, cancel context.CancelFunc, req clip.CutRequest) progressModel {
	return progressModel{
		events: events,
		cancel: cancel,
		width:  defaultWidth,
		state: components.CutProgressState{
			Phase:  components.PhaseRunning,
			Range:  describeRange(req),
			Output: req.OutputPath(),
		},
	}
}

func (m progressModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.state.Phase == components.PhaseRunning {
				m.state.Phase = components.PhaseCancelling
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		// Keep waiting: the engine still sends its terminal event.
		return m, nil

	case engineEventMsg:
		switch ev := msg.event.(type) {
		case engine.Progress:
			m.state.Percent = ev.Percent
			return m, waitForEvent(m.events)
		case engine.Completed:
			m.state.Phase = components.PhaseCompleted
			m.done = true
			return m, tea.Quit
		case engine.Failed:
			m.state.Phase = components.PhaseFailed
			m.state.Message = ev.Message
			m.done = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case engineClosedMsg:
		if !m.done {
			m.state.Phase = components.PhaseFailed
			m.state.Message = noResultMessage
			m.done = true
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	return components.CutProgress(m.state, m.width) + "\n"
}

func (m progressModel) outcome() Outcome {
	return Outcome{
		Completed:   m.state.Phase == components.PhaseCompleted,
		Message:     m.state.Message,
		LastPercent: m.state.Percent,
	}
}

// RunProgress shows the cut progress box on out until the engine reports a
// terminal event. Pressing q or ctrl+c calls cancel and keeps the box up until
// the engine's terminal event arrives. The program has no context of its own:
// cancel must lead the engine to a terminal event.
func RunProgress(events <-chan engine.Event, cancel context.CancelFunc, req clip.CutRequest, in io.Reader, out io.Writer) (Outcome, error) {
	model := newProgressModel(events, cancel, req)

	// Signals reach the engine through its context and come back as Failed.
	opts := []tea.ProgramOption{tea.WithOutput(out), tea.WithoutSignalHandler()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	final, err := tea.NewProgram(model, opts...).Run()
	last := model
	if fm, ok := final.(progressModel); ok {
		last = fm
	}
	if err != nil {
		// Drain so the engine goroutine can finish.
		if last.done {
			return last.outcome(), fmt.Errorf("progress display: %w", err)
		}
		return drain(events, last.outcome()), fmt.Errorf("progress display: %w", err)
	}
	return last.outcome(), nil
}

// drain consumes the rest of events and folds them into o.
func drain(events <-chan engine.Event, o Outcome) Outcome {
	for ev := range events {
		o = apply(o, ev)
	}
	if !o.Completed && o.Message == "" {
		o.Message = noResultMessage
	}
	return o
}

func apply(o Outcome, ev engine.Event) Outcome {
	switch ev := ev.(type) {
	case engine.Progress:
		o.LastPercent = ev.Percent
	case engine.Completed:
		o.Completed = true
		o.Message = ""
	case engine.Failed:
		o.Completed = false
		o.Message = ev.Message
	}
	return o
}

func describeRange(req clip.CutRequest) string {
	return fmt.Sprintf("%s - %s (%ds)",
		timeutil.FormatTime(float64(req.StartSeconds())),
		timeutil.FormatTime(float64(req.EndSeconds())),
		req.DurationSeconds())
}
