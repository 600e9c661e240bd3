package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/deps"
	"github.com/user/mkvcut/tui"
)

// cut runs the media engine for req and reports the result.
func (a *app) cut(ctx context.Context, req clip.CutRequest) error {
	a.logger.Debug("cut request",
		slog.String("input", req.InputPath()),
		slog.Int("start", req.StartSeconds()),
		slog.Int("duration", req.DurationSeconds()),
		slog.String("output", req.OutputPath()))

	eng := a.newEngine(a.cfg, a.logger)

	history := a.openHistory()
	defer history.Close()
	cutID := history.Start(req, engineName(eng))

	// Verify ffmpeg is available if the engine says which binary it runs
	if withPath, ok := eng.(interface{ Path() string }); ok {
		if err := deps.CheckFfmpeg(withPath.Path()); err != nil {
			history.Fail(cutID, err.Error())
			return clip.EngineFailure(err.Error())
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := eng.Cut(ctx, req)

	var outcome tui.Outcome
	if a.interactive() {
		var err error
		outcome, err = tui.RunProgress(events, cancel, req, a.stdin, a.stdout)
		if err != nil {
			a.logger.Warn("progress display stopped", slog.Any("error", err))
		}
	} else {
		outcome = tui.PlainProgress(a.stdout, events)
	}

	if !outcome.Completed {
		history.Fail(cutID, outcome.Message)
		return clip.EngineFailure(outcome.Message)
	}

	history.Complete(cutID, req.OutputPath())
	fmt.Fprintf(a.stdout, "Processing completed! File saved as: %s\n", req.OutputPath())
	return nil
}

// interactive reports whether the progress box can be drawn.
func (a *app) interactive() bool {
	return !a.cfg.Plain && isTerminal(a.stdout)
}

func engineName(eng any) string {
	if withPath, ok := eng.(interface{ Path() string }); ok {
		return withPath.Path()
	}
	return fmt.Sprintf("%T", eng)
}
