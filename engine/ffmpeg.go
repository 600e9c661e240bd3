package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/user/mkvcut/clip"
)

// ErrEmptyRequest is reported when Cut is handed a CutRequest that was not built
// by clip.BuildCutRequest.
var ErrEmptyRequest = errors.New("empty cut request")

// stderrTailSize bounds how much of ffmpeg's stderr is kept for the failure message.
const stderrTailSize = 4096

// FFmpeg implements Engine using the ffmpeg CLI.
type FFmpeg struct {
	// path is the ffmpeg binary. Defaults to "ffmpeg" (found via PATH).
	path   string
	logger *slog.Logger
}

// NewFFmpeg creates an FFmpeg engine. A nil logger falls back to slog.Default().
func NewFFmpeg(path string, logger *slog.Logger) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpeg{path: path, logger: logger}
}

// Path returns the ffmpeg binary this engine runs.
func (f *FFmpeg) Path() string {
	return f.path
}

// BuildArgs returns the ffmpeg arguments for req. Video and audio are stream
// copied, subtitles dropped. -ss is an input option so ffmpeg seeks before
// decoding; -t bounds the output duration.
func BuildArgs(req clip.CutRequest) []string {
	return []string{
		"-hide_banner",
		"-nostats",
		"-loglevel", "error",
		// key=value progress blocks on stdout
		"-progress", "pipe:1",
		// Overwrite output file without asking
		"-y",
		"-ss", strconv.Itoa(req.StartSeconds()),
		"-i", req.InputPath(),
		"-t", strconv.Itoa(req.DurationSeconds()),
		"-c:v", "copy",
		"-c:a", "copy",
		"-sn",
		req.OutputPath(),
	}
}

// Cut starts ffmpeg for req in a background goroutine.
func (f *FFmpeg) Cut(ctx context.Context, req clip.CutRequest) <-chan Event {
	events := make(chan Event, 16)
	go func() {
		defer close(events)
		events <- f.run(ctx, req, events)
	}()
	return events
}

// run executes ffmpeg, forwarding progress to events, and returns the terminal event.
func (f *FFmpeg) run(ctx context.Context, req clip.CutRequest, events chan<- Event) Event {
	if req.IsZero() {
		return Failed{Message: ErrEmptyRequest.Error()}
	}

	args := BuildArgs(req)
	f.logger.Debug("starting ffmpeg",
		slog.String("path", f.path),
		slog.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, f.path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Failed{Message: fmt.Sprintf("create stdout pipe: %v", err)}
	}
	stderr := &tailBuffer{max: stderrTailSize}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Failed{Message: fmt.Sprintf("cut cancelled: %v", ctxErr)}
		}
		return Failed{Message: fmt.Sprintf("start %s: %v", f.path, err)}
	}

	parseErr := ParseProgress(stdout, req.DurationSeconds(), func(percent float64) {
		events <- Progress{Percent: percent}
	})
	// Keep the pipe drained so ffmpeg never blocks on a full stdout.
	_, _ = io.Copy(io.Discard, stdout)
	if parseErr != nil {
		f.logger.Warn("reading ffmpeg progress", slog.Any("error", parseErr))
	}

	waitErr := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Failed{Message: fmt.Sprintf("cut cancelled: %v", ctxErr)}
	}
	if waitErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = waitErr.Error()
		}
		f.logger.Debug("ffmpeg failed", slog.Any("error", waitErr))
		return Failed{Message: msg}
	}

	f.logger.Debug("ffmpeg finished", slog.String("output", req.OutputPath()))
	return Completed{}
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
