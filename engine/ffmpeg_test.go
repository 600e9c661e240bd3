package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/mkvcut/clip"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

// newRequest builds a valid request over a placeholder input file.
func newRequest(t *testing.T, start, end string) clip.CutRequest {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mp4")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0644))
	req, err := clip.BuildCutRequest(in, start, end, filepath.Join(dir, "out", "out.mkv"))
	require.NoError(t, err)
	return req
}

// fakeFFmpeg writes a shell script standing in for ffmpeg.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// collect drains events, failing the test if the stream does not close in time.
func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("event stream did not close")
		}
	}
}

func TestNewFFmpeg(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		assert.Equal(t, "ffmpeg", NewFFmpeg("", nil).Path())
	})

	t.Run("custom path", func(t *testing.T) {
		assert.Equal(t, "/usr/local/bin/ffmpeg", NewFFmpeg("/usr/local/bin/ffmpeg", nil).Path())
	})
}

func TestBuildArgs(t *testing.T) {
	req := newRequest(t, "00:01:30", "00:02:00")

	args := BuildArgs(req)
	assert.Equal(t, []string{
		"-hide_banner",
		"-nostats",
		"-loglevel", "error",
		"-progress", "pipe:1",
		"-y",
		"-ss", "90",
		"-i", req.InputPath(),
		"-t", "30",
		"-c:v", "copy",
		"-c:a", "copy",
		"-sn",
		req.OutputPath(),
	}, args)
}

func TestBuildArgsSeekBeforeInput(t *testing.T) {
	args := BuildArgs(newRequest(t, "5", "10"))
	joined := strings.Join(args, " ")
	assert.Less(t, strings.Index(joined, "-ss "), strings.Index(joined, "-i "))
	assert.Greater(t, strings.Index(joined, "-t "), strings.Index(joined, "-i "))
	assert.NotContains(t, args, "libx264")
}

func TestCutReportsProgressThenCompleted(t *testing.T) {
	bin := fakeFFmpeg(t, `
printf 'out_time_us=5000000\nout_time_ms=5000000\nout_time=00:00:05.000000\nprogress=continue\n'
printf 'out_time_us=N/A\nprogress=continue\n'
printf 'out_time_us=10000000\nprogress=end\n'
exit 0`)

	req := newRequest(t, "0", "10")
	events := collect(t, NewFFmpeg(bin, nil).Cut(context.Background(), req))

	require.Equal(t, []Event{
		Progress{Percent: 50},
		Progress{Percent: 100},
		Completed{},
	}, events)
}

func TestCutFailureCarriesStderr(t *testing.T) {
	bin := fakeFFmpeg(t, `
echo "in.mp4: Invalid data found when processing input" >&2
exit 1`)

	events := collect(t, NewFFmpeg(bin, nil).Cut(context.Background(), newRequest(t, "0", "10")))
	require.Len(t, events, 1)
	assert.Equal(t, Failed{Message: "in.mp4: Invalid data found when processing input"}, events[0])
}

func TestCutFailureWithoutStderr(t *testing.T) {
	bin := fakeFFmpeg(t, `exit 3`)

	events := collect(t, NewFFmpeg(bin, nil).Cut(context.Background(), newRequest(t, "0", "10")))
	require.Len(t, events, 1)
	failed, ok := events[0].(Failed)
	require.True(t, ok)
	assert.Contains(t, failed.Message, "exit status 3")
}

func TestCutMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nothing-here")

	events := collect(t, NewFFmpeg(missing, nil).Cut(context.Background(), newRequest(t, "0", "10")))
	require.Len(t, events, 1)
	failed, ok := events[0].(Failed)
	require.True(t, ok)
	assert.Contains(t, failed.Message, missing)
}

func TestCutZeroRequest(t *testing.T) {
	events := collect(t, NewFFmpeg("ffmpeg", nil).Cut(context.Background(), clip.CutRequest{}))
	assert.Equal(t, []Event{Failed{Message: ErrEmptyRequest.Error()}}, events)
}

func TestCutCancelled(t *testing.T) {
	bin := fakeFFmpeg(t, `exec sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	events := NewFFmpeg(bin, nil).Cut(ctx, newRequest(t, "0", "10"))
	cancel()

	got := collect(t, events)
	require.Len(t, got, 1)
	failed, ok := got[0].(Failed)
	require.True(t, ok)
	assert.Contains(t, failed.Message, "cancelled")
}

func TestCutExactlyOneTerminalEvent(t *testing.T) {
	bin := fakeFFmpeg(t, `
i=1
while [ $i -le 20 ]; do
  printf 'out_time_us=%d000000\nprogress=continue\n' $i
  i=$((i+1))
done
exit 0`)

	events := collect(t, NewFFmpeg(bin, nil).Cut(context.Background(), newRequest(t, "0", "20")))
	require.Len(t, events, 21)

	terminal := 0
	for i, ev := range events {
		if IsTerminal(ev) {
			terminal++
			assert.Equal(t, len(events)-1, i, "terminal event must be last")
		}
	}
	assert.Equal(t, 1, terminal)
	assert.Equal(t, Progress{Percent: 5}, events[0])
}

func TestTailBufferKeepsEnd(t *testing.T) {
	b := &tailBuffer{max: 8}
	_, _ = b.Write([]byte("0123456789"))
	_, _ = b.Write([]byte("ab"))
	assert.Equal(t, "456789ab", b.String())
}

// createTestVideo creates a short video with audio and a subtitle track using ffmpeg.
func createTestVideo(t *testing.T, path string, duration float64) {
	t.Helper()

	srt := filepath.Join(filepath.Dir(path), "subs.srt")
	require.NoError(t, os.WriteFile(srt, []byte("1\n00:00:00,000 --> 00:00:01,000\nhello\n"), 0644))

	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=blue:s=64x64:d=%.1f", duration),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=44100:cl=mono:d=%.1f", duration),
		"-i", srt,
		"-map", "0", "-map", "1", "-map", "2",
		"-c:v", "mpeg4",
		"-c:a", "pcm_s16le",
		"-c:s", "srt",
		"-shortest",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test video: %v\noutput: %s", err, output)
	}
}

func TestFFmpegCutIntegration(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.mkv")
	createTestVideo(t, in, 6)

	req, err := clip.BuildCutRequest(in, "1", "4", filepath.Join(dir, "cuts", "out.mkv"))
	require.NoError(t, err)

	events := collect(t, NewFFmpeg("", nil).Cut(context.Background(), req))
	require.NotEmpty(t, events)
	assert.Equal(t, Completed{}, events[len(events)-1], "events: %v", events)

	info, err := os.Stat(req.OutputPath())
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	if _, err := exec.LookPath("ffprobe"); err == nil {
		out, err := exec.Command("ffprobe", "-v", "error",
			"-show_entries", "stream=codec_type",
			"-of", "default=noprint_wrappers=1:nokey=1",
			req.OutputPath()).Output()
		require.NoError(t, err)
		types := strings.Fields(string(out))
		assert.Contains(t, types, "video")
		assert.Contains(t, types, "audio")
		assert.NotContains(t, types, "subtitle")
	}
}
