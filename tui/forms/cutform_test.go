package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputPath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mp4")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0644))

	assert.NoError(t, ValidateInputPath(in))
	assert.Error(t, ValidateInputPath(""))
	assert.Error(t, ValidateInputPath(filepath.Join(dir, "missing.mp4")))
	assert.Error(t, ValidateInputPath(dir))
}

func TestValidateTime(t *testing.T) {
	assert.NoError(t, ValidateTime("01:02:03"))
	assert.NoError(t, ValidateTime("2:05"))
	assert.NoError(t, ValidateTime("90"))
	assert.Error(t, ValidateTime("1:2:3"))
	assert.Error(t, ValidateTime(""))
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("out.mkv"))
	assert.Error(t, ValidateOutputPath("out.mp4"))
	assert.Error(t, ValidateOutputPath("out.MKV"))
}

func TestSuggestOutput(t *testing.T) {
	r := &CutFormResult{InputPath: filepath.Join("videos", "game.mp4"), Start: "1:30", End: "2:00"}
	r.SuggestOutput()
	assert.Equal(t, filepath.Join("videos", "game-000130-000200.mkv"), r.OutputPath)

	r = &CutFormResult{InputPath: "game.mp4", Start: "1:30", End: "2:00", OutputPath: "mine.mkv"}
	r.SuggestOutput()
	assert.Equal(t, "mine.mkv", r.OutputPath)

	r = &CutFormResult{InputPath: "game.mp4", Start: "bad", End: "2:00"}
	r.SuggestOutput()
	assert.Empty(t, r.OutputPath)
}

func TestNewCutFormsBuild(t *testing.T) {
	r := &CutFormResult{InputPath: "game.mp4", Start: "0", End: "10"}
	assert.NotNil(t, NewCutSourceForm(r))
	assert.NotNil(t, NewCutOutputForm(r))
	assert.Equal(t, "game-000000-000010.mkv", r.OutputPath)
	assert.Equal(t, []string{"game.mp4", "0", "10", "game-000000-000010.mkv"}, r.Args())
}
