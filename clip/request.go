package clip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/mkvcut/pkg/timeutil"
)

// OutputExtension is the only accepted output suffix. The match is case sensitive.
const OutputExtension = ".mkv"

// ErrInputIsDirectory is wrapped by the InputNotFound error for a directory input.
var ErrInputIsDirectory = errors.New("path is a directory")

// ArgCount is the number of positional arguments a cut takes.
const ArgCount = 4

// CutRequest is a validated trim of one input file. It can only be built by
// BuildCutRequest, so a non-zero value always has start >= 0 and end > start.
type CutRequest struct {
	inputPath  string
	start      int
	end        int
	outputPath string
}

func (r CutRequest) InputPath() string    { return r.inputPath }
func (r CutRequest) StartSeconds() int    { return r.start }
func (r CutRequest) EndSeconds() int      { return r.end }
func (r CutRequest) DurationSeconds() int { return r.end - r.start }
func (r CutRequest) OutputPath() string   { return r.outputPath }

// IsZero reports whether r was not produced by BuildCutRequest.
func (r CutRequest) IsZero() bool {
	return r == CutRequest{}
}

func (r CutRequest) String() string {
	return fmt.Sprintf("%s [%s-%s] -> %s",
		r.inputPath,
		timeutil.FormatTime(float64(r.start)),
		timeutil.FormatTime(float64(r.end)),
		r.outputPath)
}

// CheckArgCount rejects anything other than input, start, end and output.
func CheckArgCount(args []string) error {
	if len(args) != ArgCount {
		return &ValidationError{Kind: KindArgCount, Value: fmt.Sprintf("%d", len(args))}
	}
	return nil
}

// BuildCutRequest validates the raw inputs and returns a CutRequest.
// Checks run in a fixed order and the first failure is returned:
// input exists, output extension, output directory, time parsing, ordering.
// The output directory is created as a side effect when it is missing.
func BuildCutRequest(inputPath, startRaw, endRaw, outputPath string) (CutRequest, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return CutRequest{}, &ValidationError{Kind: KindInputNotFound, Value: inputPath, Err: err}
	}
	if info.IsDir() {
		return CutRequest{}, &ValidationError{Kind: KindInputNotFound, Value: inputPath, Err: ErrInputIsDirectory}
	}

	if !strings.HasSuffix(outputPath, OutputExtension) {
		return CutRequest{}, &ValidationError{Kind: KindBadOutputExtension, Value: outputPath}
	}

	if err := EnsureOutputDir(outputPath); err != nil {
		return CutRequest{}, err
	}

	start, err := timeutil.ParseTime(startRaw)
	if err != nil {
		return CutRequest{}, &ValidationError{Kind: KindInvalidTime, Value: startRaw, Err: err}
	}
	end, err := timeutil.ParseTime(endRaw)
	if err != nil {
		return CutRequest{}, &ValidationError{Kind: KindInvalidTime, Value: endRaw, Err: err}
	}

	if start < 0 {
		return CutRequest{}, &ValidationError{Kind: KindNegativeStart, Value: startRaw}
	}
	if end <= start {
		return CutRequest{}, &ValidationError{Kind: KindEndNotAfterStart, Value: endRaw}
	}

	return CutRequest{
		inputPath:  inputPath,
		start:      start,
		end:        end,
		outputPath: outputPath,
	}, nil
}

// EnsureOutputDir creates the parent directory of outputPath if it is missing.
// It is safe to call repeatedly.
func EnsureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &ValidationError{Kind: KindOutputDirCreateFailed, Value: dir, Err: err}
	}
	return nil
}
