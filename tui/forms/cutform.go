package forms

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/pkg/timeutil"
)

// CutFormResult holds the raw values entered in the cut form.
type CutFormResult struct {
	InputPath  string
	Start      string
	End        string
	OutputPath string
}

// Args returns the values in positional argument order.
func (r *CutFormResult) Args() []string {
	return []string{r.InputPath, r.Start, r.End, r.OutputPath}
}

// ValidateInputPath requires an existing, non-directory path.
func ValidateInputPath(s string) error {
	if s == "" {
		return errors.New("input video is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("file not found: %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", s)
	}
	return nil
}

// ValidateTime accepts H:MM:SS, M:SS or a number of seconds.
func ValidateTime(s string) error {
	if _, err := timeutil.ParseTime(s); err != nil {
		return errors.New("use hh:mm:ss, mm:ss or seconds")
	}
	return nil
}

// ValidateOutputPath requires the .mkv suffix.
func ValidateOutputPath(s string) error {
	if !strings.HasSuffix(s, clip.OutputExtension) {
		return fmt.Errorf("output must end with %s", clip.OutputExtension)
	}
	return nil
}

// SuggestOutput fills in a default output path once the input and times are known.
// An output already entered is left alone.
func (r *CutFormResult) SuggestOutput() {
	if r.OutputPath != "" || r.InputPath == "" {
		return
	}
	start, err := timeutil.ParseTime(r.Start)
	if err != nil {
		return
	}
	end, err := timeutil.ParseTime(r.End)
	if err != nil {
		return
	}
	r.OutputPath = clip.SuggestOutputPath(r.InputPath, start, end)
}

// NewCutSourceForm asks for the input video and the time range.
// The result pointer is bound to the form fields and will be populated on submit.
func NewCutSourceForm(result *CutFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Cut video"),

			huh.NewInput().
				Title("Input video").
				Description("Required").
				Value(&result.InputPath).
				Validate(ValidateInputPath),

			huh.NewInput().
				Title("Start").
				Description("hh:mm:ss, mm:ss or seconds").
				Placeholder("00:01:30").
				Value(&result.Start).
				Validate(ValidateTime),

			huh.NewInput().
				Title("End").
				Description("hh:mm:ss, mm:ss or seconds").
				Placeholder("00:02:00").
				Value(&result.End).
				Validate(func(s string) error {
					if err := ValidateTime(s); err != nil {
						return err
					}
					start, err := timeutil.ParseTime(result.Start)
					if err != nil {
						return nil
					}
					end, _ := timeutil.ParseTime(s)
					if end <= start {
						return errors.New("end must be after start")
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}

// NewCutOutputForm asks for the output path, prefilled with a suggestion.
func NewCutOutputForm(result *CutFormResult) *huh.Form {
	result.SuggestOutput()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Description("Must end with " + clip.OutputExtension + "; the directory is created if missing").
				Value(&result.OutputPath).
				Validate(ValidateOutputPath),
		),
	).WithTheme(Theme())
}
