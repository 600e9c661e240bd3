package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/tui/forms"
)

var errPromptCancelled = errors.New("prompt cancelled")

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [input_video]",
		Short: "Ask for the cut interactively",
		Long: `Ask for the input video, start and end times and output file in a form,
then cut exactly as the positional form would. The output file defaults to
<input>-<HHMMSS>-<HHMMSS>.mkv next to the input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(a.stdin) {
				return errors.New("prompt needs an interactive terminal; pass the four arguments instead")
			}

			result := &forms.CutFormResult{}
			if len(args) == 1 {
				result.InputPath = args[0]
			}

			for _, form := range []func(*forms.CutFormResult) *huh.Form{forms.NewCutSourceForm, forms.NewCutOutputForm} {
				f := form(result).WithInput(a.stdin).WithOutput(a.stdout)
				if err := f.RunWithContext(cmd.Context()); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return errPromptCancelled
					}
					return fmt.Errorf("prompt: %w", err)
				}
			}

			v := result.Args()
			req, err := clip.BuildCutRequest(v[0], v[1], v[2], v[3])
			if err != nil {
				return err
			}
			return a.cut(cmd.Context(), req)
		},
	}
}

func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
