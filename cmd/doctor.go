package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/mkvcut/deps"
	"github.com/user/mkvcut/tui/styles"
)

// errMissingDependencies is returned by doctor so the process exits non-zero.
var errMissingDependencies = errors.New("some dependencies are missing")

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system dependencies",
		Long:  `Check that ffmpeg, which performs the actual cut, is installed and available.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking dependencies...")
			fmt.Fprintln(out)

			if err := deps.CheckFfmpeg(a.cfg.FFmpegPath); err != nil {
				fmt.Fprintln(out, styles.Warning.Render(fmt.Sprintf("✗ %s: NOT FOUND", a.cfg.FFmpegPath)))
				fmt.Fprintf(out, "  Install from: %s\n", deps.FfmpegInstallURL)
				fmt.Fprintln(out)
				return errMissingDependencies
			}

			fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("✓ %s: OK", a.cfg.FFmpegPath)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "All dependencies are installed!")
			return nil
		},
	}
}
