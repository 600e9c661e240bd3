package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/config"
	"github.com/user/mkvcut/engine"
)

var Version = "0.1.0"

// app carries what every command needs once flags and environment are read.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *slog.Logger

	// newEngine builds the media engine for a cut.
	newEngine func(cfg *config.Config, logger *slog.Logger) engine.Engine
}

func defaultEngine(cfg *config.Config, logger *slog.Logger) engine.Engine {
	return engine.NewFFmpeg(cfg.FFmpegPath, logger)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mkvcut [flags] <input_video> <start_time> <end_time> <output_file>",
		Short: "Losslessly cut a video between two timestamps",
		Long: `mkvcut cuts a video file between two timestamps without re-encoding.
Video and audio streams are copied as-is, subtitles are dropped, and the
result is written as a Matroska (.mkv) file. The work is done by ffmpeg.

Arguments:
  input_video  : Path to the input video (e.g.: input.mp4)
  start_time   : Start time for the cut (accepted formats: hh:mm:ss, mm:ss, or number of seconds)
  end_time     : End time for the cut (accepted formats: hh:mm:ss, mm:ss, or number of seconds)
  output_file  : Output file path (e.g.: output.mkv); its directory is created if missing

Flags must come before the positional arguments. An input file named like
a subcommand (history, doctor, ...) must be written with a path, e.g. ./history.`,
		Example: `  mkvcut input.mp4 00:01:30 00:02:00 output.mkv
  mkvcut input.mp4 90 120 clips/output.mkv
  mkvcut --plain input.mp4 1:30 2:00 output.mkv`,
		Args:          func(cmd *cobra.Command, args []string) error { return clip.CheckArgCount(args) },
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := clip.BuildCutRequest(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}
			return a.cut(cmd.Context(), req)
		},
	}

	rootCmd.PersistentFlags().String("ffmpeg", "", "ffmpeg binary to run (env MKVCUT_FFMPEG, default \"ffmpeg\")")
	rootCmd.PersistentFlags().String("history-db", "", "cut history database (env MKVCUT_HISTORY_DB)")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not record this cut in the history database (env MKVCUT_NO_HISTORY)")
	rootCmd.PersistentFlags().Bool("plain", false, "print plain progress lines instead of the progress box (env MKVCUT_PLAIN)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error (env MKVCUT_LOG_LEVEL)")

	// Positional times such as "-5" must reach the time parser rather than
	// be read as shorthand flags.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDoctorCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	return rootCmd
}

// loadConfig reads the environment, then applies any flags that were set.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath, _ = flags.GetString("ffmpeg")
	}
	if flags.Changed("history-db") {
		cfg.HistoryDB, _ = flags.GetString("history-db")
	}
	if flags.Changed("no-history") {
		cfg.NoHistory, _ = flags.GetBool("no-history")
	}
	if flags.Changed("plain") {
		cfg.Plain, _ = flags.GetBool("plain")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.NewLogger(a.stderr)
	a.logger.Debug("configuration loaded", slog.String("config", cfg.String()))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mkvcut version %s\n", Version)
		},
	}
}

// Run executes the command line and returns the process exit code.
// It is the only place that turns errors into messages.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return run(ctx, &app{stdin: stdin, stdout: stdout, stderr: stderr, newEngine: defaultEngine}, args)
}

func run(ctx context.Context, a *app, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	reportError(a.stderr, cmd, err)
	if name, ok := shadowedInput(rootCmd, args); ok {
		fmt.Fprintf(a.stderr, "Hint: %q is a subcommand. To cut the file of that name, pass it as ./%s\n", name, name)
	}
	return 1
}

// shadowedInput reports whether args were routed to a subcommand whose name
// is also an existing file, which the user most likely meant as the input.
func shadowedInput(rootCmd *cobra.Command, args []string) (string, bool) {
	sub, _, err := rootCmd.Find(args)
	if err != nil || sub == rootCmd {
		return "", false
	}
	for _, arg := range args {
		if arg != sub.Name() && !sub.HasAlias(arg) {
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || info.IsDir() {
			return "", false
		}
		return arg, true
	}
	return "", false
}

// reportError prints a user-facing message for err.
func reportError(w io.Writer, cmd *cobra.Command, err error) {
	var verr *clip.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	switch verr.Kind {
	case clip.KindArgCount:
		fmt.Fprintln(w, "Error: Incorrect number of arguments.")
		if cmd != nil {
			fmt.Fprintln(w)
			fmt.Fprint(w, cmd.UsageString())
		}
	case clip.KindInputNotFound:
		if errors.Is(verr.Err, fs.ErrNotExist) {
			fmt.Fprintf(w, "Error: Input file %q does not exist.\n", verr.Value)
		} else {
			fmt.Fprintf(w, "Error: Cannot use input file %q: %v\n", verr.Value, verr.Err)
		}
	case clip.KindBadOutputExtension:
		fmt.Fprintf(w, "Error: Output file must have %s extension\n", clip.OutputExtension)
	case clip.KindOutputDirCreateFailed:
		fmt.Fprintf(w, "Error: Cannot create output directory %q: %v\n", verr.Value, verr.Err)
	case clip.KindInvalidTime:
		fmt.Fprintf(w, "Error: Invalid time format: %s\n", verr.Value)
	case clip.KindNegativeStart, clip.KindEndNotAfterStart:
		fmt.Fprintln(w, "Error: Times must be positive and end time must be greater than start time.")
	case clip.KindMediaEngineFailure:
		fmt.Fprintf(w, "Error during processing: %s\n", verr.Value)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// Execute runs the command line against the process streams and returns the exit code.
func Execute(ctx context.Context) int {
	return Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
