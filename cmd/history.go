package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/mkvcut/clip"
	"github.com/user/mkvcut/db"
	"github.com/user/mkvcut/pkg/timeutil"
)

// historyRecorder writes cut attempts to the history database. A recorder
// without a database does nothing, and write failures are only logged so the
// history can never change a cut's result.
type historyRecorder struct {
	db     *sql.DB
	logger *slog.Logger
}

func (a *app) historyPath() (string, error) {
	if a.cfg.HistoryDB != "" {
		return a.cfg.HistoryDB, nil
	}
	return db.DefaultPath()
}

// openHistory opens the history database unless history is disabled.
func (a *app) openHistory() *historyRecorder {
	rec := &historyRecorder{logger: a.logger}
	if a.cfg.NoHistory {
		return rec
	}

	path, err := a.historyPath()
	if err != nil {
		a.logger.Warn("cut history unavailable", slog.Any("error", err))
		return rec
	}
	database, err := db.Open(path)
	if err != nil {
		a.logger.Warn("cut history unavailable", slog.String("path", path), slog.Any("error", err))
		return rec
	}
	rec.db = database
	return rec
}

func (h *historyRecorder) Start(req clip.CutRequest, engineName string) int64 {
	if h.db == nil {
		return 0
	}
	id, err := db.InsertCut(h.db, db.NewCut{
		InputPath:    req.InputPath(),
		StartSeconds: req.StartSeconds(),
		EndSeconds:   req.EndSeconds(),
		OutputPath:   req.OutputPath(),
		Engine:       engineName,
	}, time.Now())
	if err != nil {
		h.logger.Warn("recording cut", slog.Any("error", err))
		return 0
	}
	h.logger.Debug("recorded cut", slog.Int64("id", id))
	return id
}

func (h *historyRecorder) Complete(id int64, outputPath string) {
	if h.db == nil || id == 0 {
		return
	}
	var size int64
	if info, err := os.Stat(outputPath); err == nil {
		size = info.Size()
	}
	if err := db.MarkCutComplete(h.db, id, time.Now(), size); err != nil {
		h.logger.Warn("recording cut result", slog.Int64("id", id), slog.Any("error", err))
	}
}

func (h *historyRecorder) Fail(id int64, message string) {
	if h.db == nil || id == 0 {
		return
	}
	if err := db.MarkCutError(h.db, id, time.Now(), message); err != nil {
		h.logger.Warn("recording cut result", slog.Int64("id", id), slog.Any("error", err))
	}
}

func (h *historyRecorder) Close() {
	if h.db != nil {
		h.db.Close()
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent cuts",
		Long:  `List recent cut attempts from the history database, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			path, err := a.historyPath()
			if err != nil {
				return fmt.Errorf("failed to locate history database: %w", err)
			}
			database, err := db.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer database.Close()

			cuts, err := db.SelectRecentCuts(database, limit)
			if err != nil {
				return fmt.Errorf("failed to query history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(cuts) == 0 {
				fmt.Fprintln(out, "No cuts recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tStarted\tStatus\tRange\tSize\tInput\tOutput")
			fmt.Fprintln(w, "--\t-------\t------\t-----\t----\t-----\t------")
			for _, c := range cuts {
				size := "-"
				if c.Status == db.StatusComplete {
					size = humanize.Bytes(uint64(c.Filesize))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s-%s\t%s\t%s\t%s\n",
					c.ID,
					c.StartedAt.Local().Format("2006-01-02 15:04"),
					c.Status,
					timeutil.FormatTime(float64(c.StartSeconds)),
					timeutil.FormatTime(float64(c.EndSeconds)),
					size,
					c.InputPath,
					c.OutputPath,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, c := range cuts {
				if c.Status == db.StatusError && c.Log != "" {
					fmt.Fprintf(out, "\n#%d failed: %s\n", c.ID, c.Log)
				}
			}
			return nil
		},
	}
	historyCmd.Flags().Int("limit", 20, "number of cuts to show")
	return historyCmd
}
