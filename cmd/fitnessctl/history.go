package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/eswan18/fitness-api-sub000/internal/runs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <run-id>",
	Short: "Show the version history of a run",
	Long: `Show the versions of a run, newest first.

EXAMPLES:

  fitnessctl history strava_123
  fitnessctl history strava_123 -n 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, service, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		history, err := service.History(cmd.Context(), args[0], historyLimit)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), history)
		return nil
	},
}

var restoreBy string

var restoreCmd = &cobra.Command{
	Use:   "restore <run-id> <version>",
	Short: "Restore a run to an earlier version",
	Long: `Write a new version of the run whose fields are copied from <version>.
The history keeps every version, including the one restored from.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("version must be a number: %q", args[1])
		}

		pool, service, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		restored, err := service.RestoreToVersion(cmd.Context(), args[0], version, restoreBy)
		if err != nil {
			return err
		}
		color.Green("run %s restored from version %d, now at version %d", restored.ID, version, restored.Version)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many versions (0 for all)")
	restoreCmd.Flags().StringVar(&restoreBy, "by", "fitnessctl", "who is restoring, recorded in the history")
	rootCmd.AddCommand(historyCmd, restoreCmd)
}

var changeColors = map[runs.ChangeType]*color.Color{
	runs.ChangeOriginal: color.New(color.FgCyan),
	runs.ChangeEdit:     color.New(color.FgYellow),
	runs.ChangeDeletion: color.New(color.FgRed),
}

func printHistory(w io.Writer, history []runs.HistoryRecord) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No history found.")
		return
	}

	faint := color.New(color.Faint)
	for _, rec := range history {
		reason := ""
		if rec.ChangeReason != nil && *rec.ChangeReason != "" {
			reason = faint.Sprintf(" (%s)", *rec.ChangeReason)
		}
		changeColor, ok := changeColors[rec.ChangeType]
		if !ok {
			changeColor = color.New(color.Reset)
		}
		fmt.Fprintf(w, "v%-3d %-8s %s by %s  %.2f mi  %s%s\n",
			rec.VersionNumber,
			changeColor.Sprint(rec.ChangeType),
			faint.Sprint(rec.ChangedAt.Format("2006-01-02 15:04")),
			rec.ChangedBy,
			rec.Distance,
			formatDuration(rec.Duration),
			reason,
		)
	}
}

func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
