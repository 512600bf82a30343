package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/eswan18/fitness-api-sub000/internal/runs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import normalized runs",
	Long: `Import a JSON array of normalized runs. Runs whose id is already stored
are skipped; new runs get their original history row.

Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toImport, err := readRuns(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		pool, service, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		result, err := service.Import(cmd.Context(), toImport)
		if err != nil {
			return fmt.Errorf("import runs: %w", err)
		}

		color.Green("imported %d run(s)", result.Inserted)
		if result.Skipped > 0 {
			color.Yellow("skipped %d already stored run(s)", result.Skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func readRuns(path string, stdin io.Reader) ([]runs.Run, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open runs file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var out []runs.Run
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	return out, nil
}
