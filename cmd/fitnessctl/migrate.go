package main

import (
	"github.com/eswan18/fitness-api-sub000/internal/db"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply every pending schema migration, or revert the last N with --down.

EXAMPLES:

  fitnessctl migrate            # bring the schema up to date
  fitnessctl migrate --down 1   # revert the latest migration`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDownSteps > 0 {
			if err := db.MigrateDown(dbParams(), migrateDownSteps); err != nil {
				return err
			}
			color.Yellow("reverted %d migration(s)", migrateDownSteps)
			return nil
		}

		if err := db.Migrate(dbParams()); err != nil {
			return err
		}
		color.Green("schema up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateDownSteps, "down", 0, "revert this many migrations instead of applying")
	rootCmd.AddCommand(migrateCmd)
}
