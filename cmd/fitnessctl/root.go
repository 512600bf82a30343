package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/config"
	"github.com/eswan18/fitness-api-sub000/internal/db"
	"github.com/eswan18/fitness-api-sub000/internal/logging"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	envFlag    string
	configFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fitnessctl",
	Short: "Operator tool for the fitness API database",
	Long: `fitnessctl works directly against the fitness database: it applies schema
migrations, imports normalized runs, inspects and restores run history, and
prints training load.

The database connection comes from the same TOML config the service uses;
the password is read from FITNESS_DB_PASSWORD.

EXAMPLES:

  fitnessctl migrate
  fitnessctl import runs.json
  fitnessctl history strava_123 -n 5
  fitnessctl restore strava_123 2 --by ethan
  fitnessctl training-load --start 2024-10-01 --end 2024-10-31 --max-hr 192 --resting-hr 42`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(envFlag, configFlag)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logging.Setup(logging.LoggerSetupParams{
			LogLevel: cfg.LogLevel,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "development", "config environment [dev | prod | ddev]")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "./config.toml", "path for the TOML config file")
}

func dbParams() db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITNESS_DB_PASSWORD"),
	}
}

// connect opens a pool and a runs service without a list cache; the caller closes the pool.
func connect(ctx context.Context) (*pgxpool.Pool, *runs.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.NewDBPool(ctx, dbParams())
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, runs.NewService(runs.NewRepo(pool), nil, metrics.NewManager("fitness", "cli", prometheus.NewRegistry())), nil
}
