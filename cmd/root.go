// Package cmd is the fairm command line: serve, migrate and seed.
package cmd

import (
	"fmt"
	"os"

	"github.com/kellyworkos00-droid/fairm/configs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbDriver string
	dbSource string
)

var rootCmd = &cobra.Command{
	Use:   "fairm",
	Short: "fairm - agricultural marketplace backend",
	Long: `fairm connects farmers who list produce with buyers who order it.
The platform takes a commission on each order at the rate of the
farmer's subscription tier.

Configuration comes from the environment (or a .env file); the flags
below override the database settings.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite or postgres (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbSource, "db", "", "Database DSN or sqlite file (overrides DB_SOURCE)")
}

// app is what every subcommand starts from.
type app struct {
	cfg *configs.Config
	log *zap.Logger
	db  *gorm.DB
}

func bootstrap() (*app, error) {
	cfg := configs.LoadConfig()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbSource != "" {
		cfg.DBSource = dbSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := configs.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (rt *app) close() {
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rt.log.Sync()
}
