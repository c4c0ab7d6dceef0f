package commands

import (
	"fmt"

	"github.com/anhimov/library/src/config"
	"github.com/anhimov/library/src/db"
	"github.com/anhimov/library/src/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Global flags
	verbose bool

	cfg *config.Config
	log *zap.Logger
)

// rootCmd serves the library when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "library",
	Short: "Library catalog: books, readers and loans",
	Long: `library runs the book lending web application.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.LogLevel, verbose); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

// openDB connects and migrates the configured database.
func openDB() (*gorm.DB, error) {
	database, err := db.Connect(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

func closeDB(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}
}
