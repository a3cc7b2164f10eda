package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/glucotrack/glucotrack-api/config"
	"github.com/glucotrack/glucotrack-api/logger"
)

var logMode string

var rootCmd = &cobra.Command{
	Use:   "glucotrack",
	Short: "GlucoTrack API server and maintenance commands",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logMode != "" {
			return os.Setenv("LOG_MODE", logMode)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logMode, "log-mode", "l", "", "Log mode (development or production), overrides LOG_MODE")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration, builds the logger and opens the
// database shared by every command.
func bootstrap() (*config.Config, *logger.Logger, *gorm.DB, error) {
	cfg := config.LoadConfig()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := config.ConnectDB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, log.With("app", cfg.AppName, "env", cfg.AppEnv), db, nil
}
