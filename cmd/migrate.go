package cmd

import (
	"github.com/spf13/cobra"

	"github.com/glucotrack/glucotrack-api/model"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := model.Migrate(db); err != nil {
			return err
		}
		log.Info("schema migrated", "tables", len(model.AllModels()))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the roles and the alert type catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := model.Seed(db); err != nil {
			return err
		}
		log.Info("reference data seeded", "alert_types", len(model.AlertTypeCatalog))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
