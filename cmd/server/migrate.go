package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simp-lee/gonotes/internal/app"
	"github.com/simp-lee/gonotes/internal/config"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Long:  "Migrations run automatically in debug mode. Use this command before serving in release mode.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err := config.SetupLogger(&cfg.Log)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			defer log.Close()

			db, err := config.SetupDatabase(&cfg.Database, log.Logger)
			if err != nil {
				return fmt.Errorf("setup database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := app.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}
