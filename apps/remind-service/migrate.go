package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ms-You/poje-remind/migrations"
	"github.com/Ms-You/poje-remind/pkg/database"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run the embedded schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown), string(database.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			direction := database.MigrateUp
			if len(args) == 1 {
				direction = database.MigrationDirection(args[0])
			}

			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if _, err := initLogger(cfg); err != nil {
				return err
			}
			defer logger.Sync()

			db, err := connectPostgres(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(ctx, migrations.FS, direction); err != nil {
				return fmt.Errorf("migrate %s: %w", direction, err)
			}
			logger.Get().Info(fmt.Sprintf("Migrations %s complete", direction))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Read configuration from this env file instead of .env")
	return cmd
}
