package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/medsync/internal/config"
	"github.com/iudanet/medsync/internal/server/storage/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Database.Driver == config.DriverPostgres {
				if err := postgres.Migrate(postgres.DefaultEngine, a.cfg.Database.MigrationsPath, a.cfg.Database.DSN); err != nil {
					return err
				}
				a.logger.Info("Migrations applied", "driver", a.cfg.Database.Driver)
				return nil
			}

			// SQLite применяет встроенные миграции при открытии
			store, err := a.openStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			a.logger.Info("Migrations applied", "driver", a.cfg.Database.Driver)
			return store.Close()
		},
	}

	cmd.Flags().String("database-migrations-path", "", "directory with migration files (embedded when empty)")

	return cmd
}
