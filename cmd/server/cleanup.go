package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/medsync/internal/server/ledger"
)

func newCleanupCmd(a *app) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete succeeded ledger entries past the retention window",
		Long:  `Удаляет успешные записи журнала старше окна хранения.
Неудачные и конфликтные записи сохраняются.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window := olderThan
			if window <= 0 {
				window = a.cfg.Retention.Window
			}

			store, err := a.openStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer store.Close()

			deleted, err := ledger.New(store, a.logger).Cleanup(cmd.Context(), window)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d ledger entries older than %s\n", deleted, window)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "retention window (defaults to retention.window)")

	return cmd
}
