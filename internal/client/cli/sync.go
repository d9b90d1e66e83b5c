package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/medsync/internal/models"
)

func (c *Cli) runSync(ctx context.Context, args []string) error {
	fs := c.newFlagSet("sync")
	trigger := fs.String("trigger", string(models.TriggerManual), "sync trigger: manual, automatic, scheduled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch models.Trigger(*trigger) {
	case models.TriggerManual, models.TriggerAutomatic, models.TriggerScheduled:
	default:
		return fmt.Errorf("unknown trigger %q", *trigger)
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result, err := c.service.Sync(ctx, models.Trigger(*trigger))
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Printf("Session:            %s\n", result.SessionID)
	c.io.Printf("Pushed to server:   %d change(s)\n", result.Pushed)
	c.io.Printf("  accepted:         %d\n", result.Succeeded)
	if result.Dropped > 0 {
		c.io.Printf("Collapsed locally:  %d change(s)\n", result.Dropped)
	}
	c.io.Printf("Pulled from server: %d entit(ies), %d applied\n", result.Pulled, result.Applied)

	if result.Conflicts > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d conflict(s) detected. Run 'medsync conflicts' to review.\n", result.Conflicts)
	}
	if result.Failed > 0 || len(result.Errors) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d change(s) failed and stay queued:\n", result.Failed)
		for _, e := range result.Errors {
			c.io.Printf("  - %s\n", e)
		}
	}

	return nil
}
