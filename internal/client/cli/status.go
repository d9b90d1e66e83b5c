package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context, _ []string) error {
	status, err := c.service.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	c.io.Println("=== Sync Status ===")
	c.io.Println()
	c.io.Printf("Last sync:  %s\n", formatTime(status.LastSync))
	c.io.Printf("Cached:     %d entit(ies)\n", status.Cached)
	c.io.Printf("Conflicts:  %d\n", status.Conflicts)
	c.io.Println()

	if status.Pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d change(s) waiting to be sent\n", status.Pending)
		c.io.Println("Run 'medsync sync' to synchronize with server.")
	} else {
		c.io.Println("✓ All local changes synchronized with server")
	}

	return nil
}
