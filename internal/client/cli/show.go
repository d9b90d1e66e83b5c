package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/medsync/internal/client/storage"
)

func (c *Cli) runShow(ctx context.Context, args []string) error {
	fs := c.newFlagSet("show")
	entityType := fs.String("type", "", "entity type")
	syncID := fs.String("id", "", "sync id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *entityType == "" || *syncID == "" {
		return fmt.Errorf("-type and -id are required")
	}

	record, err := c.service.Show(ctx, *entityType, *syncID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("%s %s is not in the local cache, run 'medsync sync' first", *entityType, *syncID)
	}
	if err != nil {
		return err
	}

	c.io.Printf("Entity:   %s %s\n", record.EntityType, record.SyncID)
	c.io.Printf("Version:  %d\n", record.Version)
	c.io.Printf("Updated:  %s\n", formatTime(&record.UpdatedAt))
	if record.Deleted {
		c.io.Println("Status:   deleted")
	}
	if record.Pending > 0 {
		c.io.Printf("Pending:  %d local change(s)\n", record.Pending)
	}
	c.io.Println()

	return c.printJSON(record.Data)
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	fs := c.newFlagSet("list")
	entityType := fs.String("type", "", "entity type (all when empty)")
	showDeleted := fs.Bool("deleted", false, "include deleted entities")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records, err := c.service.List(ctx, *entityType)
	if err != nil {
		return err
	}

	var shown int
	for _, r := range records {
		if r.Deleted && !*showDeleted {
			continue
		}
		marker := ""
		if r.Pending > 0 {
			marker = " *"
		}
		if r.Deleted {
			marker += " (deleted)"
		}
		c.io.Printf("%-12s %s v%d%s\n", r.EntityType, r.SyncID, r.Version, marker)
		shown++
	}

	if shown == 0 {
		c.io.Println("No cached entities")
		return nil
	}
	c.io.Println()
	c.io.Printf("Total: %d (* = pending local changes)\n", shown)
	return nil
}

func (c *Cli) runHistory(ctx context.Context, args []string) error {
	fs := c.newFlagSet("history")
	entityType := fs.String("type", "", "entity type")
	syncID := fs.String("id", "", "sync id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *entityType == "" || *syncID == "" {
		return fmt.Errorf("-type and -id are required")
	}

	history, err := c.service.History(ctx, *entityType, *syncID)
	if err != nil {
		return err
	}

	c.io.Printf("=== History of %s %s ===\n", history.EntityType, history.SyncID)
	for _, e := range history.Entries {
		line := fmt.Sprintf("%s  %-19s %-9s %-10s", e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.SyncType, e.Operation, e.Status)
		if e.ServerVersion != nil {
			line += fmt.Sprintf(" v%d", *e.ServerVersion)
		}
		if e.ConflictType != "" {
			line += " conflict=" + e.ConflictType
		}
		if e.ResolutionStrategy != "" {
			line += " resolved=" + e.ResolutionStrategy
		}
		c.io.Println(line)
	}
	return nil
}
