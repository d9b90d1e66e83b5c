package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/medsync/internal/models"
)

func (c *Cli) runConflicts(ctx context.Context, args []string) error {
	fs := c.newFlagSet("conflicts")
	remote := fs.Bool("remote", false, "fetch conflicts from the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *remote {
		n, err := c.service.RefreshConflicts(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("Fetched %d conflict(s) from server\n\n", n)
	}

	conflicts, err := c.service.Conflicts(ctx)
	if err != nil {
		return err
	}

	if len(conflicts) == 0 {
		c.io.Println("✓ No unresolved conflicts")
		return nil
	}

	c.io.Printf("=== Unresolved conflicts (%d) ===\n", len(conflicts))
	for _, conflict := range conflicts {
		c.io.Println()
		c.io.Printf("ID:        %s\n", conflict.ID)
		c.io.Printf("Entity:    %s %s\n", conflict.EntityType, conflict.SyncID)
		c.io.Printf("Type:      %s (%s)\n", conflict.ConflictType, conflict.Operation)
		c.io.Printf("Server v:  %d\n", conflict.ServerVersion)
		c.io.Printf("Detected:  %s\n", formatTime(&conflict.DetectedAt))
		c.io.Printf("Local:     %s\n", compactJSON(conflict.ClientData))
		c.io.Printf("Server:    %s\n", compactJSON(conflict.ServerData))
	}

	return nil
}

func (c *Cli) runResolve(ctx context.Context, args []string) error {
	fs := c.newFlagSet("resolve")
	id := fs.String("id", "", "conflict id")
	strategy := fs.String("strategy", "", "client_wins, server_wins or merge")
	rawData := fs.String("data", "", "merged data as JSON object (merge only)")
	dataFile := fs.String("file", "", "file with merged data (merge only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *strategy == "" {
		return fmt.Errorf("-id and -strategy are required")
	}

	data, err := parseDocument(*rawData, *dataFile)
	if err != nil {
		return err
	}

	result, err := c.service.Resolve(ctx, *id, models.ResolutionStrategy(*strategy), data)
	if err != nil {
		return err
	}

	if result.AlreadyResolved {
		c.io.Printf("Conflict %s was already resolved\n", *id)
		return nil
	}
	c.io.Printf("✓ Conflict %s resolved with %s, version %d\n", *id, *strategy, result.ResolvedVersion)
	return nil
}

func compactJSON(doc models.Document) string {
	if doc == nil {
		return "-"
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}
