package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/medsync/internal/client/sync"
	"github.com/iudanet/medsync/internal/models"
)

const queueUsage = "Usage: medsync queue <create|update|delete> -type T [-id ID] [-data JSON | -file PATH]"

func (c *Cli) runQueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing operation. %s", queueUsage)
	}

	op := models.Operation(args[0])
	switch op {
	case models.OperationCreate, models.OperationUpdate, models.OperationDelete:
	default:
		return fmt.Errorf("unknown operation: %s. %s", args[0], queueUsage)
	}

	fs := c.newFlagSet("queue " + args[0])
	entityType := fs.String("type", "", "entity type")
	syncID := fs.String("id", "", "sync id (generated for create when empty)")
	rawData := fs.String("data", "", "entity data as JSON object")
	dataFile := fs.String("file", "", "file with entity data as JSON object")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if *entityType == "" {
		return fmt.Errorf("-type is required. %s", queueUsage)
	}
	if op != models.OperationCreate && *syncID == "" {
		return fmt.Errorf("-id is required for %s. %s", op, queueUsage)
	}

	data, err := parseDocument(*rawData, *dataFile)
	if err != nil {
		return err
	}
	if data == nil && op != models.OperationDelete {
		raw, err := c.io.ReadInput("Data (JSON object): ")
		if err != nil {
			return fmt.Errorf("failed to read data: %w", err)
		}
		if data, err = parseDocument(raw, ""); err != nil {
			return err
		}
	}

	change, err := c.service.Queue(ctx, sync.QueueRequest{
		Data:       data,
		EntityType: *entityType,
		SyncID:     *syncID,
		Operation:  op,
	})
	if err != nil {
		return fmt.Errorf("failed to queue change: %w", err)
	}

	c.io.Printf("✓ Queued %s %s %s (#%d)\n", change.Operation, change.EntityType, change.SyncID, change.Seq)
	c.io.Println("Run 'medsync sync' to send it to the server.")
	return nil
}
