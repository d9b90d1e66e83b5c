package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

const ledgerColumns = `id, session_id, tenant_id, user_id, sync_type, trigger_source,
	entity_type, entity_sync_id, entity_id, operation,
	client_version, server_version, resolved_version,
	client_data, server_data, resolved_data, payload_size,
	had_conflict, conflict_type, resolution_strategy, conflict_details, resolved_by, resolved_at,
	status, error_message, error_details, retry_count, last_retry_at,
	started_at, completed_at, duration_ms,
	batch_id, batch_size, batch_position, batch_complete, metadata`

func dollar(n int) string {
	return "$" + strconv.Itoa(n)
}

// InsertEntry appends a new ledger entry
func (s *Storage) InsertEntry(ctx context.Context, e *models.LedgerEntry) error {
	query := `INSERT INTO sync_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)`

	_, err := s.pool.Exec(ctx, query,
		e.ID,
		e.SessionID,
		e.TenantID,
		e.UserID,
		string(e.SyncType),
		string(e.Trigger),
		e.EntityType,
		e.EntitySyncID,
		e.EntityID,
		string(e.Operation),
		e.ClientVersion,
		e.ServerVersion,
		e.ResolvedVersion,
		jsonArg(e.ClientData),
		jsonArg(e.ServerData),
		jsonArg(e.ResolvedData),
		e.PayloadSize,
		e.HadConflict,
		e.ConflictType,
		e.ResolutionStrategy,
		e.ConflictDetails,
		e.ResolvedBy,
		nanos(e.ResolvedAt),
		string(e.Status),
		e.ErrorMessage,
		e.ErrorDetails,
		e.RetryCount,
		nanos(e.LastRetryAt),
		e.StartedAt.UnixNano(),
		nanos(e.CompletedAt),
		e.DurationMs,
		e.BatchID,
		e.BatchSize,
		e.BatchPosition,
		e.BatchComplete,
		jsonArg(e.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return nil
}

// FinishEntry writes the mutable status columns of an entry in one statement
func (s *Storage) FinishEntry(ctx context.Context, e *models.LedgerEntry) error {
	query := `
		UPDATE sync_ledger
		SET status = $1, entity_id = $2, server_version = $3, server_data = $4,
			had_conflict = $5, conflict_type = $6, conflict_details = $7,
			error_message = $8, error_details = $9, payload_size = $10,
			completed_at = $11, duration_ms = $12, metadata = $13, batch_complete = $14
		WHERE id = $15 AND tenant_id = $16
	`

	tag, err := s.pool.Exec(ctx, query,
		string(e.Status),
		e.EntityID,
		e.ServerVersion,
		jsonArg(e.ServerData),
		e.HadConflict,
		e.ConflictType,
		e.ConflictDetails,
		e.ErrorMessage,
		e.ErrorDetails,
		e.PayloadSize,
		nanos(e.CompletedAt),
		e.DurationMs,
		jsonArg(e.Metadata),
		e.BatchComplete,
		e.ID,
		e.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// TransitionEntry changes status only if the row is still in the expected one
func (s *Storage) TransitionEntry(ctx context.Context, tenantID, id string, from, to models.SyncStatus) error {
	query := `UPDATE sync_ledger SET status = $1 WHERE id = $2 AND tenant_id = $3 AND status = $4`

	tag, err := s.pool.Exec(ctx, query, string(to), id, tenantID, string(from))
	if err != nil {
		return fmt.Errorf("failed to change ledger entry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetEntry(ctx, tenantID, id); err != nil {
			return err
		}
		return storage.ErrEntryStatusChanged
	}

	return nil
}

// ResolveEntry closes a claimed conflict entry. Only rows still claimed are touched.
func (s *Storage) ResolveEntry(ctx context.Context, e *models.LedgerEntry) error {
	query := `
		UPDATE sync_ledger
		SET status = $1, entity_id = $2, resolution_strategy = $3, resolved_version = $4,
			resolved_data = $5, resolved_by = $6, resolved_at = $7
		WHERE id = $8 AND tenant_id = $9 AND status = $10 AND had_conflict
	`

	tag, err := s.pool.Exec(ctx, query,
		string(models.StatusSuccess),
		e.EntityID,
		e.ResolutionStrategy,
		e.ResolvedVersion,
		jsonArg(e.ResolvedData),
		e.ResolvedBy,
		nanos(e.ResolvedAt),
		e.ID,
		e.TenantID,
		string(models.StatusInProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to resolve ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetEntry(ctx, e.TenantID, e.ID); err != nil {
			return err
		}
		return storage.ErrEntryNotConflict
	}

	return nil
}

// GetEntry retrieves entry by ID scoped to a tenant
func (s *Storage) GetEntry(ctx context.Context, tenantID, id string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger WHERE id = $1 AND tenant_id = $2`

	entry, err := scanEntry(s.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// LatestEntityEntry retrieves the most recent entry for an entity
func (s *Storage) LatestEntityEntry(ctx context.Context, tenantID, entityType, syncID string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_sync_id = $3
		ORDER BY started_at DESC
		LIMIT 1`

	entry, err := scanEntry(s.pool.QueryRow(ctx, query, tenantID, entityType, syncID))
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get latest entity entry: %w", err)
	}

	return entry, nil
}

// ListEntries returns a page of entries matching the filter and the total count
func (s *Storage) ListEntries(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, int, error) {
	where, args := filter.Where(dollar)
	limit, offset := filter.Page()

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sync_ledger WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger WHERE ` + where +
		` ORDER BY started_at DESC, id ASC LIMIT ` + dollar(len(args)+1) + ` OFFSET ` + dollar(len(args)+2)

	rows, err := s.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, total, nil
}

// Stats aggregates non-session entries started within [from, to)
func (s *Storage) Stats(ctx context.Context, tenantID string, from, to time.Time) (*models.LedgerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*) FILTER (WHERE had_conflict),
			COUNT(*) FILTER (WHERE had_conflict AND resolved_at IS NOT NULL),
			COALESCE(AVG(duration_ms), 0)::DOUBLE PRECISION,
			COALESCE(AVG(payload_size), 0)::DOUBLE PRECISION,
			COALESCE(SUM(payload_size), 0)::BIGINT,
			COUNT(DISTINCT session_id),
			COUNT(DISTINCT entity_type || ':' || entity_sync_id)
		FROM sync_ledger
		WHERE tenant_id = $1 AND entity_type <> $2 AND started_at >= $3 AND started_at < $4
	`

	stats := &models.LedgerStats{From: from, To: to}
	err := s.pool.QueryRow(ctx, query, tenantID, models.SessionEntityType, from.UnixNano(), to.UnixNano()).Scan(
		&stats.TotalEntries,
		&stats.SuccessCount,
		&stats.FailedCount,
		&stats.ConflictCount,
		&stats.ResolvedCount,
		&stats.AvgDurationMs,
		&stats.AvgPayloadSize,
		&stats.TotalPayloadSize,
		&stats.DistinctSessions,
		&stats.DistinctEntityKeys,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger stats: %w", err)
	}

	if stats.TotalEntries > 0 {
		stats.SuccessRate = float64(stats.SuccessCount) / float64(stats.TotalEntries)
		stats.ConflictRate = float64(stats.ConflictCount) / float64(stats.TotalEntries)
	}

	return stats, nil
}

// DeleteSucceededBefore removes success entries closed before cutoff
func (s *Storage) DeleteSucceededBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM sync_ledger
		WHERE status = $1 AND completed_at IS NOT NULL
			AND COALESCE(resolved_at, completed_at) < $2
	`

	tag, err := s.pool.Exec(ctx, query, string(models.StatusSuccess), cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to delete ledger entries: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var (
		e                                  models.LedgerEntry
		clientData, serverData, resolved   []byte
		metadata                           []byte
		syncType, trigger, operation       string
		status                             string
		resolvedAt, lastRetry, completedAt *int64
		startedAt                          int64
	)

	err := row.Scan(
		&e.ID,
		&e.SessionID,
		&e.TenantID,
		&e.UserID,
		&syncType,
		&trigger,
		&e.EntityType,
		&e.EntitySyncID,
		&e.EntityID,
		&operation,
		&e.ClientVersion,
		&e.ServerVersion,
		&e.ResolvedVersion,
		&clientData,
		&serverData,
		&resolved,
		&e.PayloadSize,
		&e.HadConflict,
		&e.ConflictType,
		&e.ResolutionStrategy,
		&e.ConflictDetails,
		&e.ResolvedBy,
		&resolvedAt,
		&status,
		&e.ErrorMessage,
		&e.ErrorDetails,
		&e.RetryCount,
		&lastRetry,
		&startedAt,
		&completedAt,
		&e.DurationMs,
		&e.BatchID,
		&e.BatchSize,
		&e.BatchPosition,
		&e.BatchComplete,
		&metadata,
	)
	if err != nil {
		return nil, err
	}

	for _, doc := range []struct {
		dst *models.Document
		raw []byte
	}{
		{&e.ClientData, clientData},
		{&e.ServerData, serverData},
		{&e.ResolvedData, resolved},
		{&e.Metadata, metadata},
	} {
		if err := doc.dst.Scan(doc.raw); err != nil {
			return nil, err
		}
	}

	e.SyncType = models.SyncType(syncType)
	e.Trigger = models.Trigger(trigger)
	e.Operation = models.Operation(operation)
	e.Status = models.SyncStatus(status)
	e.ResolvedAt = timeFromNanos(resolvedAt)
	e.LastRetryAt = timeFromNanos(lastRetry)
	e.StartedAt = fromNanos(startedAt)
	e.CompletedAt = timeFromNanos(completedAt)

	return &e, nil
}
