package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// InsertEntry appends a new ledger entry
func (s *Storage) InsertEntry(ctx context.Context, e *models.LedgerEntry) error {
	query := `INSERT INTO sync_ledger (` + ledgerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.SessionID,
		e.TenantID,
		nullString(e.UserID),
		string(e.SyncType),
		string(e.Trigger),
		e.EntityType,
		e.EntitySyncID,
		nullInt64(e.EntityID),
		string(e.Operation),
		nullInt64(e.ClientVersion),
		nullInt64(e.ServerVersion),
		nullInt64(e.ResolvedVersion),
		e.ClientData,
		e.ServerData,
		e.ResolvedData,
		e.PayloadSize,
		boolToInt(e.HadConflict),
		nullString(e.ConflictType),
		nullString(e.ResolutionStrategy),
		e.ConflictDetails,
		nullString(e.ResolvedBy),
		nullNanos(e.ResolvedAt),
		string(e.Status),
		e.ErrorMessage,
		e.ErrorDetails,
		e.RetryCount,
		nullNanos(e.LastRetryAt),
		toNanos(e.StartedAt),
		nullNanos(e.CompletedAt),
		nullInt64(e.DurationMs),
		nullString(e.BatchID),
		nullInt(e.BatchSize),
		nullInt(e.BatchPosition),
		boolToInt(e.BatchComplete),
		e.Metadata,
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
		SET status = ?, entity_id = ?, server_version = ?, server_data = ?,
			had_conflict = ?, conflict_type = ?, conflict_details = ?,
			error_message = ?, error_details = ?, payload_size = ?,
			completed_at = ?, duration_ms = ?, metadata = ?, batch_complete = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		string(e.Status),
		nullInt64(e.EntityID),
		nullInt64(e.ServerVersion),
		e.ServerData,
		boolToInt(e.HadConflict),
		nullString(e.ConflictType),
		e.ConflictDetails,
		e.ErrorMessage,
		e.ErrorDetails,
		e.PayloadSize,
		nullNanos(e.CompletedAt),
		nullInt64(e.DurationMs),
		e.Metadata,
		boolToInt(e.BatchComplete),
		e.ID,
		e.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// TransitionEntry changes status only if the row is still in the expected one
func (s *Storage) TransitionEntry(ctx context.Context, tenantID, id string, from, to models.SyncStatus) error {
	query := `UPDATE sync_ledger SET status = ? WHERE id = ? AND tenant_id = ? AND status = ?`

	result, err := s.db.ExecContext(ctx, query, string(to), id, tenantID, string(from))
	if err != nil {
		return fmt.Errorf("failed to change ledger entry status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
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
		SET status = ?, entity_id = ?, resolution_strategy = ?, resolved_version = ?,
			resolved_data = ?, resolved_by = ?, resolved_at = ?
		WHERE id = ? AND tenant_id = ? AND status = ? AND had_conflict = 1
	`

	result, err := s.db.ExecContext(ctx, query,
		string(models.StatusSuccess),
		nullInt64(e.EntityID),
		nullString(e.ResolutionStrategy),
		nullInt64(e.ResolvedVersion),
		e.ResolvedData,
		nullString(e.ResolvedBy),
		nullNanos(e.ResolvedAt),
		e.ID,
		e.TenantID,
		string(models.StatusInProgress),
	)
	if err != nil {
		return fmt.Errorf("failed to resolve ledger entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		// Различаем "нет записи" и "запись не захвачена для разрешения"
		if _, err := s.GetEntry(ctx, e.TenantID, e.ID); err != nil {
			return err
		}
		return storage.ErrEntryNotConflict
	}

	return nil
}

// GetEntry retrieves entry by ID scoped to a tenant
func (s *Storage) GetEntry(ctx context.Context, tenantID, id string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger WHERE id = ? AND tenant_id = ?`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// LatestEntityEntry retrieves the most recent entry for an entity
func (s *Storage) LatestEntityEntry(ctx context.Context, tenantID, entityType, syncID string) (*models.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger
		WHERE tenant_id = ? AND entity_type = ? AND entity_sync_id = ?
		ORDER BY started_at DESC
		LIMIT 1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, tenantID, entityType, syncID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get latest entity entry: %w", err)
	}

	return entry, nil
}

// ListEntries returns a page of entries matching the filter and the total count
func (s *Storage) ListEntries(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, int, error) {
	where, args := filter.Where(func(int) string { return "?" })
	limit, offset := filter.Page()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_ledger WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	query := `SELECT ` + ledgerColumns + ` FROM sync_ledger WHERE ` + where +
		` ORDER BY started_at DESC, id ASC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, append(args, limit, offset)...)
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
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(had_conflict), 0),
			COALESCE(SUM(CASE WHEN had_conflict = 1 AND resolved_at IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			COALESCE(AVG(payload_size), 0),
			COALESCE(SUM(payload_size), 0),
			COUNT(DISTINCT session_id),
			COUNT(DISTINCT entity_type || ':' || entity_sync_id)
		FROM sync_ledger
		WHERE tenant_id = ? AND entity_type <> ? AND started_at >= ? AND started_at < ?
	`

	stats := &models.LedgerStats{From: from, To: to}
	err := s.db.QueryRowContext(ctx, query, tenantID, models.SessionEntityType, toNanos(from), toNanos(to)).Scan(
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

// DeleteSucceededBefore removes success entries closed before cutoff.
// A resolved conflict counts as closed at its resolution time.
func (s *Storage) DeleteSucceededBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM sync_ledger
		WHERE status = ? AND completed_at IS NOT NULL
			AND COALESCE(resolved_at, completed_at) < ?
	`

	result, err := s.db.ExecContext(ctx, query, string(models.StatusSuccess), toNanos(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete ledger entries: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

func scanEntry(row rowScanner) (*models.LedgerEntry, error) {
	var (
		e                                              models.LedgerEntry
		userID, conflictType, strategy, resolvedBy     sql.NullString
		batchID                                        sql.NullString
		entityID, clientVer, serverVer, resolvedVer    sql.NullInt64
		resolvedAt, lastRetryAt, completedAt, duration sql.NullInt64
		batchSize, batchPosition                       sql.NullInt64
		syncType, trigger, operation, status           string
		startedAt                                      int64
		hadConflict, batchComplete                     int
	)

	err := row.Scan(
		&e.ID,
		&e.SessionID,
		&e.TenantID,
		&userID,
		&syncType,
		&trigger,
		&e.EntityType,
		&e.EntitySyncID,
		&entityID,
		&operation,
		&clientVer,
		&serverVer,
		&resolvedVer,
		&e.ClientData,
		&e.ServerData,
		&e.ResolvedData,
		&e.PayloadSize,
		&hadConflict,
		&conflictType,
		&strategy,
		&e.ConflictDetails,
		&resolvedBy,
		&resolvedAt,
		&status,
		&e.ErrorMessage,
		&e.ErrorDetails,
		&e.RetryCount,
		&lastRetryAt,
		&startedAt,
		&completedAt,
		&duration,
		&batchID,
		&batchSize,
		&batchPosition,
		&batchComplete,
		&e.Metadata,
	)
	if err != nil {
		return nil, err
	}

	e.UserID = stringFromNull[string](userID)
	e.SyncType = models.SyncType(syncType)
	e.Trigger = models.Trigger(trigger)
	e.EntityID = int64FromNull(entityID)
	e.Operation = models.Operation(operation)
	e.ClientVersion = int64FromNull(clientVer)
	e.ServerVersion = int64FromNull(serverVer)
	e.ResolvedVersion = int64FromNull(resolvedVer)
	e.HadConflict = hadConflict != 0
	e.ConflictType = stringFromNull[models.ConflictType](conflictType)
	e.ResolutionStrategy = stringFromNull[models.ResolutionStrategy](strategy)
	e.ResolvedBy = stringFromNull[string](resolvedBy)
	e.ResolvedAt = timeFromNull(resolvedAt)
	e.Status = models.SyncStatus(status)
	e.LastRetryAt = timeFromNull(lastRetryAt)
	e.StartedAt = fromNanos(startedAt)
	e.CompletedAt = timeFromNull(completedAt)
	e.DurationMs = int64FromNull(duration)
	e.BatchID = stringFromNull[string](batchID)
	e.BatchSize = intFromNull(batchSize)
	e.BatchPosition = intFromNull(batchPosition)
	e.BatchComplete = batchComplete != 0

	return &e, nil
}
