package handlers

import (
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/ledger"
	syncsvc "github.com/iudanet/medsync/internal/server/sync"
	"github.com/iudanet/medsync/pkg/api"
)

func fromAPIChanges(changes []api.Change) []models.Change {
	out := make([]models.Change, 0, len(changes))
	for _, c := range changes {
		out = append(out, models.Change{
			Data:       models.Document(c.Data),
			EntityType: c.EntityType,
			SyncID:     c.SyncID,
			Operation:  models.Operation(c.Operation),
			Version:    c.Version,
		})
	}
	return out
}

func fromAPIBatch(b *api.Batch) *ledger.Batch {
	if b == nil {
		return nil
	}
	return &ledger.Batch{
		ID:       b.ID,
		Size:     b.Size,
		Offset:   b.Offset,
		Complete: b.Complete,
	}
}

func toAPIEntity(e *models.Entity) api.Entity {
	return api.Entity{
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Data:       e.Data,
		EntityType: e.EntityType,
		SyncID:     e.SyncID,
		ID:         e.ID,
		Version:    e.Version,
		Deleted:    e.Deleted,
	}
}

func toPullResponse(r *syncsvc.PullResult) *api.PullResponse {
	if r == nil {
		return nil
	}
	changes := make([]api.Entity, 0, len(r.Changes))
	for _, e := range r.Changes {
		changes = append(changes, toAPIEntity(e))
	}
	return &api.PullResponse{
		ServerTimestamp: r.ServerTimestamp,
		SyncSessionID:   r.SessionID,
		Changes:         changes,
		TotalItems:      r.TotalItems,
		HasMore:         r.HasMore,
	}
}

func toAPIChangeResults(results []models.ChangeResult) []api.ChangeResult {
	out := make([]api.ChangeResult, 0, len(results))
	for _, r := range results {
		item := api.ChangeResult{
			ServerData:    r.ServerData,
			ServerVersion: r.ServerVersion,
			EntityType:    r.EntityType,
			SyncID:        r.SyncID,
			Status:        string(r.Status),
			LedgerEntryID: r.LedgerEntryID,
			Error:         r.Error,
			Version:       r.Version,
			EntityID:      r.EntityID,
		}
		if r.ConflictType != nil {
			ct := string(*r.ConflictType)
			item.ConflictType = &ct
		}
		out = append(out, item)
	}
	return out
}

func toPushResponse(r *syncsvc.PushResult) *api.PushResponse {
	if r == nil {
		return nil
	}
	return &api.PushResponse{
		SyncSessionID: r.SessionID,
		Results:       toAPIChangeResults(r.Results),
		Conflicts:     toAPIChangeResults(r.Conflicts),
		Processed:     r.Processed,
		Successful:    r.Successful,
		Failed:        r.Failed,
	}
}

func toAPIConflict(e *models.LedgerEntry) api.Conflict {
	c := api.Conflict{
		DetectedAt:      e.StartedAt,
		ClientData:      e.ClientData,
		ServerData:      e.ServerData,
		ClientVersion:   e.ClientVersion,
		ServerVersion:   e.ServerVersion,
		EntityID:        e.EntityID,
		ConflictID:      e.ID,
		SyncSessionID:   e.SessionID,
		EntityType:      e.EntityType,
		SyncID:          e.EntitySyncID,
		Operation:       string(e.Operation),
		ConflictDetails: e.ConflictDetails,
	}
	if e.CompletedAt != nil {
		c.DetectedAt = *e.CompletedAt
	}
	if e.ConflictType != nil {
		c.ConflictType = string(*e.ConflictType)
	}
	return c
}

func toAPILedgerEntry(e *models.LedgerEntry) api.LedgerEntry {
	out := api.LedgerEntry{
		StartedAt:       e.StartedAt,
		CompletedAt:     e.CompletedAt,
		ResolvedAt:      e.ResolvedAt,
		Metadata:        e.Metadata,
		EntityID:        e.EntityID,
		ClientVersion:   e.ClientVersion,
		ServerVersion:   e.ServerVersion,
		ResolvedVersion: e.ResolvedVersion,
		DurationMs:      e.DurationMs,
		BatchPosition:   e.BatchPosition,
		ID:              e.ID,
		SyncSessionID:   e.SessionID,
		SyncType:        string(e.SyncType),
		Trigger:         string(e.Trigger),
		EntityType:      e.EntityType,
		SyncID:          e.EntitySyncID,
		Operation:       string(e.Operation),
		Status:          string(e.Status),
		ErrorMessage:    e.ErrorMessage,
		ConflictDetails: e.ConflictDetails,
		PayloadSize:     e.PayloadSize,
		RetryCount:      e.RetryCount,
		HadConflict:     e.HadConflict,
	}
	if e.UserID != nil {
		out.UserID = *e.UserID
	}
	if e.ConflictType != nil {
		out.ConflictType = string(*e.ConflictType)
	}
	if e.ResolutionStrategy != nil {
		out.ResolutionStrategy = string(*e.ResolutionStrategy)
	}
	if e.ResolvedBy != nil {
		out.ResolvedBy = *e.ResolvedBy
	}
	if e.BatchID != nil {
		out.BatchID = *e.BatchID
	}
	return out
}

func toAPILedgerEntries(entries []*models.LedgerEntry) []api.LedgerEntry {
	out := make([]api.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAPILedgerEntry(e))
	}
	return out
}

func toAPIStats(s *models.LedgerStats) api.Stats {
	return api.Stats{
		From:             s.From,
		To:               s.To,
		TotalEntries:     s.TotalEntries,
		SuccessCount:     s.SuccessCount,
		FailedCount:      s.FailedCount,
		ConflictCount:    s.ConflictCount,
		ResolvedCount:    s.ResolvedCount,
		DistinctSessions: s.DistinctSessions,
		DistinctEntities: s.DistinctEntityKeys,
		TotalPayloadSize: s.TotalPayloadSize,
		SuccessRate:      s.SuccessRate,
		ConflictRate:     s.ConflictRate,
		AvgDurationMs:    s.AvgDurationMs,
		AvgPayloadSize:   s.AvgPayloadSize,
	}
}

func toAPIResolveResult(r syncsvc.ResolveItemResult) api.ResolveResult {
	out := api.ResolveResult{
		ConflictID: r.ConflictID,
		Error:      r.Error,
		Success:    r.Success,
	}
	if o := r.Outcome; o != nil {
		out.ResolvedData = o.ResolvedData
		out.EntityID = o.EntityID
		out.Resolution = string(o.Strategy)
		out.AuditSessionID = o.AuditSessionID
		out.ResolvedVersion = o.ResolvedVersion
		out.AlreadyResolved = o.AlreadyResolved
	}
	return out
}
