package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
	syncsvc "github.com/iudanet/medsync/internal/server/sync"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

// defaultStatsWindow окно статистики без явного from
const defaultStatsWindow = 24 * time.Hour

func errInvalidParam(name, value string) error {
	return fmt.Errorf("invalid %s parameter: %q", name, value)
}

// History обрабатывает GET /api/v1/sync/history
// Фильтры: syncType, status (через запятую), entityType, from, to (RFC3339), page, limit
func (h *SyncHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	filter, page, err := historyFilter(r, id)
	if err != nil {
		h.typeError(w, err)
		return
	}

	entries, total, err := h.service.History(r.Context(), filter)
	if err != nil {
		h.serviceError(w, "history", id, err)
		return
	}

	respond(w, h.logger, "sync history", api.History{
		Entries:    toAPILedgerEntries(entries),
		Pagination: api.Pagination{Page: page, Limit: filter.Limit, Total: total},
	})
}

// Stats обрабатывает GET /api/v1/sync/stats?from&to
// Без параметров возвращает статистику за последние 24 часа
func (h *SyncHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	to := time.Now().UTC()
	from := to.Add(-defaultStatsWindow)

	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, errInvalidParam("to", v).Error())
			return
		}
		to = t
		from = to.Add(-defaultStatsWindow)
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, errInvalidParam("from", v).Error())
			return
		}
		from = t
	}
	if !from.Before(to) {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, "from must be before to")
		return
	}

	stats, err := h.service.Stats(r.Context(), id.TenantID, from, to)
	if err != nil {
		h.serviceError(w, "stats", id, err)
		return
	}

	respond(w, h.logger, "sync stats", toAPIStats(stats))
}

// EntityHistory обрабатывает GET /api/v1/sync/entities/{entityType}/{syncId}/history
func (h *SyncHandler) EntityHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	entityType := chi.URLParam(r, "entityType")
	syncID := chi.URLParam(r, "syncId")

	if _, err := authorizeTypes(id, []string{entityType}); err != nil {
		h.typeError(w, err)
		return
	}
	if err := validation.ValidateSyncID(syncID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	entries, err := h.service.EntityHistory(r.Context(), id.TenantID, entityType, syncID)
	if err != nil {
		if errors.Is(err, syncsvc.ErrUnknownEntityType) {
			writeError(w, h.logger, http.StatusNotFound, api.CodeNotFound, err.Error())
			return
		}
		h.serviceError(w, "entity_history", id, err)
		return
	}

	respond(w, h.logger, "entity history", api.EntityHistory{
		EntityType: entityType,
		SyncID:     syncID,
		Entries:    toAPILedgerEntries(entries),
	})
}

// historyFilter строит фильтр журнала из query.
// История ограничена записями вызывающего пользователя.
func historyFilter(r *http.Request, id Identity) (storage.LedgerFilter, int, error) {
	page, limit, err := parsePage(r)
	if err != nil {
		return storage.LedgerFilter{}, 0, err
	}

	userID := id.UserID
	filter := storage.LedgerFilter{
		TenantID: id.TenantID,
		UserID:   &userID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	q := r.URL.Query()

	if v := q.Get("syncType"); v != "" {
		st := models.SyncType(v)
		switch st {
		case models.SyncTypePull, models.SyncTypePush, models.SyncTypeBidirectional, models.SyncTypeConflictResolution:
			filter.SyncType = st
		default:
			return filter, 0, errInvalidParam("syncType", v)
		}
	}

	if v := q.Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			status := models.SyncStatus(strings.TrimSpace(s))
			switch status {
			case models.StatusPending, models.StatusInProgress, models.StatusSuccess,
				models.StatusFailed, models.StatusConflict, models.StatusPartial:
				filter.Statuses = append(filter.Statuses, status)
			default:
				return filter, 0, errInvalidParam("status", s)
			}
		}
	}

	if v := q.Get("entityType"); v != "" {
		if v != models.SessionEntityType {
			if _, err := authorizeTypes(id, []string{v}); err != nil {
				return filter, 0, err
			}
		}
		filter.EntityType = v
	}

	for _, p := range []struct {
		dst  **time.Time
		name string
	}{
		{&filter.From, "from"},
		{&filter.To, "to"},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, 0, errInvalidParam(p.name, v)
		}
		*p.dst = &t
	}

	return filter, page, nil
}
