package handlers

import (
	"net/http"
	"strconv"

	"github.com/iudanet/medsync/internal/models"
	syncsvc "github.com/iudanet/medsync/internal/server/sync"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// Conflicts обрабатывает GET /api/v1/sync/conflicts?page&limit
// Возвращает неразрешенные конфликты вызывающего пользователя
func (h *SyncHandler) Conflicts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	page, limit, err := parsePage(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	entries, total, err := h.service.ListConflicts(r.Context(), id.TenantID, id.UserID, page, limit)
	if err != nil {
		h.serviceError(w, "list_conflicts", id, err)
		return
	}

	conflicts := make([]api.Conflict, 0, len(entries))
	for _, e := range entries {
		conflicts = append(conflicts, toAPIConflict(e))
	}

	respond(w, h.logger, "unresolved conflicts", api.ConflictList{
		Conflicts:  conflicts,
		Pagination: api.Pagination{Page: page, Limit: limit, Total: total},
	})
}

// Resolve обрабатывает POST /api/v1/sync/conflicts/resolve
// Каждый конфликт разрешается независимо, итог возвращается по каждому элементу
func (h *SyncHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req api.ResolveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	if len(req.Conflicts) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, "conflicts cannot be empty")
		return
	}
	if len(req.Conflicts) > validation.MaxChangesPerPush {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, "too many conflicts in one request")
		return
	}

	items := make([]syncsvc.ResolveItem, 0, len(req.Conflicts))
	for _, c := range req.Conflicts {
		items = append(items, syncsvc.ResolveItem{
			ResolvedData: models.Document(c.ResolvedData),
			ConflictID:   c.ConflictID,
			Strategy:     models.ResolutionStrategy(c.Resolution),
		})
	}

	results := h.service.ResolveBatch(r.Context(), id.TenantID, id.UserID, items)

	resp := api.ResolveResponse{Results: make([]api.ResolveResult, 0, len(results))}
	for _, res := range results {
		if res.Success {
			resp.Resolved++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, toAPIResolveResult(res))
	}

	h.logger.Info("Conflicts resolved",
		"tenant_id", id.TenantID,
		"user_id", id.UserID,
		"resolved", resp.Resolved,
		"failed", resp.Failed)

	respond(w, h.logger, "resolution completed", resp)
}

// parsePage читает page (с 1) и limit из query
func parsePage(r *http.Request) (page, limit int, err error) {
	page, limit = 1, defaultPageLimit
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, errInvalidParam("page", v)
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return 0, 0, errInvalidParam("limit", v)
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit, nil
}
