package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
	syncsvc "github.com/iudanet/medsync/internal/server/sync"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

//go:generate moq -out sync_service_mock.go . SyncService

// TriggerHeader задает источник запуска синхронизации (manual, automatic, scheduled)
const TriggerHeader = "X-Sync-Trigger"

// errForbiddenType is returned when the token does not authorize an entity type
var errForbiddenType = errors.New("entity type is not authorized for this token")

// SyncService определяет интерфейс сервиса синхронизации
type SyncService interface {
	Pull(ctx context.Context, req syncsvc.PullRequest) (*syncsvc.PullResult, error)
	Push(ctx context.Context, req syncsvc.PushRequest) (*syncsvc.PushResult, error)
	Bidirectional(ctx context.Context, req syncsvc.BidirectionalRequest) (*syncsvc.BidirectionalResult, error)
	ResolveBatch(ctx context.Context, tenantID, userID string, items []syncsvc.ResolveItem) []syncsvc.ResolveItemResult
	ListConflicts(ctx context.Context, tenantID, userID string, page, limit int) ([]*models.LedgerEntry, int, error)
	History(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, int, error)
	Stats(ctx context.Context, tenantID string, from, to time.Time) (*models.LedgerStats, error)
	EntityHistory(ctx context.Context, tenantID, entityType, syncID string) ([]*models.LedgerEntry, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger  *slog.Logger
	service SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, service SyncService) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		service: service,
	}
}

// Pull обрабатывает POST /api/v1/sync/pull
// Пустое тело означает полную синхронизацию всех разрешенных типов
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req api.PullRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	types, err := authorizeTypes(id, req.EntityTypes)
	if err != nil {
		h.typeError(w, err)
		return
	}

	result, err := h.service.Pull(r.Context(), syncsvc.PullRequest{
		Since:       req.LastSync,
		TenantID:    id.TenantID,
		UserID:      id.UserID,
		Trigger:     triggerFromRequest(r),
		EntityTypes: types,
	})
	if err != nil {
		h.serviceError(w, "pull", id, err)
		return
	}

	h.logger.Info("Pull completed",
		"tenant_id", id.TenantID,
		"user_id", id.UserID,
		"changes", result.TotalItems,
		"has_more", result.HasMore)

	respond(w, h.logger, "pull completed", toPullResponse(result))
}

// Push обрабатывает POST /api/v1/sync/push
// Конфликты возвращаются как данные со статусом 200
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req api.PushRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	changes := fromAPIChanges(req.Changes)
	if err := validation.ValidateChanges(changes); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}
	if err := authorizeChanges(id, changes); err != nil {
		h.typeError(w, err)
		return
	}

	result, err := h.service.Push(r.Context(), syncsvc.PushRequest{
		ClientTime: req.ClientTime,
		Batch:      fromAPIBatch(req.Batch),
		TenantID:   id.TenantID,
		UserID:     id.UserID,
		Trigger:    triggerFromRequest(r),
		Changes:    changes,
	})
	if err != nil {
		h.serviceError(w, "push", id, err)
		return
	}

	h.logger.Info("Push completed",
		"tenant_id", id.TenantID,
		"user_id", id.UserID,
		"processed", result.Processed,
		"successful", result.Successful,
		"failed", result.Failed,
		"conflicts", len(result.Conflicts))

	respond(w, h.logger, "push completed", toPushResponse(result))
}

// Bidirectional обрабатывает POST /api/v1/sync/bidirectional
func (h *SyncHandler) Bidirectional(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req api.BidirectionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	types, err := authorizeTypes(id, req.EntityTypes)
	if err != nil {
		h.typeError(w, err)
		return
	}

	// Пустой список изменений допустим: остается только pull
	changes := fromAPIChanges(req.Changes)
	if len(changes) > 0 {
		if err := validation.ValidateChanges(changes); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
			return
		}
		if err := authorizeChanges(id, changes); err != nil {
			h.typeError(w, err)
			return
		}
	}

	result, err := h.service.Bidirectional(r.Context(), syncsvc.BidirectionalRequest{
		Since:       req.LastSync,
		ClientTime:  req.ClientTime,
		Batch:       fromAPIBatch(req.Batch),
		TenantID:    id.TenantID,
		UserID:      id.UserID,
		Trigger:     triggerFromRequest(r),
		EntityTypes: types,
		Changes:     changes,
	})
	if err != nil {
		// pull уже выполнен: клиент получает его результат вместе с ошибкой
		if result != nil && result.Pull != nil {
			h.partialError(w, id, err, api.BidirectionalResponse{
				Pull:           toPullResponse(result.Pull),
				TotalConflicts: result.TotalConflicts,
			})
			return
		}
		h.serviceError(w, "bidirectional", id, err)
		return
	}

	respond(w, h.logger, "bidirectional sync completed", api.BidirectionalResponse{
		Pull:           toPullResponse(result.Pull),
		Push:           toPushResponse(result.Push),
		TotalConflicts: result.TotalConflicts,
	})
}

// identity извлекает вызывающего из контекста (установлен AuthMiddleware)
func (h *SyncHandler) identity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	id, ok := GetIdentity(r.Context())
	if !ok || id.TenantID == "" {
		h.logger.Error("Identity not found in context")
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return Identity{}, false
	}
	return id, true
}

func (h *SyncHandler) typeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errForbiddenType) {
		writeError(w, h.logger, http.StatusForbidden, api.CodeForbidden, err.Error())
		return
	}
	writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
}

// serviceError переводит ошибки сервиса в HTTP статусы
func (h *SyncHandler) serviceError(w http.ResponseWriter, op string, id Identity, err error) {
	switch {
	case errors.Is(err, syncsvc.ErrUnknownEntityType),
		errors.Is(err, syncsvc.ErrInvalidRequest):
		writeError(w, h.logger, http.StatusBadRequest, api.CodeBadRequest, err.Error())
	default:
		h.logger.Error("Sync operation failed",
			"op", op,
			"tenant_id", id.TenantID,
			"user_id", id.UserID,
			"error", err)
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}

// partialError отвечает 500, сохраняя в Data уже выполненную часть операции
func (h *SyncHandler) partialError(w http.ResponseWriter, id Identity, err error, data api.BidirectionalResponse) {
	h.logger.Error("Bidirectional sync push phase failed",
		"tenant_id", id.TenantID,
		"user_id", id.UserID,
		"error", err)
	writeJSON(w, h.logger, http.StatusInternalServerError, api.ErrorResponse{
		Data:    data,
		Message: "push phase failed",
		Error:   api.CodeInternal,
	})
}

// authorizeTypes проверяет запрошенные типы против списка из токена.
// Без явного запроса pull ограничивается разрешенными типами.
func authorizeTypes(id Identity, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return id.EntityTypes, nil
	}
	for _, t := range requested {
		if err := validation.ValidateEntityType(t); err != nil {
			return nil, err
		}
		if !id.Allows(t) {
			return nil, fmt.Errorf("%w: %s", errForbiddenType, t)
		}
	}
	return requested, nil
}

func authorizeChanges(id Identity, changes []models.Change) error {
	for _, c := range changes {
		if !id.Allows(c.EntityType) {
			return fmt.Errorf("%w: %s", errForbiddenType, c.EntityType)
		}
	}
	return nil
}

func triggerFromRequest(r *http.Request) models.Trigger {
	switch t := models.Trigger(r.Header.Get(TriggerHeader)); t {
	case models.TriggerManual, models.TriggerAutomatic, models.TriggerScheduled:
		return t
	default:
		return models.TriggerManual
	}
}
