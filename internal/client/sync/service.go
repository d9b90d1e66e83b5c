package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/iudanet/medsync/internal/client/api"
	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/crypto"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

//go:generate moq -out service_mock.go . Service

const (
	opCreate = string(models.OperationCreate)
	opUpdate = string(models.OperationUpdate)
	opDelete = string(models.OperationDelete)

	// maxPullPages ограничивает догрузку страниц за один вызов Sync
	maxPullPages = 1000
)

var (
	// ErrLocked кэш не разблокирован парольной фразой
	ErrLocked = errors.New("local cache is locked")

	ErrInvalidOperation = errors.New("invalid operation")
	ErrDataRequired     = errors.New("data is required for create and update")
)

// Service определяет интерфейс клиентской синхронизации
type Service interface {
	// Unlock выводит ключ кэша из парольной фразы.
	// При первом запуске создает соль и проверочный хеш.
	Unlock(ctx context.Context, passphrase string) error

	// Queue ставит локальное изменение в очередь отправки
	Queue(ctx context.Context, req QueueRequest) (*storage.PendingChange, error)

	// Sync отправляет очередь и применяет изменения сервера
	Sync(ctx context.Context, trigger models.Trigger) (*SyncResult, error)

	// Conflicts возвращает локальные неразрешенные конфликты
	Conflicts(ctx context.Context) ([]*Conflict, error)

	// RefreshConflicts загружает конфликты пользователя с сервера
	RefreshConflicts(ctx context.Context) (int, error)

	// Resolve отправляет решение по конфликту
	Resolve(ctx context.Context, conflictID string, strategy models.ResolutionStrategy, data models.Document) (*api.ResolveResult, error)

	Status(ctx context.Context) (*Status, error)
	Show(ctx context.Context, entityType, syncID string) (*Record, error)
	List(ctx context.Context, entityType string) ([]*Record, error)
	History(ctx context.Context, entityType, syncID string) (*api.EntityHistory, error)
}

// Store локальное хранилище клиента
type Store interface {
	storage.OutboxStorage
	storage.CacheStorage
	storage.ConflictStorage
	storage.MetadataStorage
}

// QueueRequest локальное изменение сущности.
// Пустой SyncID для create генерируется автоматически.
type QueueRequest struct {
	Data       models.Document
	EntityType string
	SyncID     string
	Operation  models.Operation
}

// SyncResult contains sync operation results
type SyncResult struct {
	SessionID  string
	Errors     []string // ошибки отдельных изменений, оставленных в очереди
	Pushed     int      // отправлено изменений
	Succeeded  int      // принято сервером
	Conflicts  int      // отклонено с конфликтом
	Failed     int      // ошибка, изменение осталось в очереди
	Dropped    int      // схлопнуто локально без отправки
	Pulled     int      // получено с сервера
	Applied    int      // записано в кэш
	PulledPage int      // количество запросов pull
}

// Status сводка локального состояния
type Status struct {
	LastSync  *time.Time
	Pending   int
	Conflicts int
	Cached    int
}

// Record расшифрованная запись кэша
type Record struct {
	UpdatedAt  time.Time
	Data       models.Document
	EntityType string
	SyncID     string
	Version    int64
	Pending    int
	Deleted    bool
}

// Conflict расшифрованный локальный конфликт
type Conflict struct {
	DetectedAt    time.Time
	ClientData    models.Document
	ServerData    models.Document
	ID            string
	EntityType    string
	SyncID        string
	Operation     string
	ConflictType  string
	ServerVersion int64
}

type service struct {
	apiClient httpClient.ClientAPI
	store     Store
	logger    *slog.Logger
	now       func() time.Time
	key       []byte
}

// NewService creates a new sync service
func NewService(apiClient httpClient.ClientAPI, store Store, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Unlock derives the cache key and checks it against the stored verifier
func (s *service) Unlock(ctx context.Context, passphrase string) error {
	info, err := s.store.GetKeyInfo(ctx)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return s.initKey(ctx, passphrase)
	}
	if err != nil {
		return fmt.Errorf("failed to get key info: %w", err)
	}

	key, err := crypto.DeriveKey(passphrase, info.Salt)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	if err := crypto.VerifyKey(key, info.Verifier); err != nil {
		return err
	}

	s.key = key
	return nil
}

func (s *service) initKey(ctx context.Context, passphrase string) error {
	if err := validation.ValidatePassphrase(passphrase); err != nil {
		return fmt.Errorf("invalid passphrase: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	verifier, err := crypto.KeyVerifier(key)
	if err != nil {
		return err
	}

	if err := s.store.SaveKeyInfo(ctx, &storage.KeyInfo{Salt: salt, Verifier: verifier}); err != nil {
		return fmt.Errorf("failed to save key info: %w", err)
	}

	s.logger.Info("Initialized local cache encryption key")
	s.key = key
	return nil
}

// Queue validates and enqueues a local change
func (s *service) Queue(ctx context.Context, req QueueRequest) (*storage.PendingChange, error) {
	if s.key == nil {
		return nil, ErrLocked
	}

	switch req.Operation {
	case models.OperationCreate:
		if req.SyncID == "" {
			req.SyncID = uuid.NewString()
		}
	case models.OperationUpdate, models.OperationDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, req.Operation)
	}

	if req.Operation == models.OperationDelete {
		req.Data = nil
	} else if req.Data == nil {
		return nil, ErrDataRequired
	}

	if err := validation.ValidateChange(models.Change{
		EntityType: req.EntityType,
		SyncID:     req.SyncID,
		Operation:  req.Operation,
		Data:       req.Data,
	}); err != nil {
		return nil, err
	}

	sealed, err := crypto.SealJSON(req.Data, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	change := &storage.PendingChange{
		QueuedAt:   s.now(),
		Data:       sealed,
		EntityType: req.EntityType,
		SyncID:     req.SyncID,
		Operation:  string(req.Operation),
	}
	if err := s.store.Enqueue(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to enqueue change: %w", err)
	}

	s.logger.Debug("Change queued",
		"seq", change.Seq,
		"entity_type", change.EntityType,
		"sync_id", change.SyncID,
		"operation", change.Operation)

	return change, nil
}
