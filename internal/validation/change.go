package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/iudanet/medsync/internal/models"
)

// EntityTypePattern определяет допустимый формат имени типа сущности
// Только строчные латинские буквы, цифры и нижнее подчеркивание, первая буква
// Длина: 2-64 символа
var EntityTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{1,63}$`)

const (
	// MaxChangesPerPush ограничивает размер одного push
	MaxChangesPerPush = 1000
	// MaxDocumentSize максимальный размер payload одной сущности в байтах
	MaxDocumentSize = 1 << 20
	// minPassphraseLen минимальная длина passphrase локального кэша
	minPassphraseLen = 12
)

// ValidateEntityType проверяет имя типа сущности
func ValidateEntityType(entityType string) error {
	if entityType == "" {
		return fmt.Errorf("entity type cannot be empty")
	}

	if !EntityTypePattern.MatchString(entityType) {
		return fmt.Errorf("entity type %q must match %s", entityType, EntityTypePattern.String())
	}

	return nil
}

// ValidateSyncID проверяет, что sync id является UUID
func ValidateSyncID(syncID string) error {
	if syncID == "" {
		return fmt.Errorf("sync id cannot be empty")
	}

	if _, err := uuid.Parse(syncID); err != nil {
		return fmt.Errorf("sync id %q is not a valid UUID", syncID)
	}

	return nil
}

// ValidateChange проверяет одно клиентское изменение
func ValidateChange(change models.Change) error {
	if err := ValidateEntityType(change.EntityType); err != nil {
		return err
	}

	if err := ValidateSyncID(change.SyncID); err != nil {
		return err
	}

	switch change.Operation {
	case models.OperationCreate:
		if change.Version != 0 {
			return fmt.Errorf("create must carry version 0, got %d", change.Version)
		}
	case models.OperationUpdate, models.OperationDelete:
		if change.Version < 0 {
			return fmt.Errorf("version cannot be negative")
		}
	default:
		return fmt.Errorf("unsupported operation %q", change.Operation)
	}

	if size := change.Data.Size(); size > MaxDocumentSize {
		return fmt.Errorf("data size %d exceeds limit of %d bytes", size, MaxDocumentSize)
	}

	return nil
}

// ValidateChanges проверяет форму push-запроса целиком.
// Ошибки отдельных изменений не проверяются: они отражаются в результатах.
func ValidateChanges(changes []models.Change) error {
	if len(changes) == 0 {
		return fmt.Errorf("changes cannot be empty")
	}

	if len(changes) > MaxChangesPerPush {
		return fmt.Errorf("too many changes: %d, limit is %d", len(changes), MaxChangesPerPush)
	}

	return nil
}

// ValidateStrategy проверяет стратегию разрешения конфликта
func ValidateStrategy(strategy models.ResolutionStrategy) error {
	switch strategy {
	case models.StrategyClientWins, models.StrategyServerWins, models.StrategyMerge:
		return nil
	case "":
		return fmt.Errorf("resolution strategy cannot be empty")
	default:
		return fmt.Errorf("unsupported resolution strategy %q", strategy)
	}
}

// ValidatePassphrase проверяет минимальные требования к passphrase локального кэша
// Минимум 12 символов
func ValidatePassphrase(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase cannot be empty")
	}

	if len(passphrase) < minPassphraseLen {
		return fmt.Errorf("passphrase must be at least %d characters long", minPassphraseLen)
	}

	return nil
}
