package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for pgx/v5 driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrator интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
// Пустой path означает встроенные миграции.
type MigrationEngine func(path, databaseURL string) (Migrator, error)

// DefaultEngine реальная реализация для продакшена
func DefaultEngine(path, databaseURL string) (Migrator, error) {
	dbURL := migrateURL(databaseURL)
	if path != "" {
		return migrate.New("file://"+path, dbURL)
	}

	src, err := iofs.New(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, dbURL)
}

// Migrate применяет все миграции. ErrNoChange не считается ошибкой.
func Migrate(engine MigrationEngine, path, databaseURL string) (err error) {
	m, err := engine(path, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateURL переводит DSN на схему драйвера pgx/v5 из golang-migrate
func migrateURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}
