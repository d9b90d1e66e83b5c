package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

const uniqueViolation = "23505"

// Storage represents PostgreSQL storage implementation
type Storage struct {
	pool *pgxpool.Pool
}

var _ storage.Storage = (*Storage)(nil)

// Options задает параметры подключения
type Options struct {
	Engine         MigrationEngine
	DSN            string
	MigrationsPath string
	SkipMigrations bool
}

// New connects to PostgreSQL and applies migrations
func New(ctx context.Context, opts Options) (*Storage, error) {
	if !opts.SkipMigrations {
		engine := opts.Engine
		if engine == nil {
			engine = DefaultEngine
		}
		if err := Migrate(engine, opts.MigrationsPath, opts.DSN); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	pool, err := pgxpool.New(ctx, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// Ping checks the database connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Pool returns the underlying pool
func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func nanos(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	n := t.UnixNano()
	return &n
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func timeFromNanos(n *int64) *time.Time {
	if n == nil {
		return nil
	}
	t := fromNanos(*n)
	return &t
}

// jsonArg передает документ как текст JSON; nil документ пишется как NULL
func jsonArg(d models.Document) any {
	if d == nil {
		return nil
	}
	v, err := d.Value()
	if err != nil || v == nil {
		return nil
	}
	return v
}
