// Package retention периодически удаляет устаревшие успешные записи журнала.
package retention

import (
	"context"
	"log/slog"
	"time"
)

//go:generate moq -out cleaner_mock.go . Cleaner

// Cleaner deletes succeeded ledger entries older than a window.
// Implemented by *ledger.Ledger.
type Cleaner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Worker runs Cleanup on a fixed interval until its context is canceled
type Worker struct {
	cleaner  Cleaner
	logger   *slog.Logger
	window   time.Duration
	interval time.Duration
}

// NewWorker создает новый Worker
// window - возраст, старше которого успешные записи удаляются
// interval - период запуска очистки
func NewWorker(cleaner Cleaner, window, interval time.Duration, logger *slog.Logger) *Worker {
	return &Worker{
		cleaner:  cleaner,
		window:   window,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is canceled. The first pass runs immediately.
func (w *Worker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn("Retention worker disabled", "interval", w.interval)
		return
	}

	w.logger.Info("Retention worker started",
		"window", w.window,
		"interval", w.interval)

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)
		case <-ctx.Done():
			w.logger.Info("Retention worker stopped")
			return
		}
	}
}

// runOnce выполняет одну очистку; ошибка только логируется, следующий тик повторит попытку
func (w *Worker) runOnce(ctx context.Context) {
	deleted, err := w.cleaner.Cleanup(ctx, w.window)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("Ledger cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		w.logger.Debug("Ledger cleanup pass", "deleted", deleted)
	}
}
