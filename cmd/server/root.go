package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/medsync/internal/config"
	"github.com/iudanet/medsync/internal/logging"
	"github.com/iudanet/medsync/internal/server/adapter"
	"github.com/iudanet/medsync/internal/server/storage"
	"github.com/iudanet/medsync/internal/server/storage/postgres"
	"github.com/iudanet/medsync/internal/server/storage/sqlite"
)

// app общее состояние команд, заполняется в PersistentPreRunE
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	logger     *slog.Logger
	logCloser  io.Closer
	configFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "medsync-server",
		Short: "MedSync - сервер офлайн-синхронизации медицинских записей",
		Long:  `MedSync принимает изменения офлайн-клиентов, сверяет версии сущностей,
фиксирует каждую попытку синхронизации в журнале и выдает клиентам
изменения, сделанные другими пользователями того же tenant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logCloser != nil {
				_ = a.logCloser.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to YAML config file")
	flags.String("database-driver", config.DriverSQLite, "storage driver: sqlite or postgres")
	flags.String("database-dsn", "medsync.db", "database file (sqlite) or connection URL (postgres)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or text")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newCleanupCmd(a),
		newTokenCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			// Версии не нужна конфигурация
			PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
			Run: func(*cobra.Command, []string) {
				printVersion()
			},
		},
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	a.logger = logger
	a.logCloser = closer
	slog.SetDefault(logger)

	return nil
}

// openStorage подключает хранилище выбранного драйвера и применяет миграции
func (a *app) openStorage(ctx context.Context) (storage.Storage, error) {
	switch a.cfg.Database.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, postgres.Options{
			DSN:            a.cfg.Database.DSN,
			MigrationsPath: a.cfg.Database.MigrationsPath,
		})
	default:
		return sqlite.New(ctx, a.cfg.Database.DSN)
	}
}

// newRegistry регистрирует табличный адаптер на каждый настроенный тип
func (a *app) newRegistry(store storage.EntityStorage) (*adapter.Registry, error) {
	registry, err := adapter.NewTableRegistry(store, a.cfg.Sync.EntityTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to build entity registry: %w", err)
	}
	return registry, nil
}
