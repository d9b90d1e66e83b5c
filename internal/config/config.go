// Package config загружает конфигурацию сервера из файла, окружения и флагов.
//
// Приоритет (от высшего): флаги командной строки, переменные окружения
// MEDSYNC_*, файл конфигурации (YAML), значения по умолчанию.
// Файл .env в рабочем каталоге загружается в окружение, если существует.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/medsync/internal/models"
)

// EnvPrefix префикс переменных окружения: server.address -> MEDSYNC_SERVER_ADDRESS
const EnvPrefix = "MEDSYNC"

// Поддерживаемые драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// minSecretLen минимальная длина секрета подписи JWT
const minSecretLen = 16

// Config конфигурация сервера синхронизации
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Retention RetentionConfig `mapstructure:"retention"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig параметры HTTP сервера
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig параметры хранилища
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	DSN            string `mapstructure:"dsn"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// JWTConfig параметры проверки токенов
type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// LogConfig параметры логирования
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// TracingConfig параметры экспорта трассировки
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	Enabled     bool    `mapstructure:"enabled"`
}

// SyncConfig параметры синхронизации
type SyncConfig struct {
	EntityTypes []string `mapstructure:"entity_types"`
	PageSize    int      `mapstructure:"page_size"`
}

// RetentionConfig параметры очистки журнала
type RetentionConfig struct {
	Window   time.Duration `mapstructure:"window"`
	Interval time.Duration `mapstructure:"interval"`
}

// RateLimitConfig параметры ограничения частоты запросов
type RateLimitConfig struct {
	Window   time.Duration `mapstructure:"window"`
	Requests int           `mapstructure:"requests"`
}

// SetDefaults регистрирует значения по умолчанию.
// Каждый ключ должен иметь значение по умолчанию: иначе viper не увидит его в окружении.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "medsync.db")
	v.SetDefault("database.migrations_path", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.access_token_ttl", 15*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.service_name", "medsync")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("sync.page_size", 100)
	v.SetDefault("sync.entity_types", models.DefaultEntityTypes())

	v.SetDefault("retention.window", 720*time.Hour)
	v.SetDefault("retention.interval", time.Hour)

	v.SetDefault("ratelimit.requests", 120)
	v.SetDefault("ratelimit.window", time.Minute)
}

// New создает viper с умолчаниями и привязкой к окружению MEDSYNC_*
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags связывает флаги команды с ключами конфигурации.
// Первый дефис в имени флага отделяет секцию, остальные соответствуют
// подчеркиваниям: --sync-page-size -> sync.page_size.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key := flagKey(f.Name)
		// Флаги без соответствующего ключа (например --config) пропускаются
		if !v.IsSet(key) {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

func flagKey(name string) string {
	section, rest, ok := strings.Cut(name, "-")
	if !ok {
		return name
	}
	return section + "." + strings.ReplaceAll(rest, "-", "_")
}

// LoadDotEnv загружает переменные из .env файлов. Отсутствие файла не ошибка.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load читает необязательный файл конфигурации и собирает Config
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if len(c.JWT.Secret) < minSecretLen {
		errs = append(errs, fmt.Errorf("jwt secret must be at least %d characters", minSecretLen))
	}
	if c.Sync.PageSize <= 0 {
		errs = append(errs, errors.New("sync page size must be positive"))
	}
	if len(c.Sync.EntityTypes) == 0 {
		errs = append(errs, errors.New("at least one entity type must be configured"))
	}
	if c.RateLimit.Requests < 0 || (c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("tracing sample ratio must be within [0, 1]"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
