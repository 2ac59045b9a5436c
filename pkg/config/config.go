package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "GAMEVAULT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "GAMEVAULT_APP_ENV"
	EnvPort            = "GAMEVAULT_APP_PORT"
	EnvStorageBackend  = "GAMEVAULT_STORAGE_BACKEND"
	EnvStorageTTL      = "GAMEVAULT_STORAGE_SESSION_TTL"
	EnvDBDriver        = "GAMEVAULT_DB_DRIVER"
	EnvDBDSN           = "GAMEVAULT_DB_DSN"
	EnvRedisURL        = "GAMEVAULT_REDIS_URL"
	EnvRedisAddr       = "GAMEVAULT_REDIS_ADDR"
	EnvAutoMigrate     = "GAMEVAULT_AUTO_MIGRATE"
	EnvCatalogPageSize = "GAMEVAULT_CATALOG_PAGE_SIZE"
	EnvSweepInterval   = "GAMEVAULT_SWEEP_INTERVAL"
)

const (
	StorageBackendMemory   = "memory"
	StorageBackendRedis    = "redis"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Sweeper      SweeperConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GAMEVAULT_APP_ENV" required:"true"`
	Port         string `envconfig:"GAMEVAULT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GAMEVAULT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMEVAULT_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"GAMEVAULT_LOG_FORMAT"`

	CORSOrigins []string `envconfig:"GAMEVAULT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where session state is persisted.
type StorageConfig struct {
	Backend    string        `envconfig:"GAMEVAULT_STORAGE_BACKEND" default:"memory"`
	SessionTTL time.Duration `envconfig:"GAMEVAULT_STORAGE_SESSION_TTL" default:"720h"`
}

// NormalizedBackend returns the lower-cased backend name.
func (s StorageConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return StorageBackendMemory
	}
	return backend
}

type DBConfig struct {
	Driver string `envconfig:"GAMEVAULT_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"GAMEVAULT_DB_DSN" default:"file:gamevault.db?cache=shared"`

	MaxOpenConns    int           `envconfig:"GAMEVAULT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMEVAULT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMEVAULT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMEVAULT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"GAMEVAULT_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GAMEVAULT_REDIS_URL"`
	Address      string        `envconfig:"GAMEVAULT_REDIS_ADDR"`
	Password     string        `envconfig:"GAMEVAULT_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMEVAULT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMEVAULT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMEVAULT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMEVAULT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMEVAULT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMEVAULT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	PageSize int `envconfig:"GAMEVAULT_CATALOG_PAGE_SIZE" default:"12"`
}

// SweeperConfig drives the idle session sweep for SQL backends.
type SweeperConfig struct {
	Interval time.Duration `envconfig:"GAMEVAULT_SWEEP_INTERVAL" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GAMEVAULT_AUTO_MIGRATE" default:"false"`
}

func (c *Config) validate() error {
	switch c.Storage.NormalizedBackend() {
	case StorageBackendMemory:
		return nil
	case StorageBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis backend", EnvRedisURL, EnvRedisAddr)
		}
		return nil
	case StorageBackendSQLite, StorageBackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the %s backend", EnvDBDSN, c.Storage.NormalizedBackend())
		}
		c.DB.Driver = c.Storage.NormalizedBackend()
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}
}
