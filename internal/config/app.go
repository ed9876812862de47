package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saori/pkg/log"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	DefaultCacheTTL = 60 * time.Second
)

type AppConfig struct {
	RuntimePath string `env:"SAORI_RUNTIME_PATH" envDefault:".saori"`
	ListenAddr  string `env:"SAORI_LISTEN_ADDR" envDefault:":8080"`

	// Storage
	StoreDriver string `env:"SAORI_STORE_DRIVER" envDefault:"sqlite"`
	PostgresDSN string `env:"SAORI_POSTGRES_DSN" redact:"true"`

	// Response cache
	CacheBackend string        `env:"SAORI_CACHE_BACKEND" envDefault:"memory"`
	RedisURL     string        `env:"SAORI_REDIS_URL" redact:"true"`
	CacheTTL     time.Duration `env:"SAORI_CACHE_TTL" envDefault:"60s"`

	CompletionTimeout time.Duration `env:"SAORI_COMPLETION_TIMEOUT" envDefault:"12s"`
	UserIsolation     bool          `env:"SAORI_USER_ISOLATION" envDefault:"true"`

	// Transport Flags
	EnableTelegram bool `env:"SAORI_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"SAORI_ENABLE_CLI" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	if c.CacheTTL <= 0 {
		log.FromCtx(ctx).Warn().Dur("ttl", c.CacheTTL).Msg("cache ttl must be positive, using default")
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "saori.db")
}

// GetPersonaPath points to an optional file overriding the built-in persona.
func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "PERSONA.md")
}

func (c AppConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c AppConfig) GetCompletionTimeout() time.Duration {
	return c.CompletionTimeout
}

func (c AppConfig) IsUserIsolation() bool {
	return c.UserIsolation
}
