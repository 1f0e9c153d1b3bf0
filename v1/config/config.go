package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/logger"
	"github.com/HTTPArchive/tech-report-apis/v1/metrics"
	"github.com/HTTPArchive/tech-report-apis/v1/postgres"
	"github.com/HTTPArchive/tech-report-apis/v1/redis"
	"github.com/HTTPArchive/tech-report-apis/v1/tracer"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the complete service configuration.
type Config struct {
	// Project and Database identify the deployment. Database is used as the
	// Postgres database name when none is configured, Project as the
	// application_name reported to the server.
	Project  string `koanf:"project"`
	Database string `koanf:"database"`

	ServiceName string `koanf:"service_name" validate:"required"`
	AppEnv      string `koanf:"app_env"`

	Server   ServerConfig    `koanf:"server"`
	Storage  StorageConfig   `koanf:"storage"`
	Postgres postgres.Config `koanf:"postgres"`
	Logger   logger.Config   `koanf:"logger"`
	Tracer   tracer.Config   `koanf:"tracer"`
	Metrics  metrics.Config  `koanf:"metrics"`
	CDN      cdn.Config      `koanf:"cdn"`
	Cache    redis.Config    `koanf:"cache"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	CacheMaxAge     int           `koanf:"cache_max_age" validate:"min=0"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`

	// RateLimitRequests per RateLimitWindow and client IP. Zero disables limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// StorageConfig selects the document store.
type StorageConfig struct {
	Backend string `koanf:"backend" validate:"oneof=postgres memory"`

	// FixturePath optionally seeds the memory backend from a JSON file.
	FixturePath string `koanf:"fixture_path"`
}

func defaultConfig() *Config {
	return &Config{
		ServiceName: "tech-report-api",
		AppEnv:      "development",
		Server: ServerConfig{
			Port:            8080,
			CacheMaxAge:     21600,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitWindow: time.Minute,
		},
		Storage: StorageConfig{
			Backend: BackendPostgres,
		},
		Postgres: postgres.Config{
			Connection: postgres.Connection{
				Host:    "localhost",
				Port:    "5432",
				User:    "postgres",
				SSLMode: "disable",
			},
			Table: postgres.DefaultTable,
		},
		Logger: logger.Config{
			Level: logger.Info,
		},
		Metrics: metrics.Config{
			Address:                 metrics.DefaultMetricsAddress,
			EnableDefaultCollectors: true,
			Namespace:               "techreport",
		},
		CDN: cdn.Config{
			URLPrefix: cdn.DefaultURLPrefix,
		},
		Cache: redis.Config{
			Host:      redis.DefaultHost,
			Port:      redis.DefaultPort,
			TTL:       redis.DefaultTTL,
			KeyPrefix: redis.DefaultKeyPrefix,
		},
	}
}

// applyDerived fills fields that default to other settings.
func (c *Config) applyDerived() {
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.ServiceName
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.ServiceName
	}
	if c.Tracer.AppEnv == "" {
		c.Tracer.AppEnv = c.AppEnv
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.ServiceName
	}
	if c.Postgres.Connection.DbName == "" {
		c.Postgres.Connection.DbName = c.Database
	}
	if c.Postgres.Connection.ApplicationName == "" {
		c.Postgres.Connection.ApplicationName = c.Project
	}
	c.Logger.Level = strings.ToLower(c.Logger.Level)
}

// Validate checks the struct tags and the cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Storage.Backend == BackendPostgres && c.Postgres.Connection.DbName == "" {
		return fmt.Errorf("postgres database name is required: set POSTGRES_DB or DATABASE")
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive when rate limiting is enabled")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive when the cache is enabled")
	}
	return nil
}
