package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tech-report-api/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variables to koanf paths. Variables not
// listed here are ignored.
var envMappings = map[string]string{
	"project":      "project",
	"database":     "database",
	"service_name": "service_name",
	"app_env":      "app_env",

	"port":                "server.port",
	"cache_max_age":       "server.cache_max_age",
	"read_timeout":        "server.read_timeout",
	"write_timeout":       "server.write_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",

	"storage_backend":      "storage.backend",
	"storage_fixture_path": "storage.fixture_path",

	"postgres_host":         "postgres.connection.host",
	"postgres_port":         "postgres.connection.port",
	"postgres_user":         "postgres.connection.user",
	"postgres_password":     "postgres.connection.password",
	"postgres_db":           "postgres.connection.dbname",
	"postgres_sslmode":      "postgres.connection.sslmode",
	"postgres_table":        "postgres.table",
	"postgres_auto_migrate": "postgres.auto_migrate",

	"zap_logger_level":      "logger.level",
	"logger_enable_tracing": "logger.enable_tracing",

	"tracer_enable_export": "tracer.enable_export",

	"metrics_enabled":                   "metrics.enabled",
	"metrics_address":                   "metrics.address",
	"metrics_namespace":                 "metrics.namespace",
	"metrics_enable_default_collectors": "metrics.enable_default_collectors",

	"cdn_url_prefix":    "cdn.url_prefix",
	"cdn_key_name":      "cdn.key_name",
	"cdn_base64_secret": "cdn.base64_secret",

	"cache_enabled":    "cache.enabled",
	"cache_ttl":        "cache.ttl",
	"cache_key_prefix": "cache.key_prefix",
	"redis_host":       "cache.host",
	"redis_port":       "cache.port",
	"redis_username":   "cache.username",
	"redis_password":   "cache.password",
	"redis_db":         "cache.db",
	"redis_tls":        "cache.tls.enabled",
}

// Load reads the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence, and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
