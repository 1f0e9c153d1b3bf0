package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points CONFIG_PATH at a missing file and runs from an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 21600, cfg.Server.CacheMaxAge)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "tech-report-api", cfg.Logger.ServiceName)
	assert.Equal(t, "tech-report-api", cfg.Metrics.ServiceName)
	assert.Equal(t, "development", cfg.Tracer.AppEnv)
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "3000")
	t.Setenv("PROJECT", "httparchive")
	t.Setenv("DATABASE", "tech-report-api-prod")
	t.Setenv("ZAP_LOGGER_LEVEL", "DEBUG")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("CACHE_MAX_AGE", "60")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CDN_KEY_NAME", "reports-sign-key")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("REDIS_HOST", "10.0.0.3")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.CacheMaxAge)
	assert.Equal(t, 30*time.Second, cfg.Server.RateLimitWindow)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "db.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, "tech-report-api-prod", cfg.Postgres.Connection.DbName)
	assert.Equal(t, "httparchive", cfg.Postgres.Connection.ApplicationName)
	assert.Equal(t, "reports-sign-key", cfg.CDN.KeyName)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "10.0.0.3", cfg.Cache.Host)
	assert.Equal(t, 6379, cfg.Cache.Port)
}

func TestLoadExplicitPostgresDatabaseWins(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE", "from-database")
	t.Setenv("POSTGRES_DB", "from-postgres-db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-postgres-db", cfg.Postgres.Connection.DbName)
}

func TestLoadYAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
storage:
  backend: memory
  fixture_path: fixtures/techreport.json
metrics:
  enabled: true
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, "fixtures/techreport.json", cfg.Storage.FixturePath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	isolate(t)

	t.Run("missing database", func(t *testing.T) {
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "firestore")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive cache ttl", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("CACHE_TTL", "0s")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("ZAP_LOGGER_LEVEL", "chatty")
		_, err := Load()
		assert.Error(t, err)
	})
}
