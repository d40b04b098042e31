package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DB_DRIVER", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME_SECONDS", "DB_CONN_MAX_IDLE_SECONDS", "AUTO_MIGRATE",
		"MAX_PAGE_LIMIT", "CORS_ALLOWED_ORIGINS", "WRITE_RATE_PER_SECOND", "WRITE_RATE_BURST", "GIN_MODE",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:library.db")
	t.Setenv("MAX_PAGE_LIMIT", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("WRITE_RATE_PER_SECOND", "0.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file:library.db", cfg.DatabaseURL)
	assert.Equal(t, 50, cfg.MaxPageLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 0.5, cfg.WriteRatePerSecond)
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MAX_PAGE_LIMIT", "lots")
	t.Setenv("DB_MAX_OPEN_CONNS", "-3")
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("GIN_MODE", "loud")

	cfg := Load()
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nGIN_MODE=debug\n"), 0o600))
	t.Setenv("PORT", "6060")
	t.Setenv("GIN_MODE", "")
	require.NoError(t, os.Unsetenv("GIN_MODE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "6060", os.Getenv("PORT"))
	assert.Equal(t, "debug", os.Getenv("GIN_MODE"))
}
