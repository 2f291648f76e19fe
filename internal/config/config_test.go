package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so a developer's .env never leaks
// into the test.
func chdir(t *testing.T) {
    t.Helper()
    wd, err := os.Getwd()
    require.NoError(t, err)
    require.NoError(t, os.Chdir(t.TempDir()))
    t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
    chdir(t)
    t.Setenv("CONFIG_FILE", "")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "2506", cfg.Port)
    assert.Equal(t, "sqlite", cfg.DBDriver)
    assert.Equal(t, "films.db", cfg.DBDSN)
    assert.Equal(t, "img", cfg.ImageDir)
    assert.False(t, cfg.RabbitEnabled)
}

func TestLoadLayersFileThenEnv(t *testing.T) {
    chdir(t)
    path := filepath.Join(t.TempDir(), "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte("port: \"8080\"\ndb_dsn: catalog.db\nrabbitmq_enabled: true\n"), 0o644))
    t.Setenv("CONFIG_FILE", path)
    t.Setenv("APP_PORT", "9090")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "9090", cfg.Port, "env wins over file")
    assert.Equal(t, "catalog.db", cfg.DBDSN, "file wins over defaults")
    assert.True(t, cfg.RabbitEnabled)
    assert.Equal(t, "img", cfg.ImageDir, "unset keys keep defaults")
}

func TestLoadReadsDotEnv(t *testing.T) {
    chdir(t)
    require.NoError(t, os.WriteFile(".env", []byte("IMAGE_DIR=posters\n"), 0o644))
    t.Setenv("CONFIG_FILE", "")
    t.Setenv("IMAGE_DIR", "")
    // godotenv never overrides a variable that is already set, even to "".
    require.NoError(t, os.Unsetenv("IMAGE_DIR"))

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "posters", cfg.ImageDir)
    require.NoError(t, os.Unsetenv("IMAGE_DIR"))
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
    chdir(t)
    t.Setenv("CONFIG_FILE", "")
    t.Setenv("DB_DRIVER", "oracle")

    _, err := Load()
    assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
    chdir(t)
    t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

    _, err := Load()
    assert.Error(t, err)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 10*time.Second, cfg.TTL)
    assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    t.Setenv("CACHE_TTL", "bogus")

    cfg := LoadCacheConfig()
    assert.True(t, cfg.Enabled)
    assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
    assert.Equal(t, 30*time.Second, cfg.TTL, "unparsable values keep the default")
}
