package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.Session.Secret)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, 5*time.Minute, cfg.Session.TTL)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	require.Equal(t, "ncfqr_session", cfg.Session.CookieName)
}

func TestLoadYAMLThenEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	yml := `
server:
  port: 7000
session:
  secret: from-file
  ttl: 10m
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, "from-file", cfg.Session.Secret)
	require.Equal(t, 10*time.Minute, cfg.Session.TTL)
	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SESSION_SECRET=dotenv-secret\n"), 0o600))
	t.Setenv("CONFIG_PATH", "")
	// t.Setenv restores the previous value; godotenv does not override set vars.
	t.Setenv("SESSION_SECRET", "")
	require.NoError(t, os.Unsetenv("SESSION_SECRET"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dotenv-secret", cfg.Session.Secret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("SESSION_SECRET", "")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("bad port", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("SESSION_SECRET", "x")
		t.Setenv("PORT", "http")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad ttl", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("SESSION_SECRET", "x")
		t.Setenv("PORT", "")
		t.Setenv("SESSION_TTL", "-1m")
		_, err := Load()
		require.Error(t, err)
	})
}
