package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://backend:8080/")
	t.Setenv("FLUENTBIT_ENABLED", "false")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "marketplace-service", cfg.AppName)
	assert.Equal(t, "8086", cfg.Rest.PORT)
	assert.Equal(t, "http://backend:8080", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
	assert.False(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "debug", cfg.StdoutLogger.Level)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "BACKEND_API_URL=http://api.local\n" +
		"PORT=9000\n" +
		"CORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n" +
		"REDIS_ADDR=redis:6379\n" +
		"REDIS_DB=2\n" +
		"BACKEND_TIMEOUT_SECONDS=oops\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	for _, key := range []string{"BACKEND_API_URL", "PORT", "CORS_ALLOWED_ORIGINS", "REDIS_ADDR", "REDIS_DB", "BACKEND_TIMEOUT_SECONDS"} {
		unsetForTest(t, key)
	}

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Rest.PORT)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CorsAllowedOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}

func TestLoadConfig_RequiresBackend(t *testing.T) {
	unsetForTest(t, "BACKEND_API_URL")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadConfig_FluentWithoutHostIsDisabled(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://backend")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, cfg.FluentBit.Enabled)
}

// unsetForTest снимает переменную и восстанавливает ее после теста.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
