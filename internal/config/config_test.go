package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/itinerary-planner/internal/config"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearLLMKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
app:
  name: itinerary-planner
  version: 0.2.0
  env: test
  port: 18080
  shutdown_timeout: 3s

logger:
  level: info
  format: json

llm:
  model: llama3-8b-8192
  timeout: 15s

redis:
  enabled: true
  addr: 127.0.0.1:6380
  ttl: 1h
`
	path := writeTempFile(t, "config.yaml", yaml)
	clearLLMKeyEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("APP_REDIS_DB", "2")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, 3*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "llama3-8b-8192", cfg.LLM.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.Enabled())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "127.0.0.1:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "dev", cfg.Logger.Env)
	assert.Equal(t, "itinerary-planner", cfg.Logger.ServiceName)
	assert.Equal(t, "0.2.0", cfg.Logger.ServiceVersion)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearLLMKeyEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "llama3-70b-8192", cfg.LLM.Model)
	assert.False(t, cfg.LLM.Enabled())
	assert.Nil(t, cfg.LLM.Temperature)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.Equal(t, "prod", cfg.Logger.Env)
}

func TestLoad_EnvOverridesKeysWithoutDefaults(t *testing.T) {
	clearLLMKeyEnv(t)
	t.Setenv("APP_LLM_TEMPERATURE", "0.5")
	t.Setenv("APP_LOGGER_DEBUG_FILE", "/tmp/itinerary-debug.log")
	t.Setenv("APP_LOGGER_OUTPUT_TARGET", "stderr")
	t.Setenv("APP_LOGGER_WITH_CALLER", "true")
	t.Setenv("APP_CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.5, *cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "/tmp/itinerary-debug.log", cfg.Logger.DebugFile)
	assert.Equal(t, "stderr", cfg.Logger.OutputTarget)
	assert.True(t, cfg.Logger.WithCaller)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.Origins)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	path := writeTempFile(t, "config.yaml", `
app:
  env: moon
  port: 70000
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLLMConfig_PlaceholderIsDisabled(t *testing.T) {
	assert.False(t, config.LLMConfig{APIKey: config.PlaceholderAPIKey}.Enabled())
	assert.False(t, config.LLMConfig{}.Enabled())
	assert.True(t, config.LLMConfig{APIKey: "gsk_real"}.Enabled())
}

func TestLoadDotEnv(t *testing.T) {
	path := writeTempFile(t, ".env", "ITINERARY_TEST_DOTENV=from-file\n")
	t.Setenv("ITINERARY_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("ITINERARY_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("ITINERARY_TEST_DOTENV"))
}

func TestLoadDotEnv_KeepsExistingValues(t *testing.T) {
	path := writeTempFile(t, ".env", "ITINERARY_TEST_KEEP=from-file\n")
	t.Setenv("ITINERARY_TEST_KEEP", "from-env")

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("ITINERARY_TEST_KEEP"))
}
