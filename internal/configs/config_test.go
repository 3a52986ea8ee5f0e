package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadFrom_DevDefaultsAndExpansion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev.yml", `
api:
  base_url: "http://${TEST_API_HOST}/api"
  timeout: 3s
storage:
  driver: memory
redis:
  redis_password: "${TEST_REDIS_PASSWORD}"
`)
	t.Setenv("TEST_API_HOST", "example.test:9000")
	t.Setenv("TEST_REDIS_PASSWORD", "hunter2")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := LoadFrom(dir, "development")
	require.NoError(t, err)

	assert.Equal(t, "http://example.test:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, "povertyline:client", cfg.Redis.Prefix)
	assert.Equal(t, "5005", cfg.MockAPI.Port)
	assert.Equal(t, time.Hour, cfg.MockAPI.TokenTTL)
	assert.Equal(t, "587", cfg.Mail.SMTPPort)
	assert.Equal(t, "no-reply@povertyline.org", cfg.Mail.SenderEmail)
}

func TestLoadFrom_ProductionFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prod.yml", `
api:
  base_url: "https://api.example.org/api"
storage:
  driver: redis
redis:
  redis_addr: "cache:6379"
`)
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("REDIS_ADDR", "override:6380")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_RPS", "2.5")

	cfg, err := LoadFrom(dir, "production")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/api", cfg.API.BaseURL)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "override:6380", cfg.Redis.Addr)
	assert.Equal(t, 2.5, cfg.API.RequestsPerSecond)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(t.TempDir(), "development")
	assert.Error(t, err)
}
