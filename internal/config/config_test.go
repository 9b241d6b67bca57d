package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.True(t, cfg.API.ServerPaginates)
	assert.Equal(t, 15*time.Second, cfg.APITimeout())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealbadge.yaml")
	content := `
api:
  base_url: https://api.example.com
  timeout: 5s
  server_paginates: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.False(t, cfg.API.ServerPaginates)
	assert.Equal(t, 5*time.Second, cfg.APITimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("MEALBADGE_API_BASE_URL", "https://override.example.com")
	t.Setenv("MEALBADGE_API_SERVER_PAGINATES", "false")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.API.BaseURL)
	assert.False(t, cfg.API.ServerPaginates)
}

func TestInvalidTimeoutRejected(t *testing.T) {
	t.Setenv("MEALBADGE_API_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
