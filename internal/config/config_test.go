package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "elevatify.db", cfg.DatabasePath)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchInterval)
	assert.Equal(t, uint64(5), cfg.RetryAttempts)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":  "/tmp/shared.db",
		"watch_interval": "2s",
	})
	t.Setenv("ELEVATIFY_CONFIG", path)

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/shared.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Second, cfg.WatchInterval)
	assert.Equal(t, uint64(5), cfg.RetryAttempts, "untouched fields keep defaults")
}

func TestLoadConfig_EnvOverridesJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":  "/tmp/from-json.db",
		"retry_attempts": 2,
	})
	t.Setenv("ELEVATIFY_CONFIG", path)
	t.Setenv("ELEVATIFY_DB_PATH", "/tmp/from-env.db")
	t.Setenv("ELEVATIFY_WATCH_INTERVAL", "25ms")
	t.Setenv("ELEVATIFY_RETRY_ATTEMPTS", "9")

	cfg := LoadConfig()

	assert.Equal(t, "/tmp/from-env.db", cfg.DatabasePath)
	assert.Equal(t, 25*time.Millisecond, cfg.WatchInterval)
	assert.Equal(t, uint64(9), cfg.RetryAttempts)
}

func TestLoadConfig_IgnoresUnparseableEnv(t *testing.T) {
	t.Setenv("ELEVATIFY_WATCH_INTERVAL", "whenever")
	t.Setenv("ELEVATIFY_RETRY_ATTEMPTS", "-3")

	cfg := LoadConfig()

	assert.Equal(t, 500*time.Millisecond, cfg.WatchInterval)
	assert.Equal(t, uint64(5), cfg.RetryAttempts)
}
