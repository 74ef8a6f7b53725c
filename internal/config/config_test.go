package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"
format = "text"

[db]
host = "localhost"
port = 5432
user = "embark"
password = "secret"
database = "embark"
pool_size = 10

[web]
port = 9000

[game]
max_active_quests = 6
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.PoolSize)
	assert.Equal(t, ":9000", cfg.Web.Addr())
	assert.Equal(t, "*", cfg.Web.CORSOrigins)
	assert.Equal(t, 6, cfg.Game.MaxActiveQuests)
	assert.Equal(t, DefaultHistoryLimit, cfg.Game.HistoryDefaultLimit)
	assert.Equal(t, MaxHistoryLimit, cfg.Game.HistoryMaxLimit)
	assert.Equal(t, CacheSize, cfg.Game.LockCacheSize)
	assert.False(t, cfg.Spaces.Enabled())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[db\nhost = "))
	assert.Error(t, err)
}

func TestValidTier(t *testing.T) {
	tests := []struct {
		tier int
		want bool
	}{
		{0, false},
		{1, true},
		{6, true},
		{7, false},
	}
	for _, tt := range tests {
		if got := ValidTier(tt.tier); got != tt.want {
			t.Errorf("ValidTier(%d) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}
