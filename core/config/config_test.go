package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8090", cfg.Server.RelayPort)
	assert.Equal(t, "artifacts", cfg.Storage.Bucket)
	assert.Equal(t, "models/", cfg.Storage.ModelPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Database.Driver)
	assert.Equal(t, "account.altvr.com", cfg.ContentPack.Host)
	assert.Equal(t, "http", cfg.ContentPack.Source)
	assert.Equal(t, 5000, cfg.Session.ResyncIntervalMs)
	assert.Equal(t, 8, cfg.Session.PreloadConcurrency)
	assert.Equal(t, "center-eye", cfg.Session.TrackerAttachPoint)
	assert.Equal(t, "head", cfg.Session.DefaultAttachPoint)
	assert.Equal(t, 0.1, cfg.Session.TrackerRadius)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	env := "SESSION_CONTENT_PACK=1150\nCONTENT_PACK_SOURCE=storage\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("SESSION_RESYNC_INTERVAL_MS", "250")
	t.Setenv("SERVER_API_KEY", "secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("SESSION_CONTENT_PACK")
		os.Unsetenv("CONTENT_PACK_SOURCE")
	})

	assert.Equal(t, "1150", cfg.Session.ContentPack)
	assert.Equal(t, "storage", cfg.ContentPack.Source)
	assert.Equal(t, 250, cfg.Session.ResyncIntervalMs)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}
