package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devlog/pkg/store"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	for _, k := range []string{"DEVLOG_PATH", "DEVLOG_STORAGE", "DEVLOG_REDIS_URL", "DEVLOG_REDIS_PREFIX", "DEVLOG_LOG_LEVEL", "DEVLOG_LOG_FILE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".devlog"), cfg.BasePath())
	assert.Equal(t, store.BackendDisk, cfg.Backend())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL())
	assert.Equal(t, store.DefaultRedisPrefix, cfg.RedisPrefix())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "devlog.log", cfg.Log.File)
	assert.Empty(t, cfg.File)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("DEVLOG_PATH", dir)
	t.Setenv("DEVLOG_STORAGE", "sqlite")
	t.Setenv("DEVLOG_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("DEVLOG_LOG_LEVEL", "debug")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Path)
	assert.Equal(t, store.BackendSQLite, cfg.Storage)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	yaml := "path: /srv/devlog\nstorage: redis\nredis:\n  prefix: \"me:\"\nlog:\n  file: \"-\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devlog.yaml"), []byte(yaml), 0o644))
	t.Setenv(EnvConfigPath, dir)

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/srv/devlog", cfg.Path)
	assert.Equal(t, store.BackendRedis, cfg.Storage)
	assert.Equal(t, "me:", cfg.Redis.Prefix)
	assert.Equal(t, "-", cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, ".devlog.yaml"), cfg.File)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	isolate(t)
	t.Setenv("DEVLOG_STORAGE", "mongo")

	_, err := Load(New())
	assert.Error(t, err)
}

func TestLoadExplicitSetWins(t *testing.T) {
	isolate(t)
	t.Setenv("DEVLOG_STORAGE", "sqlite")

	v := New()
	v.Set(KeyStorage, "memory")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, store.BackendMemory, cfg.Storage)
}
