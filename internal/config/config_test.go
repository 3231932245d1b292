package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackclock/internal/storage"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, 1100, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.ConfirmReset)
	assert.True(t, cfg.Tray)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: SQLite
  path: /tmp/hack/state.db
window:
  fullscreen: true
  width: 100
confirm_reset: false
`), 0o644))
	t.Setenv("HACKCLOCK_TRAY", "false")

	cfg, err := Load(viper.New(), path, "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/hack/state.db", cfg.Storage.Path)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, 320, cfg.Window.Width, "clamped")
	assert.False(t, cfg.ConfirmReset)
	assert.False(t, cfg.Tray)

	options := cfg.StorageOptions(dir)
	assert.Equal(t, storage.BackendSQLite, options.Backend)
	assert.Equal(t, dir, options.Dir)
}

func TestLoad_SearchDir(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  backend: memory\n"), 0o644))

	cfg, err := Load(viper.New(), "", dir)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))

	_, err := Load(viper.New(), path, "")
	assert.ErrorContains(t, err, "read config")
}

func TestDecode_ReflectsLaterChanges(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	_, err := Load(v, "", "")
	require.NoError(t, err)

	v.Set("confirm_reset", false)
	v.Set("window.height", 10)
	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.False(t, cfg.ConfirmReset)
	assert.Equal(t, 240, cfg.Window.Height)
}
