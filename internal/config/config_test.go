package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, 5*time.Second, cfg.NotifyDelay)
	assert.False(t, cfg.Debug)
	assert.Equal(t, filepath.Join(home, ".todo"), cfg.AuthDir)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TODO_BASE_URL", "http://api.test:8080")
	t.Setenv("TODO_NOTIFY_DELAY", "2s")
	t.Setenv("TODO_DEBUG", "true")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "http://api.test:8080", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.NotifyDelay)
	assert.True(t, cfg.Debug)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	body := "base_url: http://file.test\ntheme: neon\nauth_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".todo.yaml"), []byte(body), 0o644))

	v := New()
	v.AddConfigPath(dir)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test", cfg.BaseURL)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, dir, cfg.AuthDir)
}

func TestLoad_RejectsNonPositiveDelay(t *testing.T) {
	t.Setenv("TODO_NOTIFY_DELAY", "0s")
	_, err := Load(New())
	assert.ErrorContains(t, err, KeyNotifyDelay)
}
