package auth

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	s := Open(dir)

	ti, err := s.Get()
	require.NoError(t, err)
	assert.Nil(t, ti)
	assert.Empty(t, s.Token())

	require.NoError(t, s.Set("Bearer abc123", nil))
	ti, err = s.Get()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "abc123", ti.Token)
	assert.Equal(t, "file", ti.Source)
	assert.Equal(t, "abc123", s.Token())

	info, err := os.Stat(filepath.Join(dir, credKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Delete())
	require.NoError(t, s.Delete())
	assert.Empty(t, s.Token())
}

func TestStore_EnvWins(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.Set("stored", nil))

	t.Setenv(EnvVar, "bearer from-env")
	ti, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", ti.Token)
	assert.Equal(t, "env", ti.Source)
}

func TestStore_SetRejectsEmpty(t *testing.T) {
	s := Open(t.TempDir())
	assert.Error(t, s.Set("  ", nil))
}

func TestClaims(t *testing.T) {
	payload := `{"sub":"42"}`
	tok := "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"

	got, ok := Claims(tok)
	require.True(t, ok)
	assert.Equal(t, payload, got)

	_, ok = Claims("opaque-token")
	assert.False(t, ok)
	_, ok = Claims("a.!!!.c")
	assert.False(t, ok)
}
