package auth_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := auth.DefaultConfig()

	assert.Equal(t, "/auth/login", cfg.Endpoints.Login)
	assert.Equal(t, auth.ScopeFile, cfg.Scope)
	assert.Equal(t, []auth.Role{auth.RoleAdmin}, cfg.Routes["usuarios"])
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.yaml")
	content := `
base_url: https://backend.school.edu
scope: memory
timeout_seconds: 5
routes:
  calificaciones:
    - profesor
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := auth.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://backend.school.edu", cfg.BaseURL)
	assert.Equal(t, auth.ScopeMemory, cfg.Scope)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []auth.Role{auth.RoleProfesor}, cfg.Routes["calificaciones"])
	// Untouched fields keep their defaults.
	assert.Equal(t, "/auth/refresh", cfg.Endpoints.Refresh)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: ''\n"), 0o600))

	_, err := auth.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := auth.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenStorePerScope(t *testing.T) {
	dir := t.TempDir()

	cfg := auth.DefaultConfig()
	cfg.Scope = auth.ScopeMemory
	store, err := cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &auth.MemoryStore{}, store)

	cfg.Scope = auth.ScopeFile
	cfg.SessionPath = filepath.Join(dir, "session.json")
	store, err = cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &auth.FileStore{}, store)

	cfg.Scope = auth.ScopeSQLite
	cfg.SessionPath = "file:" + filepath.Join(dir, "sessions.db")
	store, err = cfg.OpenStore()
	require.NoError(t, err)
	assert.IsType(t, &auth.BunStore{}, store)
}
