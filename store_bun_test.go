package auth_test

import (
	"path/filepath"
	"testing"
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBunStore(t *testing.T, profile string) *auth.BunStore {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "sessions.db")
	store, err := auth.NewBunStore(dsn, profile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBunStoreRoundTrip(t *testing.T) {
	store := newTestBunStore(t, "default")

	_, ok := store.Load()
	assert.False(t, ok)

	session := makeSession(t, "a@b.co", auth.RoleAdmin, 1, time.Now().Add(time.Hour))
	require.NoError(t, store.Save(session))

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, session, loaded)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	assert.False(t, ok)
}

func TestBunStoreOverwritesSessionPerProfile(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "sessions.db")

	store, err := auth.NewBunStore(dsn, "work")
	require.NoError(t, err)
	defer store.Close()

	first := makeSession(t, "old@b.co", auth.RoleEstudiante, 1, time.Now().Add(time.Hour))
	second := makeSession(t, "new@b.co", auth.RoleProfesor, 2, time.Now().Add(time.Hour))

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "new@b.co", loaded.User.Email)

	// A different profile over the same database is independent.
	other, err := auth.NewBunStore(dsn, "personal")
	require.NoError(t, err)
	defer other.Close()

	_, ok = other.Load()
	assert.False(t, ok)
}

func TestBunStoreRejectsPartialSession(t *testing.T) {
	store := newTestBunStore(t, "default")
	assert.Error(t, store.Save(auth.Session{Token: "tok"}))
}
