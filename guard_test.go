package auth_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedService(t *testing.T, session *auth.Session) (*auth.Service, *int32) {
	t.Helper()

	var backendHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&backendHits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	store := auth.NewMemoryStore()
	if session != nil {
		require.NoError(t, store.Save(*session))
	}

	return auth.NewService(testConfig(server.URL), store), &backendHits
}

func defaultGuard(service *auth.Service) *auth.Guard {
	cfg := auth.DefaultConfig()
	return auth.NewGuard(service, cfg.Routes, cfg.LoginRoute, cfg.HomeRoute)
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	service, hits := guardedService(t, nil)
	guard := defaultGuard(service)

	decision := guard.Decide("notas")

	assert.False(t, decision.Allowed)
	assert.Equal(t, "login", decision.RedirectTo)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits), "guard decisions never call the backend")
}

func TestGuardRedirectsWrongRoleToHome(t *testing.T) {
	session := makeSession(t, "est@school.edu", auth.RoleEstudiante, 3, time.Now().Add(time.Hour))
	service, hits := guardedService(t, &session)
	guard := defaultGuard(service)

	// usuarios requires admin; the current user is estudiante.
	decision := guard.Decide("usuarios")

	assert.False(t, decision.Allowed)
	assert.Equal(t, "home", decision.RedirectTo)
	assert.ErrorIs(t, decision.Reason, auth.ErrRoleDenied)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	session := makeSession(t, "prof@school.edu", auth.RoleProfesor, 2, time.Now().Add(time.Hour))
	service, _ := guardedService(t, &session)
	guard := defaultGuard(service)

	assert.True(t, guard.Decide("notas").Allowed)
	assert.True(t, guard.Decide("estudiantes").Allowed)
	assert.False(t, guard.Decide("usuarios").Allowed)
}

func TestGuardUnrestrictedRouteOnlyNeedsAuthentication(t *testing.T) {
	session := makeSession(t, "est@school.edu", auth.RoleEstudiante, 3, time.Now().Add(time.Hour))
	service, _ := guardedService(t, &session)
	guard := defaultGuard(service)

	assert.True(t, guard.Decide("home").Allowed)
	// Routes absent from the table behave the same.
	assert.True(t, guard.Decide("unlisted").Allowed)
}

func TestGuardReadsStateFreshPerNavigation(t *testing.T) {
	session := makeSession(t, "admin@school.edu", auth.RoleAdmin, 1, time.Now().Add(time.Hour))
	service, _ := guardedService(t, &session)
	guard := defaultGuard(service)

	require.True(t, guard.Decide("usuarios").Allowed)

	service.Logout()

	decision := guard.Decide("usuarios")
	assert.False(t, decision.Allowed, "a cached decision must not outlive the session")
	assert.Equal(t, "login", decision.RedirectTo)
}

func TestGuardDeniesExpiredSession(t *testing.T) {
	now := time.Now()
	session := makeSession(t, "admin@school.edu", auth.RoleAdmin, 1, now.Add(time.Minute))
	service, _ := guardedService(t, &session)
	service.WithClock(func() time.Time { return now.Add(time.Hour) })

	guard := defaultGuard(service)

	decision := guard.Decide("usuarios")
	assert.False(t, decision.Allowed)
	assert.Equal(t, "login", decision.RedirectTo)
}

func TestGuardCanEnter(t *testing.T) {
	session := makeSession(t, "prof@school.edu", auth.RoleProfesor, 2, time.Now().Add(time.Hour))
	service, _ := guardedService(t, &session)
	guard := defaultGuard(service)

	assert.True(t, guard.CanEnter(auth.RoleProfesor, auth.RoleAdmin))
	assert.False(t, guard.CanEnter(auth.RoleAdmin))
	assert.True(t, guard.CanEnter(), "empty requirement only demands authentication")

	service.Logout()
	assert.False(t, guard.CanEnter())
}
