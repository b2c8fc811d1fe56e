package auth_test

import (
	"encoding/base64"
	"testing"
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokenValid(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := makeToken(t, "prof@school.edu", auth.RoleProfesor, 7, exp)

	claims, err := auth.DecodeToken(raw)
	require.NoError(t, err)

	assert.Equal(t, "prof@school.edu", claims.SubjectEmail())
	assert.Equal(t, auth.RoleProfesor, claims.Role())
	assert.Equal(t, 7, claims.UserID)
	assert.WithinDuration(t, exp, claims.Expires(), time.Second)
}

func TestDecodeTokenSegmentCount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := auth.DecodeToken(tc.raw)
			assert.Nil(t, claims, "decode must never return a partial claims object")
			assert.True(t, auth.IsDecodeError(err))
		})
	}
}

func TestDecodeTokenGarbagePayload(t *testing.T) {
	// Three segments, but the payload is not base64url JSON.
	raw := "header.!!!not-base64!!!.signature"

	claims, err := auth.DecodeToken(raw)
	assert.Nil(t, claims)
	assert.True(t, auth.IsDecodeError(err))
}

func TestDecodeTokenNonJSONPayload(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte("plain text"))
	raw := "header." + payload + ".signature"

	claims, err := auth.DecodeToken(raw)
	assert.Nil(t, claims)
	assert.True(t, auth.IsDecodeError(err))
}

func TestDecodeTokenMissingRequiredClaims(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing subject", jwt.MapClaims{"rol": "admin", "exp": exp}},
		{"missing role", jwt.MapClaims{"sub": "a@b.co", "exp": exp}},
		{"missing expiry", jwt.MapClaims{"sub": "a@b.co", "rol": "admin"}},
		{"unknown role", jwt.MapClaims{"sub": "a@b.co", "rol": "superuser", "exp": exp}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := makeTokenWithClaims(t, tc.claims)
			claims, err := auth.DecodeToken(raw)
			assert.Nil(t, claims)
			assert.True(t, auth.IsDecodeError(err))
		})
	}
}

func TestDecodeTokenAcceptsBothRoleFieldNames(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("legacy role field", func(t *testing.T) {
		raw := makeTokenWithClaims(t, jwt.MapClaims{
			"sub": "x@y.co", "role": "admin", "exp": exp,
		})
		claims, err := auth.DecodeToken(raw)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, claims.Role())
	})

	t.Run("canonical rol wins over role", func(t *testing.T) {
		raw := makeTokenWithClaims(t, jwt.MapClaims{
			"sub": "x@y.co", "rol": "profesor", "role": "admin", "exp": exp,
		})
		claims, err := auth.DecodeToken(raw)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleProfesor, claims.Role())
	})
}

func TestTokenClaimsExpired(t *testing.T) {
	now := time.Now()

	fresh, err := auth.DecodeToken(makeToken(t, "a@b.co", auth.RoleAdmin, 1, now.Add(time.Hour)))
	require.NoError(t, err)
	assert.False(t, fresh.Expired(now))

	stale, err := auth.DecodeToken(makeToken(t, "a@b.co", auth.RoleAdmin, 1, now.Add(-time.Hour)))
	require.NoError(t, err)
	assert.True(t, stale.Expired(now))
}

func TestValidateTokenChecksExpiry(t *testing.T) {
	now := time.Now()

	claims, err := auth.ValidateToken(makeToken(t, "a@b.co", auth.RoleAdmin, 1, now.Add(time.Hour)), now)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role())

	claims, err = auth.ValidateToken(makeToken(t, "a@b.co", auth.RoleAdmin, 1, now.Add(-time.Minute)), now)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	// Decode failures surface as such, not as expiry.
	_, err = auth.ValidateToken("not-a-jwt", now)
	assert.True(t, auth.IsDecodeError(err))
}

func TestUserFromClaims(t *testing.T) {
	claims, err := auth.DecodeToken(makeToken(t, "est@school.edu", auth.RoleEstudiante, 3, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	user, err := claims.UserFromClaims()
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, "est@school.edu", user.Email)
	assert.Equal(t, auth.RoleEstudiante, user.Role)
}
