package auth_test

import (
	"testing"
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

// makeToken signs a backend-shaped JWT. The signature is irrelevant to the
// client (decoding is unverified) but keeps the three-segment structure real.
func makeToken(t *testing.T, email string, role auth.Role, userID int, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":     email,
		"rol":     string(role),
		"user_id": userID,
		"exp":     jwt.NewNumericDate(exp),
		"iat":     jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

// makeTokenWithClaims signs arbitrary claims for edge-case tests.
func makeTokenWithClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

func makeSession(t *testing.T, email string, role auth.Role, userID int, exp time.Time) auth.Session {
	t.Helper()

	return auth.Session{
		Token: makeToken(t, email, role, userID, exp),
		User: &auth.User{
			ID:     userID,
			Nombre: "Test User",
			Email:  email,
			Role:   role,
		},
	}
}
