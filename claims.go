package auth

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded, UNTRUSTED view of a token payload. It is derived
// for UI decisions only; the backend's acceptance of the token is the sole
// authority on request validity.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id,omitempty"`
	Rol    Role   `json:"rol,omitempty"`
	Nombre string `json:"nombre,omitempty"`
}

// UnmarshalJSON accepts the role claim under both historical field names,
// "rol" (canonical) and "role", preferring the canonical one.
func (c *TokenClaims) UnmarshalJSON(data []byte) error {
	type plain TokenClaims
	aux := struct {
		*plain
		AltRole string `json:"role,omitempty"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if c.Rol == "" && aux.AltRole != "" {
		c.Rol = Role(aux.AltRole)
	}

	return nil
}

// SubjectEmail returns the subject claim, which the backend fills with the
// user's email.
func (c *TokenClaims) SubjectEmail() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role claim.
func (c *TokenClaims) Role() Role {
	return c.Rol
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// Expired reports whether the expiry claim is in the past relative to now.
func (c *TokenClaims) Expired(now time.Time) bool {
	exp := c.Expires()
	return exp.IsZero() || !exp.After(now)
}

// UserFromClaims derives a User when the backend login response omits one.
func (c *TokenClaims) UserFromClaims() (*User, error) {
	role, ok := ParseRole(string(c.Rol))
	if !ok {
		return nil, ErrMissingClaims
	}

	return &User{
		ID:     c.UserID,
		Nombre: c.Nombre,
		Email:  c.SubjectEmail(),
		Role:   role,
	}, nil
}
