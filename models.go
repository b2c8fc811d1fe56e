package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Role is the user's role in the academic system
type Role = string

const (
	// RoleEstudiante can view their own grades
	RoleEstudiante Role = "estudiante"
	// RoleProfesor can manage grades and view rosters
	RoleProfesor Role = "profesor"
	// RoleAdmin can manage users and read the audit log
	RoleAdmin Role = "admin"
)

// User is the authenticated identity as published on the current-user stream.
// It is owned by the Service; readers get the value, never shared mutable state.
type User struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   Role   `json:"rol"`
}

// Session pairs the bearer token with its user. The two travel together:
// there is never a persisted token without a user or user without a token.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// IsZero reports whether the session carries no credentials.
func (s Session) IsZero() bool {
	return s.Token == "" || s.User == nil
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterPayload is the registration request body. Registration is a pure
// pass-through call; it never mutates the local session.
type RegisterPayload struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"rol"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nombre, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&r.Role,
			validation.Required,
			validation.In(RoleEstudiante, RoleProfesor, RoleAdmin),
		),
	)
}

// TokenResponse is the backend's login/refresh response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
}
