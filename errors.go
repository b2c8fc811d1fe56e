package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeNetworkFailure   = "auth_network_failure"
	TextCodeRejected         = "auth_rejected"
	TextCodeTokenMalformed   = "auth_token_malformed"
	TextCodeTokenExpired     = "auth_token_expired"
	TextCodeMissingClaims    = "auth_token_missing_claims"
	TextCodeRoleDenied       = "auth_role_denied"
	TextCodeNotAuthenticated = "auth_not_authenticated"
)

// ErrNetwork is returned when a request could not reach the backend. It is
// never retried automatically outside the single 401-refresh-retry path.
var ErrNetwork = errors.New("backend unreachable", errors.CategoryOperation).
	WithTextCode(TextCodeNetworkFailure).
	WithCode(errors.CodeInternal)

// ErrAuthRejected is returned for bad credentials or an expired refresh.
var ErrAuthRejected = errors.New("authentication rejected", errors.CategoryAuth).
	WithTextCode(TextCodeRejected).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be decoded. Fatal to the
// current session: callers must log out rather than retry decoding.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryBadInput).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned when a decoded token's expiry is in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrMissingClaims is returned when a decodable token lacks required claims
// (subject, role, or expiry).
var ErrMissingClaims = errors.New("token is missing required claims", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingClaims).
	WithCode(errors.CodeBadRequest)

// ErrRoleDenied is returned when an authenticated user lacks the role a route
// requires. It redirects silently; no user-facing dialog.
var ErrRoleDenied = errors.New("role not allowed for route", errors.CategoryAuthz).
	WithTextCode(TextCodeRoleDenied).
	WithCode(errors.CodeForbidden)

// ErrNotAuthenticated is returned when an operation requires a session and
// none is present.
var ErrNotAuthenticated = errors.New("no authenticated session", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthenticated).
	WithCode(errors.CodeUnauthorized)

// IsDecodeError reports whether err came out of the token codec.
func IsDecodeError(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeTokenMalformed || rich.TextCode == TextCodeMissingClaims
}

// IsAuthRejected reports whether err represents rejected credentials.
func IsAuthRejected(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.Category == errors.CategoryAuth
}

// IsNetworkError reports whether err represents an unreachable backend.
func IsNetworkError(err error) bool {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeNetworkFailure
}
