package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// SessionStore persists the current session. Token and user are saved and
// cleared together; Load reports ok=false for absent or corrupt state.
type SessionStore interface {
	Save(session Session) error
	Load() (Session, bool)
	Clear() error
}

// Authenticator is the surface the transport and guard depend on.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, payload RegisterPayload) error
	Refresh(ctx context.Context) (Session, error)
	Logout()
	CurrentUser() *User
	IsAuthenticated() bool
	HasRole(role Role) bool
	HasAnyRole(roles ...Role) bool
}

// TokenSource exposes the current bearer token to the transport.
type TokenSource interface {
	Token() string
}

// Refresher is implemented by Service and consumed by Transport to run the
// single-flight token refresh on 401 responses.
type Refresher interface {
	TokenSource
	Refresh(ctx context.Context) (Session, error)
	Logout()
}

// Clock abstracts time.Now so expiry checks are testable.
type Clock func() time.Time

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

var sensitiveFields = []string{"password", "token", "authorization", "secret"}

// Redact masks values whose key names look credential-bearing before they hit
// log output.
func Redact(key string, value any) any {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return "[REDACTED]"
		}
	}
	return value
}
