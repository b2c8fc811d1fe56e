package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// SessionState tracks where the session is in its lifecycle.
type SessionState string

const (
	StateLoggedOut SessionState = "logged_out"
	StateLoggedIn  SessionState = "logged_in"
)

// ErrInvalidSessionTransition is returned when a requested state change is
// not allowed by the lifecycle graph.
var ErrInvalidSessionTransition = goerrors.New("invalid session state transition", goerrors.CategoryConflict).
	WithTextCode("INVALID_SESSION_STATE_TRANSITION").
	WithCode(goerrors.CodeConflict)

// sessionTransitions is the lifecycle graph:
// LoggedOut -> LoggedIn on login success; LoggedIn -> LoggedOut on logout,
// refresh-failure logout, or detected expiry. LoggedIn is re-entrant on a
// successful refresh (token rotates, state stays).
var sessionTransitions = map[SessionState][]SessionState{
	StateLoggedOut: {StateLoggedIn},
	StateLoggedIn:  {StateLoggedIn, StateLoggedOut},
}

func canTransition(from, to SessionState) bool {
	for _, allowed := range sessionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transition validates and applies a state change. Callers hold the Service
// session mutex.
func (s *Service) transition(to SessionState) error {
	if !canTransition(s.state, to) {
		return ErrInvalidSessionTransition
	}
	s.state = to
	return nil
}
