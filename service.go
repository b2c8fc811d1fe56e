package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

var _ Authenticator = (*Service)(nil)
var _ Refresher = (*Service)(nil)

// Service orchestrates auth calls against the backend, persists results via
// the SessionStore, and is the single writer of the current-user stream.
type Service struct {
	client  *http.Client
	baseURL string
	cfg     *Config
	store   SessionStore
	stream  *userStream
	logger  Logger
	sink    ActivitySink
	clock   Clock

	mu      sync.Mutex
	session Session
	state   SessionState
}

// NewService returns a Service backed by store. The zero store session, if
// any, is restored immediately: a persisted session with a decodable,
// unexpired token comes back as LoggedIn; anything else is cleared.
func NewService(cfg *Config, store SessionStore) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Service{
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cfg:     cfg,
		store:   store,
		stream:  newUserStream(),
		logger:  defLogger{},
		sink:    noopActivitySink{},
		clock:   time.Now,
		state:   StateLoggedOut,
	}

	s.restore()

	return s
}

// WithLogger overrides the default logger.
func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Service) WithActivitySink(sink ActivitySink) *Service {
	s.sink = normalizeActivitySink(sink)
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *Service) WithClock(clock Clock) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// WithHTTPClient overrides the HTTP client used for auth endpoints. The
// client must NOT be built on this service's Transport; auth calls carry no
// bearer credential and must not recurse into the refresh path.
func (s *Service) WithHTTPClient(client *http.Client) *Service {
	if client != nil {
		s.client = client
	}
	return s
}

// restore rehydrates the session persisted by a previous run.
func (s *Service) restore() {
	session, ok := s.store.Load()
	if !ok {
		return
	}

	if _, err := ValidateToken(session.Token, s.clock()); err != nil {
		s.logger.Debug("discarding stale persisted session: %v", err)
		_ = s.store.Clear()
		return
	}

	s.mu.Lock()
	s.session = session
	s.state = StateLoggedIn
	s.mu.Unlock()

	s.stream.publish(session.User)
}

// Login authenticates against the backend. On success the session is
// persisted and the new user published; on any failure nothing is mutated.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	payload := LoginPayload{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return Session{}, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	var body TokenResponse
	status, err := s.postJSON(ctx, s.cfg.Endpoints.Login, payload, &body)
	if err != nil {
		s.emit(ctx, ActivityEventLoginFailure, email, map[string]any{"error": err.Error()})
		return Session{}, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		s.emit(ctx, ActivityEventLoginFailure, email, map[string]any{"status": status})
		return Session{}, ErrAuthRejected
	}

	if status < 200 || status >= 300 {
		s.emit(ctx, ActivityEventLoginFailure, email, map[string]any{"status": status})
		return Session{}, goerrors.New(fmt.Sprintf("login failed with status %d", status), goerrors.CategoryOperation)
	}

	session, err := s.sessionFromTokenResponse(body)
	if err != nil {
		s.emit(ctx, ActivityEventLoginFailure, email, map[string]any{"error": err.Error()})
		return Session{}, err
	}

	if err := s.apply(session, StateLoggedIn); err != nil {
		return Session{}, err
	}

	s.emit(ctx, ActivityEventLoginSuccess, session.User.Email, map[string]any{"role": session.User.Role})

	return session, nil
}

// Register is a pure pass-through call; it never mutates the local session.
func (s *Service) Register(ctx context.Context, payload RegisterPayload) error {
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	status, err := s.postJSON(ctx, s.cfg.Endpoints.Register, payload, nil)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		if status == http.StatusConflict || status == http.StatusBadRequest {
			return goerrors.New(fmt.Sprintf("registration rejected with status %d", status), goerrors.CategoryValidation)
		}
		return goerrors.New(fmt.Sprintf("registration failed with status %d", status), goerrors.CategoryOperation)
	}

	s.emit(ctx, ActivityEventRegister, payload.Email, nil)

	return nil
}

// Refresh rotates the bearer token. The call carries no body; any refresh
// credential lives server-side (external contract). On success the session is
// persisted and published; on failure the current session is left untouched.
// A result that lands after logout is discarded rather than resurrecting the
// cleared session.
func (s *Service) Refresh(ctx context.Context) (Session, error) {
	var body TokenResponse
	status, err := s.postJSON(ctx, s.cfg.Endpoints.Refresh, struct{}{}, &body)
	if err != nil {
		s.emit(ctx, ActivityEventRefreshFailure, s.currentEmail(), map[string]any{"error": err.Error()})
		return Session{}, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		s.emit(ctx, ActivityEventRefreshFailure, s.currentEmail(), map[string]any{"status": status})
		return Session{}, ErrAuthRejected
	}

	if status < 200 || status >= 300 {
		s.emit(ctx, ActivityEventRefreshFailure, s.currentEmail(), map[string]any{"status": status})
		return Session{}, goerrors.New(fmt.Sprintf("refresh failed with status %d", status), goerrors.CategoryOperation)
	}

	session, err := s.sessionFromTokenResponse(body)
	if err != nil {
		s.emit(ctx, ActivityEventRefreshFailure, s.currentEmail(), map[string]any{"error": err.Error()})
		return Session{}, err
	}

	// Check-and-apply under one lock: a logout landing between the staleness
	// check and the persist must not be overwritten.
	s.mu.Lock()
	if s.state != StateLoggedIn {
		s.mu.Unlock()
		s.logger.Debug("discarding refresh result that arrived after logout")
		return Session{}, ErrNotAuthenticated
	}
	if err := s.applyLocked(session, StateLoggedIn); err != nil {
		s.mu.Unlock()
		return Session{}, err
	}
	s.mu.Unlock()

	s.emit(ctx, ActivityEventRefreshSuccess, session.User.Email, nil)

	return session, nil
}

// Logout clears the store and publishes "no user". It is local only and
// always succeeds, regardless of prior state.
func (s *Service) Logout() {
	s.mu.Lock()
	email := ""
	if s.session.User != nil {
		email = s.session.User.Email
	}
	s.session = Session{}
	s.state = StateLoggedOut
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("session store clear error: %v", err)
	}

	s.stream.publish(nil)
	s.emit(context.Background(), ActivityEventLogout, email, nil)
}

// CurrentUser returns the last published user, or nil.
func (s *Service) CurrentUser() *User {
	return s.stream.value()
}

// Token returns the current bearer token, or "".
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// IsAuthenticated reports whether a non-expired token is present. Expiry is
// checked against the clock, not mere token presence.
func (s *Service) IsAuthenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	_, err := ValidateToken(token, s.clock())
	return err == nil
}

// HasRole reports whether the current user holds role.
func (s *Service) HasRole(role Role) bool {
	user := s.CurrentUser()
	return user != nil && user.Role == role
}

// HasAnyRole reports whether the current user holds any of roles.
func (s *Service) HasAnyRole(roles ...Role) bool {
	user := s.CurrentUser()
	if user == nil {
		return false
	}
	return RoleIn(user.Role, roles)
}

// Subscribe returns a channel that replays the current user and then receives
// every subsequent change. Release it with Unsubscribe.
func (s *Service) Subscribe() chan *User {
	return s.stream.subscribe()
}

// Unsubscribe releases a channel obtained from Subscribe.
func (s *Service) Unsubscribe(ch chan *User) {
	s.stream.unsubscribe(ch)
}

// sessionFromTokenResponse builds a session from a login/refresh response:
// user from the body when the backend supplies one, otherwise derived from
// the decoded token claims.
func (s *Service) sessionFromTokenResponse(body TokenResponse) (Session, error) {
	if body.AccessToken == "" {
		return Session{}, ErrTokenMalformed
	}

	claims, err := DecodeToken(body.AccessToken)
	if err != nil {
		return Session{}, err
	}

	user := body.User
	if user != nil {
		if _, ok := ParseRole(string(user.Role)); !ok {
			return Session{}, ErrMissingClaims
		}
	} else {
		if user, err = claims.UserFromClaims(); err != nil {
			return Session{}, err
		}
	}

	return Session{Token: body.AccessToken, User: user}, nil
}

// apply persists the session, moves the state machine, and publishes the user.
func (s *Service) apply(session Session, to SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(session, to)
}

// applyLocked is apply with s.mu already held. Persisting and publishing under
// the lock keeps the store and the stream ordered with concurrent logouts.
func (s *Service) applyLocked(session Session, to SessionState) error {
	if err := s.store.Save(session); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to persist session")
	}

	if err := s.transition(to); err != nil {
		return err
	}
	s.session = session

	s.stream.publish(session.User)
	return nil
}

func (s *Service) currentEmail() string {
	if user := s.CurrentUser(); user != nil {
		return user.Email
	}
	return ""
}

func (s *Service) emit(ctx context.Context, eventType ActivityEventType, email string, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		UserEmail:  email,
		Metadata:   metadata,
		OccurredAt: s.clock(),
	}
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := normalizeActivitySink(s.sink).Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

// postJSON posts payload to path and decodes a 2xx body into out when out is
// non-nil. Transport-level failures map to ErrNetwork; HTTP status handling
// stays with the caller.
func (s *Service) postJSON(ctx context.Context, path string, payload any, out any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	// The refresh endpoint identifies the session by its current token.
	if token := s.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, goerrors.Wrap(err, ErrNetwork.Category, ErrNetwork.Message).
			WithTextCode(ErrNetwork.TextCode)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode response body")
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return resp.StatusCode, nil
}
