package auth

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var _ http.RoundTripper = (*Transport)(nil)

// Transport attaches the current bearer token to every outbound request and
// handles 401 responses: a single-flight refresh rotates the token, then the
// original request is retried exactly once. Concurrent 401s share one refresh
// call and observe the same token or the same failure. If the refresh fails
// the session is logged out and the original 401 propagates. Failures other
// than 401 propagate unchanged.
type Transport struct {
	refresher Refresher
	base      http.RoundTripper
	logger    Logger
	group     singleflight.Group
}

// NewTransport wraps base (http.DefaultTransport when nil) with bearer
// authentication backed by refresher.
func NewTransport(refresher Refresher, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		refresher: refresher,
		base:      base,
		logger:    defLogger{},
	}
}

// WithLogger overrides the default logger.
func (t *Transport) WithLogger(logger Logger) *Transport {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// Client returns an *http.Client using this transport.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.refresher.Token()

	authed := t.clone(req, token)
	resp, err := t.base.RoundTrip(authed)
	if err != nil {
		return nil, err
	}

	// Only requests that actually carried a token enter the refresh path.
	if resp.StatusCode != http.StatusUnauthorized || token == "" {
		return resp, nil
	}

	newToken, refreshErr := t.refreshToken(req)
	if refreshErr != nil {
		t.logger.Warn("token refresh failed, logging out: %v", refreshErr)
		t.refresher.Logout()
		return resp, nil
	}

	// A consumed body can only be replayed through GetBody.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	retry := t.clone(req, newToken)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		retry.Body = body
	}

	drain(resp)

	retried, err := t.base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	return retried, nil
}

// refreshToken coalesces concurrent refresh attempts into one backend call.
// Every caller queued behind the in-flight refresh observes its outcome.
func (t *Transport) refreshToken(req *http.Request) (string, error) {
	result, err, _ := t.group.Do("refresh", func() (any, error) {
		session, err := t.refresher.Refresh(req.Context())
		if err != nil {
			return "", err
		}
		return session.Token, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// clone copies req with the bearer credential and a request ID attached, and
// enriches the request context with the decoded identity so wrapping round
// trippers and hooks can correlate requests with the current user. The
// original request is otherwise unmodified.
func (t *Transport) clone(req *http.Request, token string) *http.Request {
	ctx := req.Context()
	if token != "" {
		if claims, err := DecodeToken(token); err == nil {
			ctx = WithClaimsContext(ctx, claims)
			if user, uerr := claims.UserFromClaims(); uerr == nil {
				ctx = WithContext(ctx, user)
			}
		}
	}

	out := req.Clone(ctx)
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}
	return out
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
