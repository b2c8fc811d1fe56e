package auth

// RouteTable is the static route -> allowed-roles declaration consumed by the
// guard. It is immutable configuration, not runtime state; routes absent from
// the table only require authentication.
type RouteTable map[string][]Role

// Decision is the outcome of a guard check. When denied, RedirectTo names
// the route the caller should navigate to instead.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Reason     error
}

// Guard gates navigation by role. Authorization state is read fresh from the
// service on every check; no decision is ever cached.
type Guard struct {
	auth   Authenticator
	routes RouteTable
	login  string
	home   string
	logger Logger
}

// NewGuard builds a guard over routes. Unauthenticated users are redirected
// to loginRoute, authenticated-but-unauthorized ones to homeRoute.
func NewGuard(auth Authenticator, routes RouteTable, loginRoute, homeRoute string) *Guard {
	return &Guard{
		auth:   auth,
		routes: routes,
		login:  loginRoute,
		home:   homeRoute,
		logger: defLogger{},
	}
}

// WithLogger overrides the default logger.
func (g *Guard) WithLogger(logger Logger) *Guard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// CanEnter reports whether the current user may enter a route requiring any
// of roles. An empty requirement only demands authentication. This is the
// same predicate the pages use for conditional rendering.
func (g *Guard) CanEnter(roles ...Role) bool {
	if !g.auth.IsAuthenticated() {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return g.auth.HasAnyRole(roles...)
}

// Decide evaluates the route's authorization requirement against the current
// session state, synchronously and without any backend call.
func (g *Guard) Decide(route string) Decision {
	if !g.auth.IsAuthenticated() {
		g.logger.Debug("guard denied %s: not authenticated", route)
		return Decision{RedirectTo: g.login, Reason: ErrNotAuthenticated}
	}

	required := g.routes[route]
	if len(required) == 0 || g.auth.HasAnyRole(required...) {
		return Decision{Allowed: true}
	}

	g.logger.Debug("guard denied %s: role not allowed", route)
	return Decision{RedirectTo: g.home, Reason: ErrRoleDenied}
}
