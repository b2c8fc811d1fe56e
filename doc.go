// Package auth is the client-side authentication core for the academic
// management backend (roles: estudiante, profesor, admin).
//
// Sessions:
//   - A Session pairs an opaque bearer token with the User it belongs to. Both
//     are persisted and cleared together through a SessionStore. Stores are
//     scoped either to the process (MemoryStore), to a profile directory on
//     disk (FileStore), or to a SQLite database shared across named profiles
//     (BunStore). Corrupt persisted state degrades to "no session".
//
// Tokens:
//   - DecodeToken splits a JWT and base64url-decodes its payload segment
//     WITHOUT verifying the signature. Decoded claims are a UI hint only; the
//     backend remains the sole authority on whether a token is accepted.
//
// Services:
//   - Service orchestrates login, register, refresh, and logout against the
//     backend, persists results through the configured SessionStore, and
//     publishes the current user on a single-writer stream that guards and
//     views subscribe to.
//   - Transport is an http.RoundTripper that attaches the bearer token to
//     outbound requests and coalesces concurrent 401-triggered refreshes into
//     a single backend call, retrying each original request once.
//   - Guard gates navigation by role using a static RouteTable, redirecting
//     unauthenticated callers to login and unauthorized ones home.
package auth
