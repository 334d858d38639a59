// Package auth implements credential verification, token issuance and
// validation, and the role-based access policy.  Everything in this
// package is stateless with respect to request handling; the only
// process-wide state is the signing secret held by the TokenService,
// which is immutable after construction.
package auth

import "errors"

// Sentinel errors returned by the authentication core.  Handlers map
// these onto HTTP outcomes.  ErrInvalidCredentials and ErrUnknownSubject
// must surface identically to the client so that callers cannot probe
// which usernames or subject ids exist.
var (
	// ErrInvalidCredentials covers both "unknown username" and "known
	// username, wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInactiveAccount is returned for a subject whose account has
	// been deactivated, regardless of how it authenticated.
	ErrInactiveAccount = errors.New("account is inactive")

	// ErrInvalidSignature is returned when a token's signature does not
	// verify against the configured secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired is returned for a correctly signed token whose exp
	// claim is in the past.
	ErrExpired = errors.New("token expired")

	// ErrMalformed is returned for anything that is not a well-formed
	// token with the expected claims.
	ErrMalformed = errors.New("malformed token")

	// ErrUnknownSubject is returned when a validated token's subject no
	// longer resolves to a stored identity.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrForbidden is returned when the access policy denies an action.
	ErrForbidden = errors.New("forbidden")
)
