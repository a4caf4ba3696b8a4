package auth

import "errors"

// Failure taxonomy for token and credential checks. ResolveIdentity collapses
// the token-level kinds into an anonymous verdict before they reach any
// handler; they stay distinguishable for logging and tests.
var (
	ErrTokenMalformed     = errors.New("malformed token")
	ErrBadSignature       = errors.New("bad token signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrNoSuchUser         = errors.New("user no longer exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
