package auth

import "errors"

// Sentinel errors returned by the credential primitives. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEmptyPassword is returned by [PasswordHasher.Hash] when the
	// plaintext is empty; passwordless accounts are not allowed.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidTokenParams is returned by [NewTokenService] when the
	// signing secret, issuer, or a lifetime is missing or non-positive.
	ErrInvalidTokenParams = errors.New("invalid params for token service")

	// ErrTokenInvalidOrExpired is returned by [TokenService.ParseSession]
	// for every validation failure: bad signature, malformed structure,
	// wrong issuer, or expiry in the past.
	ErrTokenInvalidOrExpired = errors.New("token is invalid or expired")
)
