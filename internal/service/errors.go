package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWeakPassword        = errors.New("password does not meet the strength policy")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so a caller can never tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAccountDisabled = errors.New("account is disabled")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSelfAction is returned when an administrator attempts a
	// self-targeting mutation that would remove their own admin role,
	// disable their own account, or delete their own account.
	ErrSelfAction = errors.New("action cannot target your own account")
)
