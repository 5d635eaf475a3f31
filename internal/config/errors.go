package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no signing secret was provided.
	// The server refuses to start in this state.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid auth settings (for example,
	// a non-positive token lifetime or password length).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
)
