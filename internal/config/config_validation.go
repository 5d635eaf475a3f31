// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The token sign key is mandatory: the process must not come up with an
// empty signing secret, otherwise every issued session token would be
// forgeable.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenDuration <= 0 || cfg.Auth.ResetTokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.PasswordMinLength < 1 {
		return ErrInvalidAuthConfigs
	}

	return nil
}
