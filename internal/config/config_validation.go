// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Voronin

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SecretKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.PageSize <= 0 || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.Driver == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Files.ProfilePicsDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
