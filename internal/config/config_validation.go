// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error from
// errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Node.ID == "" {
		return ErrInvalidNodeConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.BaseURL == "" || cfg.Remote.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Engine.SyncInterval <= 0 || cfg.Engine.MaxRetries < 0 {
		return ErrInvalidEngineConfigs
	}
	if cfg.Engine.BackoffBase <= 0 || cfg.Engine.BackoffCap < cfg.Engine.BackoffBase {
		return ErrInvalidEngineConfigs
	}

	if cfg.Monitor.Enabled && cfg.Monitor.Address == "" {
		return ErrInvalidMonitorConfigs
	}

	return nil
}
