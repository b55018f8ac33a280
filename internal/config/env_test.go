// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"NODE_ID": "device-a",

		"REMOTE_ADDRESS":         "http://localhost:8080",
		"REMOTE_TOKEN":           "bearer-secret",
		"REMOTE_REQUEST_TIMEOUT": "30s",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DSN": "file:keeper.db?_journal_mode=WAL",

		"ENGINE_MAX_RETRIES":         "3",
		"ENGINE_BACKOFF_BASE":        "1s",
		"ENGINE_BACKOFF_CAP":         "2m",
		"ENGINE_SYNC_INTERVAL":       "45s",
		"ENGINE_REDERIVE_SUPERSEDED": "true",

		"MONITOR_ENABLED": "true",
		"MONITOR_ADDRESS": "localhost:8099",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "device-a", cfg.Node.ID)

	assert.Equal(t, "http://localhost:8080", cfg.Remote.BaseURL)
	assert.Equal(t, "bearer-secret", cfg.Remote.Token)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)

	assert.Equal(t, "file:keeper.db?_journal_mode=WAL", cfg.Storage.DB.DSN)

	assert.Equal(t, 3, cfg.Engine.MaxRetries)
	assert.Equal(t, time.Second, cfg.Engine.BackoffBase)
	assert.Equal(t, 2*time.Minute, cfg.Engine.BackoffCap)
	assert.Equal(t, 45*time.Second, cfg.Engine.SyncInterval)
	assert.True(t, cfg.Engine.RederiveSuperseded)

	assert.True(t, cfg.Monitor.Enabled)
	assert.Equal(t, "localhost:8099", cfg.Monitor.Address)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"NODE_ID":        "device-a",
		"REMOTE_ADDRESS": "http://localhost:8080",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "device-a", cfg.Node.ID)

	// Remote partially filled
	assert.Equal(t, "http://localhost:8080", cfg.Remote.BaseURL)
	assert.Empty(t, cfg.Remote.Token)
	assert.Zero(t, cfg.Remote.RequestTimeout)

	// Others untouched
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Equal(t, Engine{}, cfg.Engine)
	assert.Equal(t, Monitor{}, cfg.Monitor)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// In this version all nested fields are non-pointer values,
	// so "empty" state is represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, Node{}, cfg.Node)
	assert.Equal(t, Remote{}, cfg.Remote)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Engine{}, cfg.Engine)
	assert.Equal(t, Monitor{}, cfg.Monitor)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ENGINE_SYNC_INTERVAL": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"REMOTE_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Remote.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"NODE_ID",

		"REMOTE_ADDRESS",
		"REMOTE_TOKEN",
		"REMOTE_REQUEST_TIMEOUT",

		"STORAGE_DB_DSN",

		"ENGINE_MAX_RETRIES",
		"ENGINE_BACKOFF_BASE",
		"ENGINE_BACKOFF_CAP",
		"ENGINE_SYNC_INTERVAL",
		"ENGINE_REDERIVE_SUPERSEDED",

		"MONITOR_ENABLED",
		"MONITOR_ADDRESS",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
