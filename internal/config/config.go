// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-study-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Node identifies this device in version vectors and operation stamps.
	Node Node `envPrefix:"NODE_"`

	// Remote holds connection settings for the remote sync endpoint.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Engine holds sync engine tuning: retry limits, backoff, cadence.
	Engine Engine `envPrefix:"ENGINE_"`

	// Monitor holds settings for the local monitoring HTTP API.
	Monitor Monitor `envPrefix:"MONITOR_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Node identifies the local device.
type Node struct {
	// ID is the stable device identifier used as the version vector key
	// for every change authored on this device. It must never change for
	// the lifetime of the local database.
	// Env: NODE_ID
	ID string `env:"ID"`
}

// Remote holds network settings for the outbound sync transport.
type Remote struct {
	// BaseURL is the base URL of the remote sync API
	// (e.g. "http://localhost:8080").
	// Env: REMOTE_ADDRESS
	BaseURL string `env:"ADDRESS"`

	// Token is the bearer token presented on every sync request.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "15s", "1m").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite Data Source Name used to open the local database
	// (e.g. "file:keeper.db?_journal_mode=WAL").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Engine holds tuning knobs for the sync engine and its background job.
type Engine struct {
	// MaxRetries bounds the total failed attempts per item, the first
	// failure included. Once an item has failed MaxRetries times it stays
	// failed until dismissed; automatic promotion and manual retry are
	// both refused.
	// Env: ENGINE_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BackoffBase is the delay before the first retry; each subsequent
	// retry doubles it.
	// Env: ENGINE_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap is the upper bound on the retry delay.
	// Env: ENGINE_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// SyncInterval defines how often the background job runs a sync cycle.
	// Env: ENGINE_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// RederiveSuperseded controls whether an operation whose version
	// vector was already covered by the remote is re-enqueued as a fresh
	// update instead of being marked superseded.
	// Env: ENGINE_REDERIVE_SUPERSEDED
	RederiveSuperseded bool `env:"REDERIVE_SUPERSEDED"`
}

// Monitor holds settings for the local monitoring HTTP API.
type Monitor struct {
	// Enabled turns the monitor HTTP server on.
	// Env: MONITOR_ENABLED
	Enabled bool `env:"ENABLED"`

	// Address is the TCP address on which the monitor server listens,
	// in "host:port" format (e.g. "localhost:8099").
	// Env: MONITOR_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
