package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidNodeConfigs indicates a missing device identifier. The node
	// id keys this device's entries in every version vector, so the engine
	// refuses to start without one.
	ErrInvalidNodeConfigs = errors.New("invalid node configuration")
	// ErrInvalidRemoteConfigs indicates invalid remote endpoint settings
	// (for example, missing base URL or non-positive request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidEngineConfigs indicates invalid sync engine settings
	// (for example, zero sync interval or an inverted backoff range).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidMonitorConfigs indicates the monitor API is enabled without
	// a listen address.
	ErrInvalidMonitorConfigs = errors.New("invalid monitor configuration")
)
