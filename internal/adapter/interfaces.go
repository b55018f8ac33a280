// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote sync service.
//
// The primary abstraction is [RemoteAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401). The engine
// relies on this mapping to split permanent rejections from transient faults.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-study-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter defines transport-agnostic communication with the remote sync
// service. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type RemoteAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// TokenExpired reports whether the stored bearer token carries an "exp"
	// claim in the past. An empty or unparseable token counts as expired so
	// that the engine surfaces auth problems before a cycle starts.
	TokenExpired() bool

	// Fetch retrieves the remote service's current view of one entity:
	// payload, version vector, and tombstone flag. Returns [ErrNotFound]
	// (wrapped) if the entity has never been seen remotely.
	Fetch(ctx context.Context, ref models.EntityRef) (models.RemoteSnapshot, error)

	// Apply pushes a single local operation to the remote service and
	// returns the authoritative post-apply version vector. Returns
	// [ErrConflict] (wrapped) if the remote detected concurrent changes the
	// local operation does not dominate, [ErrRejected] (wrapped) if the
	// operation is permanently unprocessable, or another error on transport
	// failure.
	Apply(ctx context.Context, op models.SyncOperation) (models.VersionVector, error)
}
