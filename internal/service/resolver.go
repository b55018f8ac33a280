// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/models"
)

// conflictResolver applies the resolution policy chain to a conflict whose
// version vectors were already classified Concurrent:
//
//  1. either side is a delete: the tombstone wins, the loser's data change
//     is discarded but its vector is merged so no history is lost;
//  2. the entity type declares mergeable fields: both payloads are merged
//     field-wise into a synthesized update;
//  3. last-writer-wins by wall-clock timestamp, node id as tie-break, for
//     types without a merge rule;
//  4. manual-only types produce a ManualPending resolution and wait for an
//     external decision.
type conflictResolver struct {
	logger *logger.Logger
}

// NewConflictResolver builds the default policy-chain resolver.
func NewConflictResolver(log *logger.Logger) ConflictResolver {
	return &conflictResolver{logger: log}
}

func (r *conflictResolver) Resolve(ctx context.Context, conflict models.ConflictRecord) (models.Resolution, error) {
	log := logger.FromContext(ctx)
	merged := conflict.Local.Vector.Merge(conflict.Remote.Vector)

	if res, ok := r.resolveTombstone(conflict, merged); ok {
		log.Info().Str("entity", conflict.Ref.String()).Str("outcome", string(res.Kind)).
			Msg("conflict resolved by delete-wins rule")
		return res, nil
	}

	switch conflict.Ref.Type.MergePolicy() {
	case models.MergeFields:
		res, err := r.mergeFields(conflict, merged)
		if err == nil {
			log.Info().Str("entity", conflict.Ref.String()).Msg("conflict resolved by field merge")
			return res, nil
		}
		log.Warn().Err(err).Str("entity", conflict.Ref.String()).
			Msg("field merge impossible, falling back to last-writer-wins")
		return r.lastWriterWins(conflict, merged), nil

	case models.MergeManual:
		log.Info().Str("entity", conflict.Ref.String()).Msg("conflict requires manual decision")
		return models.Resolution{
			Kind:   models.ResolutionManualPending,
			Vector: merged,
			Reason: fmt.Sprintf("%s entities are never auto-merged", conflict.Ref.Type),
		}, nil

	default:
		res := r.lastWriterWins(conflict, merged)
		log.Info().Str("entity", conflict.Ref.String()).Str("outcome", string(res.Kind)).
			Msg("conflict resolved by last-writer-wins")
		return res, nil
	}
}

// resolveTombstone implements the delete-wins rule. It reports ok=false when
// neither side carries a tombstone.
func (r *conflictResolver) resolveTombstone(conflict models.ConflictRecord, merged models.VersionVector) (models.Resolution, bool) {
	localDelete := conflict.Local.Kind == models.OpDelete
	remoteDelete := conflict.Remote.Deleted

	switch {
	case localDelete && remoteDelete:
		// both sides already deleted the entity, nothing left to apply
		return models.Resolution{
			Kind:          models.ResolutionRemoteWins,
			OperationKind: models.OpDelete,
			Vector:        merged,
			Reason:        "entity deleted on both sides",
		}, true

	case localDelete:
		return models.Resolution{
			Kind:          models.ResolutionLocalWins,
			OperationKind: models.OpDelete,
			Vector:        merged,
			Reason:        "local delete wins over concurrent remote edit",
		}, true

	case remoteDelete:
		return models.Resolution{
			Kind:          models.ResolutionRemoteWins,
			OperationKind: models.OpDelete,
			Vector:        merged,
			Reason:        "remote tombstone wins over concurrent local edit",
		}, true
	}

	return models.Resolution{}, false
}

// mergeFields synthesizes a payload combining both sides: the type's
// mergeable fields are taken from the local edit, everything else comes from
// the remote snapshot. Fails when either payload is not a JSON object.
func (r *conflictResolver) mergeFields(conflict models.ConflictRecord, merged models.VersionVector) (models.Resolution, error) {
	var local, remote map[string]any
	if err := json.Unmarshal(conflict.Local.Payload, &local); err != nil {
		return models.Resolution{}, fmt.Errorf("decode local payload: %w", err)
	}
	if err := json.Unmarshal(conflict.Remote.Payload, &remote); err != nil {
		return models.Resolution{}, fmt.Errorf("decode remote payload: %w", err)
	}

	result := make(map[string]any, len(remote))
	for _, field := range conflict.Ref.Type.MergeableFields() {
		if value, ok := local[field]; ok {
			result[field] = value
		}
	}
	// mergo fills only the keys still absent, so the remote side supplies
	// every field the local edit did not claim
	if err := mergo.Merge(&result, remote); err != nil {
		return models.Resolution{}, fmt.Errorf("merge payloads: %w", err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("encode merged payload: %w", err)
	}

	return models.Resolution{
		Kind:          models.ResolutionMerged,
		Payload:       payload,
		OperationKind: models.OpUpdate,
		Vector:        merged,
		Reason:        "field-wise merge of concurrent edits",
	}, nil
}

// lastWriterWins picks the side with the later wall-clock timestamp. Equal
// timestamps are broken by lexical node id order, the remote side winning
// only when its node id sorts lower.
func (r *conflictResolver) lastWriterWins(conflict models.ConflictRecord, merged models.VersionVector) models.Resolution {
	localAt := conflict.Local.CreatedAt
	remoteAt := conflict.Remote.UpdatedAt

	remoteWins := remoteAt.After(localAt) ||
		(remoteAt.Equal(localAt) && conflict.Remote.Node < conflict.Local.Node)

	if remoteWins {
		return models.Resolution{
			Kind:   models.ResolutionRemoteWins,
			Vector: merged,
			Reason: "last-writer-wins: remote edit is newer",
		}
	}

	return models.Resolution{
		Kind:          models.ResolutionLocalWins,
		Payload:       conflict.Local.Payload,
		OperationKind: conflict.Local.Kind,
		Vector:        merged,
		Reason:        "last-writer-wins: local edit is newer",
	}
}
