package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncOperation(t *testing.T) {
	ref := EntityRef{Type: EntityPost, ID: "post-42"}
	payload := json.RawMessage(`{"content":"hello"}`)
	vector := VersionVector{"device-a": 1}

	tests := []struct {
		name    string
		ref     EntityRef
		kind    OperationKind
		payload json.RawMessage
		wantErr bool
	}{
		{name: "valid create", ref: ref, kind: OpCreate, payload: payload},
		{name: "valid update", ref: ref, kind: OpUpdate, payload: payload},
		{name: "delete without payload is a tombstone", ref: ref, kind: OpDelete},
		{name: "create without payload rejected", ref: ref, kind: OpCreate, wantErr: true},
		{name: "update without payload rejected", ref: ref, kind: OpUpdate, wantErr: true},
		{name: "unknown kind rejected", ref: ref, kind: OperationKind("upsert"), payload: payload, wantErr: true},
		{name: "zero entity ref rejected", ref: EntityRef{}, kind: OpUpdate, payload: payload, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewSyncOperation(tt.ref, tt.kind, tt.payload, PriorityNormal, vector, "device-a")
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.ref, op.Ref)
			assert.Equal(t, tt.kind, op.Kind)
			assert.Equal(t, "device-a", op.Node)
			assert.False(t, op.CreatedAt.IsZero())
		})
	}
}

func TestNewSyncOperation_VectorSnapshotIsolated(t *testing.T) {
	vector := VersionVector{"device-a": 1}

	op, err := NewSyncOperation(
		EntityRef{Type: EntityQuiz, ID: "quiz-1"},
		OpUpdate,
		json.RawMessage(`{"title":"t"}`),
		PriorityHigh,
		vector,
		"device-a",
	)
	require.NoError(t, err)

	// Mutating the source map must not leak into the stored snapshot.
	vector["device-a"] = 99
	assert.EqualValues(t, 1, op.Vector.Counter("device-a"))
}

func TestPriority_Max(t *testing.T) {
	assert.Equal(t, PriorityCritical, PriorityLow.Max(PriorityCritical))
	assert.Equal(t, PriorityHigh, PriorityHigh.Max(PriorityNormal))
	assert.Equal(t, PriorityNormal, PriorityNormal.Max(PriorityNormal))
}

func TestEntityType_MergePolicy(t *testing.T) {
	assert.Equal(t, MergeFields, EntityQuiz.MergePolicy())
	assert.Equal(t, MergeLastWriterWins, EntityPost.MergePolicy())
	assert.Equal(t, MergeManual, EntitySubmission.MergePolicy())
	assert.Equal(t, MergeLastWriterWins, EntityType("unknown").MergePolicy())
}
