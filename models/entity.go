// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityType identifies the kind of study entity a sync operation targets.
// The value determines which conflict-resolution capability applies when
// concurrent edits to the same entity are detected.
type EntityType string

const (
	// EntityCourse is a course record mirrored from the LMS.
	EntityCourse EntityType = "course"

	// EntityTopic is a forum discussion topic.
	EntityTopic EntityType = "topic"

	// EntityPost is a single forum post inside a topic.
	EntityPost EntityType = "post"

	// EntityQuiz is a quiz definition, including its question list.
	EntityQuiz EntityType = "quiz"

	// EntityQuestion is a single quiz question.
	EntityQuestion EntityType = "question"

	// EntitySubmission is an assignment or quiz submission. Once graded it
	// must never be auto-merged, so its merge policy is manual.
	EntitySubmission EntityType = "submission"
)

// MergePolicy selects the automatic conflict-resolution capability of an
// entity type.
type MergePolicy int

const (
	// MergeLastWriterWins resolves concurrent edits by wall-clock
	// timestamp with a deterministic node-id tie-break.
	MergeLastWriterWins MergePolicy = iota

	// MergeFields merges concurrent edits field-wise when they touch
	// disjoint mergeable fields, synthesising a new operation.
	MergeFields

	// MergeManual disables automatic resolution entirely; a conflict
	// record is surfaced and the entity blocks until a decision arrives.
	MergeManual
)

// mergePolicies is the capability table consulted by the conflict resolver.
// Unknown entity types fall back to last-writer-wins, the only policy that
// needs no knowledge of the payload shape.
var mergePolicies = map[EntityType]MergePolicy{
	EntityCourse:     MergeFields,
	EntityQuiz:       MergeFields,
	EntityQuestion:   MergeFields,
	EntityTopic:      MergeLastWriterWins,
	EntityPost:       MergeLastWriterWins,
	EntitySubmission: MergeManual,
}

// mergeableFields lists, per field-mergeable type, the top-level payload
// fields the resolver is allowed to combine. Fields not listed here always
// come from the base (winning) side.
var mergeableFields = map[EntityType][]string{
	EntityCourse:   {"title", "description", "tags", "modules"},
	EntityQuiz:     {"title", "description", "tags", "questions", "settings"},
	EntityQuestion: {"content", "choices", "explanation"},
}

// MergePolicy returns the conflict-resolution capability of the type.
func (t EntityType) MergePolicy() MergePolicy {
	if p, ok := mergePolicies[t]; ok {
		return p
	}
	return MergeLastWriterWins
}

// MergeableFields returns the payload fields that may be merged field-wise
// for the type, or nil when the type has no field-merge rule.
func (t EntityType) MergeableFields() []string {
	return mergeableFields[t]
}

// EntityRef uniquely identifies one entity across the local store and the
// remote services.
type EntityRef struct {
	// Type is the kind of entity (course, topic, post, ...).
	Type EntityType `json:"type"`

	// ID is the entity identifier, unique within its type.
	ID string `json:"id"`
}

// String renders the reference as "type/id", the form used in log fields
// and as the per-entity key inside the engine.
func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// IsZero reports whether the reference is missing its type or id.
func (r EntityRef) IsZero() bool {
	return r.Type == "" || r.ID == ""
}
