// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Causality describes the relationship between two version vectors.
type Causality int

const (
	// Equal means both vectors carry identical counters.
	Equal Causality = iota

	// Dominates means the receiver has observed everything the other
	// vector has, plus at least one additional event.
	Dominates

	// Dominated means the other vector has observed everything the
	// receiver has, plus at least one additional event.
	Dominated

	// Concurrent means neither vector dominates the other: the two
	// histories diverged and carry conflicting edits.
	Concurrent
)

// String returns the lower-case name of the causality relation.
func (c Causality) String() string {
	switch c {
	case Equal:
		return "equal"
	case Dominates:
		return "dominates"
	case Dominated:
		return "dominated"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// VersionVector is a per-entity causal clock: a mapping from device/node
// identifier to a monotonically increasing counter. A node absent from the
// map is treated as having counter 0.
//
// All operations return a new vector and never mutate the receiver, so a
// caller may retain any snapshot it has handed out (e.g. the creation-time
// vector stored inside a SyncOperation) without defensive copying.
type VersionVector map[string]int64

// NewVersionVector returns an empty vector, the state of an entity before
// its first local edit.
func NewVersionVector() VersionVector {
	return VersionVector{}
}

// Counter returns the counter recorded for node, or 0 when absent.
func (v VersionVector) Counter(node string) int64 {
	return v[node]
}

// Clone returns an independent copy of the vector.
func (v VersionVector) Clone() VersionVector {
	out := make(VersionVector, len(v))
	for node, counter := range v {
		out[node] = counter
	}
	return out
}

// Increment returns a new vector with the counter of node advanced by one
// and every other entry unchanged.
func (v VersionVector) Increment(node string) VersionVector {
	out := v.Clone()
	out[node]++
	return out
}

// Merge returns a new vector whose entries are the per-node maximum of the
// two inputs, over the union of their keys. Merge is commutative and never
// loses history: the result dominates or equals both inputs.
func (v VersionVector) Merge(other VersionVector) VersionVector {
	out := v.Clone()
	for node, counter := range other {
		if counter > out[node] {
			out[node] = counter
		}
	}
	return out
}

// Compare classifies the causal relationship between v and other.
//
// The receiver Dominates when every counter in v is >= the corresponding
// counter in other and at least one is strictly greater; Dominated is the
// symmetric case; vectors with divergence in both directions are
// Concurrent.
func (v VersionVector) Compare(other VersionVector) Causality {
	var selfAhead, otherAhead bool

	for node, counter := range v {
		switch o := other[node]; {
		case counter > o:
			selfAhead = true
		case counter < o:
			otherAhead = true
		}
	}
	for node, counter := range other {
		if _, seen := v[node]; !seen && counter > 0 {
			otherAhead = true
		}
	}

	switch {
	case selfAhead && otherAhead:
		return Concurrent
	case selfAhead:
		return Dominates
	case otherAhead:
		return Dominated
	default:
		return Equal
	}
}

// DominatesOrEquals reports whether v has observed every event other has.
func (v VersionVector) DominatesOrEquals(other VersionVector) bool {
	c := v.Compare(other)
	return c == Dominates || c == Equal
}

// IsEmpty reports whether the vector records no events at all.
func (v VersionVector) IsEmpty() bool {
	for _, counter := range v {
		if counter > 0 {
			return false
		}
	}
	return true
}
