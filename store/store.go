// Package store provides the key→positions index structures sitting between
// a record collection and the query layer. A store maps every key of one key
// dimension to the ascending set of positions holding records with that key.
//
// Four kinds are available, all satisfying the same read contract:
//
//   - Dense: array-backed, for small-range unsigned-integer keys
//   - Int: dual-array variant of Dense for signed-integer keys
//   - Hash: map-backed, for arbitrary ordered keys
//   - Sharded: hash-partitioned string-key store with a parallel build
//
// Stores are built in a single pass over already-extracted keys, keyed by
// position; they never see records or the key extractor. A store built via
// one of the Build functions is immutable afterwards and safe for unlocked
// concurrent reads. Dense, Int and Hash additionally satisfy Mutable for
// callers that manage their own write exclusion.
package store

import (
	"cmp"

	"github.com/hupe1980/idxgo/core"
)

// UintKey is the key constraint of the dense store.
type UintKey interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// IntKey is the key constraint of the signed-integer store.
type IntKey interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Store is the read surface shared by every index kind. The query layer is
// written against this interface only, never against a concrete kind.
type Store[K cmp.Ordered] interface {
	// Positions returns the ascending, duplicate-free positions indexed
	// under key, or nil when the key is absent. The returned slice is
	// borrowed from the store and must not be mutated.
	Positions(key K) []core.Position

	// Contains reports whether at least one position is indexed under key.
	Contains(key K) bool

	// MinKey returns the smallest key present, or false on an empty store.
	MinKey() (K, bool)

	// MaxKey returns the largest key present, or false on an empty store.
	MaxKey() (K, bool)

	// Len returns the total number of indexed positions.
	Len() int

	// Keys returns the number of distinct keys present.
	Keys() int
}

// Mutable extends Store with single-entry mutation. Mutable stores perform no
// locking of their own; callers serialize writes and order them against reads.
type Mutable[K cmp.Ordered] interface {
	Store[K]

	// Insert indexes pos under key. Inserting a position already present
	// under the same key is a no-op. Dense and Int stores fail with a
	// RangeOverflowError when key falls outside the allocatable range.
	Insert(key K, pos core.Position) error

	// Delete removes pos from key's positions, reporting whether it was
	// present.
	Delete(key K, pos core.Position) bool
}
