package store

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrRangeOverflow is the sentinel matched by errors.Is for every
// RangeOverflowError, regardless of key type.
var ErrRangeOverflow = errors.New("store: key range overflow")

// RangeOverflowError reports a key outside a dense store's allocatable range.
// The build (or insert) fails rather than truncating the key; callers wanting
// unbounded key domains use the hash store instead.
type RangeOverflowError[K cmp.Ordered] struct {
	// Key is the rejected key.
	Key K
	// Capacity is the number of slots the store could allocate when the
	// key was rejected.
	Capacity uint64
}

func (e *RangeOverflowError[K]) Error() string {
	return fmt.Sprintf("store: key %v overflows dense range (capacity %d)", e.Key, e.Capacity)
}

func (e *RangeOverflowError[K]) Unwrap() error { return ErrRangeOverflow }
