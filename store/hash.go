package store

import (
	"cmp"
	"iter"

	"github.com/hupe1980/idxgo/core"
)

// Compile-time checks to ensure Hash satisfies the store interfaces.
var _ Store[string] = (*Hash[string])(nil)
var _ Mutable[string] = (*Hash[string])(nil)

// Hash is the map-backed store for arbitrary ordered keys. Lookup is expected
// O(1); the map itself carries no cross-key ordering, but the min/max summary
// is maintained in the same build pass as every other kind. There is no key
// range to overflow, so Insert never fails.
type Hash[K cmp.Ordered] struct {
	buckets map[K]postings
	count   int
	meta    meta[K]
}

// NewHash creates an empty mutable hash store. Options.KeyCapacity, if set,
// is used as the initial bucket count hint.
func NewHash[K cmp.Ordered](optFns ...func(*Options)) (*Hash[K], error) {
	opts := applyOptions(optFns)

	return &Hash[K]{buckets: make(map[K]postings, opts.KeyCapacity)}, nil
}

// BuildHash bulk-loads a hash store from extracted keys in collection order:
// one pass, appending each position to its key's bucket and feeding the
// min/max summary as keys are seen. n is the record count, used to pre-size
// the bucket map.
func BuildHash[K cmp.Ordered](n int, keys iter.Seq2[core.Position, K], optFns ...func(*Options)) (*Hash[K], error) {
	opts := applyOptions(optFns)
	hint := opts.KeyCapacity
	if hint == 0 {
		hint = n
	}

	h := &Hash[K]{buckets: make(map[K]postings, hint)}

	for pos, key := range keys {
		h.buckets[key] = append(h.buckets[key], pos)
		h.count++
		h.meta.observe(key)
	}

	return h, nil
}

// Positions returns the ascending positions indexed under key, or nil.
// The slice is borrowed and must not be mutated.
func (h *Hash[K]) Positions(key K) []core.Position {
	return h.buckets[key]
}

// Contains reports whether key has at least one indexed position.
func (h *Hash[K]) Contains(key K) bool {
	_, ok := h.buckets[key]
	return ok
}

// MinKey returns the smallest key present, or false on an empty store.
func (h *Hash[K]) MinKey() (K, bool) { return h.meta.min() }

// MaxKey returns the largest key present, or false on an empty store.
func (h *Hash[K]) MaxKey() (K, bool) { return h.meta.max() }

// Len returns the total number of indexed positions.
func (h *Hash[K]) Len() int { return h.count }

// Keys returns the number of distinct keys present.
func (h *Hash[K]) Keys() int { return len(h.buckets) }

// Insert indexes pos under key. The key domain is unbounded, so the error is
// always nil; it exists to satisfy Mutable.
func (h *Hash[K]) Insert(key K, pos core.Position) error {
	p, added := h.buckets[key].insert(pos)
	if !added {
		return nil
	}
	h.buckets[key] = p
	h.count++
	h.meta.observe(key)
	return nil
}

// Delete removes pos from key's positions, reporting whether it was present.
func (h *Hash[K]) Delete(key K, pos core.Position) bool {
	p, removed := h.buckets[key].remove(pos)
	if !removed {
		return false
	}

	h.count--
	if len(p) == 0 {
		delete(h.buckets, key)
		if key == h.meta.minKey || key == h.meta.maxKey {
			h.rescan()
		}
	} else {
		h.buckets[key] = p
	}
	return true
}

// rescan sweeps the key set after a boundary key vanished.
func (h *Hash[K]) rescan() {
	h.meta.reset()
	for key := range h.buckets {
		h.meta.observe(key)
	}
}
