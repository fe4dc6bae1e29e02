package store

import (
	"cmp"

	"github.com/hupe1980/idxgo/core"
)

// Compile-time check to ensure View satisfies the read interface.
var _ Store[string] = (*View[string])(nil)

// View restricts a parent store to an explicit key subset. It shares the
// parent's postings by reference and never copies or rebuilds index
// structures; a key outside the restriction behaves as absent even when the
// parent holds it. Len, Keys and the min/max summary cover only the visible
// keys and are computed once at construction.
//
// Views are read-only and any number of them may read one parent
// concurrently.
type View[K cmp.Ordered] struct {
	parent  Store[K]
	visible map[K]struct{}
	count   int
	meta    meta[K]
}

// NewView creates a view of parent exposing only the given keys. Keys absent
// from the parent are dropped from the restriction. A view of a view
// intersects the restrictions instead of chaining lookups, so reads stay one
// indirection deep.
func NewView[K cmp.Ordered](parent Store[K], keys ...K) *View[K] {
	if pv, ok := parent.(*View[K]); ok {
		parent = pv.parent
		kept := make([]K, 0, len(keys))
		for _, key := range keys {
			if _, ok := pv.visible[key]; ok {
				kept = append(kept, key)
			}
		}
		keys = kept
	}

	v := &View[K]{parent: parent, visible: make(map[K]struct{}, len(keys))}
	for _, key := range keys {
		if _, seen := v.visible[key]; seen {
			continue
		}
		p := parent.Positions(key)
		if len(p) == 0 {
			continue
		}
		v.visible[key] = struct{}{}
		v.count += len(p)
		v.meta.observe(key)
	}

	return v
}

// Positions returns the parent's positions for key when the view exposes it,
// nil otherwise. The slice is borrowed from the parent.
func (v *View[K]) Positions(key K) []core.Position {
	if _, ok := v.visible[key]; !ok {
		return nil
	}
	return v.parent.Positions(key)
}

// Contains reports whether key is visible and present in the parent.
func (v *View[K]) Contains(key K) bool {
	_, ok := v.visible[key]
	return ok
}

// MinKey returns the smallest visible key, or false on an empty view.
func (v *View[K]) MinKey() (K, bool) { return v.meta.min() }

// MaxKey returns the largest visible key, or false on an empty view.
func (v *View[K]) MaxKey() (K, bool) { return v.meta.max() }

// Len returns the number of positions reachable through visible keys.
func (v *View[K]) Len() int { return v.count }

// Keys returns the number of visible keys.
func (v *View[K]) Keys() int { return len(v.visible) }
