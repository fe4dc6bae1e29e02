package store

import "cmp"

// meta is the incremental min/max key summary carried by every store kind.
// It is fed during the single build pass (and on later inserts), never
// recomputed per query. Deleting the last position under a boundary key
// triggers a store-kind-specific rescan via replace/reset.
type meta[K cmp.Ordered] struct {
	minKey K
	maxKey K
	some   bool
}

func (m *meta[K]) observe(key K) {
	if !m.some {
		m.minKey, m.maxKey = key, key
		m.some = true
		return
	}
	if key < m.minKey {
		m.minKey = key
	}
	if key > m.maxKey {
		m.maxKey = key
	}
}

func (m *meta[K]) min() (K, bool) { return m.minKey, m.some }

func (m *meta[K]) max() (K, bool) { return m.maxKey, m.some }

func (m *meta[K]) reset() {
	var zero K
	m.minKey, m.maxKey, m.some = zero, zero, false
}
