package idxgo

import (
	"cmp"

	"github.com/hupe1980/idxgo/store"
)

// View is a key-restricted projection of a List: the full query surface, but
// only the chosen keys are visible; everything else behaves as absent, even
// when the parent holds it. A view shares the parent's records and postings
// by reference and never copies or rebuilds index structures, so creating one
// costs no more than the restriction set itself.
//
// Views are immutable and any number of them may read one parent
// concurrently.
type View[T any, K cmp.Ordered] struct {
	List[T, K]
}

// CreateView creates a view of the list exposing only the given keys. Keys
// the list does not hold are dropped from the restriction. Calling CreateView
// on a view intersects the restrictions.
func (l *List[T, K]) CreateView(keys ...K) *View[T, K] {
	sv := store.NewView(l.store, keys...)
	l.metrics.RecordViewCreate(sv.Keys())
	l.logger.LogViewCreate(len(keys), sv.Keys())

	return &View[T, K]{
		List: List[T, K]{
			records: l.records,
			store:   sv,
			metrics: l.metrics,
			logger:  l.logger,
		},
	}
}
