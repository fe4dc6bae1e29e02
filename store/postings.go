package store

import (
	"slices"

	"github.com/hupe1980/idxgo/core"
)

// postings is one key's position set: ascending and duplicate-free. The build
// path appends (positions arrive in collection order); mutation keeps the
// ordering with a binary-search insert.
type postings []core.Position

// insert adds pos keeping ascending order, reporting whether it was added.
func (p postings) insert(pos core.Position) (postings, bool) {
	i, found := slices.BinarySearch(p, pos)
	if found {
		return p, false
	}
	return slices.Insert(p, i, pos), true
}

// remove deletes pos, reporting whether it was present.
func (p postings) remove(pos core.Position) (postings, bool) {
	i, found := slices.BinarySearch(p, pos)
	if !found {
		return p, false
	}
	return slices.Delete(p, i, i+1), true
}
