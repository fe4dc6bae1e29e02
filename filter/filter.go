// Package filter provides the boolean query algebra over index stores:
// equality leaves combined with And/Or nodes, evaluated into a deduplicated,
// ascending position set.
//
// Expressions are plain data. Build them with the constructors and hand them
// to a list's Filter method, or evaluate them directly against a store:
//
//	expr := filter.Or(filter.Eq("gold"), filter.Eq("silver"))
//	positions := filter.Positions(s, expr)
//
// Evaluation materializes Roaring bitmaps, which are ascending and
// duplicate-free by construction; the result is therefore deterministic for
// arbitrarily nested expressions, independent of operand order.
package filter

import (
	"cmp"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/store"
)

// Expr is a boolean filter expression over one key dimension. The interface
// is sealed: expressions are built with Eq, In, And and Or only.
type Expr[K cmp.Ordered] interface {
	eval(s store.Store[K]) *roaring.Bitmap
}

// Eq matches every position indexed under key.
func Eq[K cmp.Ordered](key K) Expr[K] {
	return eq[K]{key: key}
}

// In matches every position indexed under any of the given keys. It is the
// OR-expansion of Eq over keys.
func In[K cmp.Ordered](keys ...K) Expr[K] {
	return in[K]{keys: keys}
}

// And matches positions present in every operand. With no operands it matches
// nothing; with one it is that operand. Nil operands are ignored.
func And[K cmp.Ordered](exprs ...Expr[K]) Expr[K] {
	return and[K]{exprs: exprs}
}

// Or matches positions present in at least one operand. With no operands it
// matches nothing; with one it is that operand. Nil operands are ignored.
func Or[K cmp.Ordered](exprs ...Expr[K]) Expr[K] {
	return or[K]{exprs: exprs}
}

// Eval evaluates e against s into a fresh bitmap owned by the caller. A nil
// expression evaluates to the empty set.
func Eval[K cmp.Ordered](s store.Store[K], e Expr[K]) *roaring.Bitmap {
	if e == nil {
		return roaring.New()
	}
	return e.eval(s)
}

// Positions evaluates e against s into an ascending, duplicate-free position
// slice.
func Positions[K cmp.Ordered](s store.Store[K], e Expr[K]) []core.Position {
	bm := Eval(s, e)
	out := make([]core.Position, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, core.Position(it.Next()))
	}
	return out
}

type eq[K cmp.Ordered] struct {
	key K
}

func (e eq[K]) eval(s store.Store[K]) *roaring.Bitmap {
	bm := roaring.New()
	for _, pos := range s.Positions(e.key) {
		bm.Add(uint32(pos))
	}
	return bm
}

type in[K cmp.Ordered] struct {
	keys []K
}

func (e in[K]) eval(s store.Store[K]) *roaring.Bitmap {
	bm := roaring.New()
	for _, key := range e.keys {
		for _, pos := range s.Positions(key) {
			bm.Add(uint32(pos))
		}
	}
	return bm
}

type and[K cmp.Ordered] struct {
	exprs []Expr[K]
}

func (e and[K]) eval(s store.Store[K]) *roaring.Bitmap {
	var result *roaring.Bitmap
	for _, sub := range e.exprs {
		if sub == nil {
			continue
		}
		bm := sub.eval(s)
		if result == nil {
			result = bm
		} else {
			result.And(bm)
		}
		// Early termination: an empty intersection stays empty.
		if result.IsEmpty() {
			return result
		}
	}
	if result == nil {
		return roaring.New()
	}
	return result
}

type or[K cmp.Ordered] struct {
	exprs []Expr[K]
}

func (e or[K]) eval(s store.Store[K]) *roaring.Bitmap {
	result := roaring.New()
	for _, sub := range e.exprs {
		if sub == nil {
			continue
		}
		result.Or(sub.eval(s))
	}
	return result
}
