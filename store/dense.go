package store

import (
	"iter"

	"github.com/hupe1980/idxgo/core"
)

// Compile-time checks to ensure Dense satisfies the store interfaces.
var _ Store[uint32] = (*Dense[uint32])(nil)
var _ Mutable[uint32] = (*Dense[uint32])(nil)

// Dense is the array-backed store for small-range unsigned-integer keys: the
// key indexes its slot directly, giving O(1) lookups and memory proportional
// to the key range rather than the record count.
//
// The key range is never grown silently past its bound. With
// Options.KeyCapacity set, exactly that many slots exist and larger keys fail
// with a RangeOverflowError. With a derived range, growth stops at
// max(4096, 64 x record count): a bulk build freezes the observed range
// afterwards, while a store assembled through Insert keeps the guard relative
// to its live position count.
type Dense[K UintKey] struct {
	arr    slotArray
	fixed  uint64 // explicit key capacity; 0 when the range is derived
	frozen bool   // bulk-built: the derived range no longer grows
	count  int
	keys   int
	meta   meta[K]
}

// NewDense creates an empty mutable dense store.
func NewDense[K UintKey](optFns ...func(*Options)) (*Dense[K], error) {
	opts := applyOptions(optFns)

	d := &Dense[K]{arr: slotArray{ctrl: opts.Controller}}
	if opts.KeyCapacity > 0 {
		d.fixed = uint64(opts.KeyCapacity)
		if err := d.arr.init(opts.KeyCapacity); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// BuildDense bulk-loads a dense store from extracted keys in collection
// order: one pass, appending each position to its key's slot and feeding the
// min/max summary as keys are seen. n is the record count; it sizes the
// range guard for derived capacities.
func BuildDense[K UintKey](n int, keys iter.Seq2[core.Position, K], optFns ...func(*Options)) (*Dense[K], error) {
	d, err := NewDense[K](optFns...)
	if err != nil {
		return nil, err
	}

	bound := d.fixed
	if bound == 0 {
		bound = dynamicGuard(n)
	}

	for pos, key := range keys {
		ok, err := d.arr.ensure(uint64(key), bound)
		if err != nil {
			d.arr.release()
			return nil, err
		}
		if !ok {
			d.arr.release()
			return nil, &RangeOverflowError[K]{Key: key, Capacity: bound}
		}
		if d.arr.append(uint64(key), pos) {
			d.keys++
		}
		d.count++
		d.meta.observe(key)
	}

	if d.fixed == 0 {
		d.frozen = true
	}

	return d, nil
}

// Positions returns the ascending positions indexed under key, or nil.
// The slice is borrowed and must not be mutated.
func (d *Dense[K]) Positions(key K) []core.Position {
	return d.arr.at(uint64(key))
}

// Contains reports whether key has at least one indexed position.
func (d *Dense[K]) Contains(key K) bool {
	return len(d.arr.at(uint64(key))) > 0
}

// MinKey returns the smallest key present, or false on an empty store.
func (d *Dense[K]) MinKey() (K, bool) { return d.meta.min() }

// MaxKey returns the largest key present, or false on an empty store.
func (d *Dense[K]) MaxKey() (K, bool) { return d.meta.max() }

// Len returns the total number of indexed positions.
func (d *Dense[K]) Len() int { return d.count }

// Keys returns the number of distinct keys present.
func (d *Dense[K]) Keys() int { return d.keys }

// Capacity returns the store's currently allocatable key range.
func (d *Dense[K]) Capacity() uint64 { return d.allowed() }

// Insert indexes pos under key, growing a non-frozen derived range as far as
// the guard permits.
func (d *Dense[K]) Insert(key K, pos core.Position) error {
	bound := d.allowed()
	ok, err := d.arr.ensure(uint64(key), bound)
	if err != nil {
		return err
	}
	if !ok {
		return &RangeOverflowError[K]{Key: key, Capacity: bound}
	}

	added, newKey := d.arr.insert(uint64(key), pos)
	if !added {
		return nil
	}
	if newKey {
		d.keys++
	}
	d.count++
	d.meta.observe(key)
	return nil
}

// Delete removes pos from key's positions, reporting whether it was present.
func (d *Dense[K]) Delete(key K, pos core.Position) bool {
	removed, emptied := d.arr.remove(uint64(key), pos)
	if !removed {
		return false
	}

	d.count--
	if emptied {
		d.keys--
		switch {
		case d.count == 0:
			d.meta.reset()
		case key == d.meta.minKey:
			d.rescanMin()
		case key == d.meta.maxKey:
			d.rescanMax()
		}
	}
	return true
}

// Release returns the store's reserved slot budget to its controller.
func (d *Dense[K]) Release() { d.arr.release() }

func (d *Dense[K]) allowed() uint64 {
	switch {
	case d.fixed > 0:
		return d.fixed
	case d.frozen:
		return uint64(len(d.arr.slots))
	default:
		return dynamicGuard(d.count)
	}
}

// rescanMin walks from the vacated minimum toward the maximum for the next
// occupied slot.
func (d *Dense[K]) rescanMin() {
	lo, hi := uint64(d.meta.minKey), uint64(d.meta.maxKey)
	for i := lo + 1; i <= hi; i++ {
		if len(d.arr.at(i)) > 0 {
			d.meta.minKey = K(i)
			return
		}
	}
	d.meta.reset()
}

// rescanMax walks from the vacated maximum toward the minimum.
func (d *Dense[K]) rescanMax() {
	lo, hi := uint64(d.meta.minKey), uint64(d.meta.maxKey)
	for i := hi; i > lo; i-- {
		if len(d.arr.at(i-1)) > 0 {
			d.meta.maxKey = K(i - 1)
			return
		}
	}
	d.meta.reset()
}
