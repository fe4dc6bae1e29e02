package store

import (
	"iter"

	"github.com/hupe1980/idxgo/core"
)

// Compile-time checks to ensure Int satisfies the store interfaces.
var _ Store[int32] = (*Int[int32])(nil)
var _ Mutable[int32] = (*Int[int32])(nil)

// Int is the dual-array variant of Dense for signed-integer keys. Non-negative
// keys index one slot array directly; a negative key k indexes a second array
// at ^k, so -1 sits in slot 0, -2 in slot 1 and so on. Lookup stays O(1) and
// memory stays proportional to the key range per side.
//
// The range policy of Dense applies per side: an explicit Options.KeyCapacity
// allots that many slots to each side, a derived range grows under the same
// guard and freezes after a bulk build.
type Int[K IntKey] struct {
	pos    slotArray
	neg    slotArray
	fixed  uint64
	frozen bool
	count  int
	keys   int
	meta   meta[K]
}

// NewInt creates an empty mutable signed-integer store.
func NewInt[K IntKey](optFns ...func(*Options)) (*Int[K], error) {
	opts := applyOptions(optFns)

	d := &Int[K]{
		pos: slotArray{ctrl: opts.Controller},
		neg: slotArray{ctrl: opts.Controller},
	}
	if opts.KeyCapacity > 0 {
		d.fixed = uint64(opts.KeyCapacity)
		if err := d.pos.init(opts.KeyCapacity); err != nil {
			return nil, err
		}
		if err := d.neg.init(opts.KeyCapacity); err != nil {
			d.pos.release()
			return nil, err
		}
	}

	return d, nil
}

// BuildInt bulk-loads a signed-integer store from extracted keys in
// collection order, in the same single pass as BuildDense.
func BuildInt[K IntKey](n int, keys iter.Seq2[core.Position, K], optFns ...func(*Options)) (*Int[K], error) {
	d, err := NewInt[K](optFns...)
	if err != nil {
		return nil, err
	}

	bound := d.fixed
	if bound == 0 {
		bound = dynamicGuard(n)
	}

	for pos, key := range keys {
		arr, idx := d.side(key)
		ok, err := arr.ensure(idx, bound)
		if err != nil {
			d.Release()
			return nil, err
		}
		if !ok {
			d.Release()
			return nil, &RangeOverflowError[K]{Key: key, Capacity: bound}
		}
		if arr.append(idx, pos) {
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
func (d *Int[K]) Positions(key K) []core.Position {
	arr, idx := d.side(key)
	return arr.at(idx)
}

// Contains reports whether key has at least one indexed position.
func (d *Int[K]) Contains(key K) bool {
	return len(d.Positions(key)) > 0
}

// MinKey returns the smallest key present, or false on an empty store.
func (d *Int[K]) MinKey() (K, bool) { return d.meta.min() }

// MaxKey returns the largest key present, or false on an empty store.
func (d *Int[K]) MaxKey() (K, bool) { return d.meta.max() }

// Len returns the total number of indexed positions.
func (d *Int[K]) Len() int { return d.count }

// Keys returns the number of distinct keys present.
func (d *Int[K]) Keys() int { return d.keys }

// Insert indexes pos under key, growing a non-frozen derived range as far as
// the guard permits.
func (d *Int[K]) Insert(key K, pos core.Position) error {
	arr, idx := d.side(key)
	bound := d.allowed(arr)
	ok, err := arr.ensure(idx, bound)
	if err != nil {
		return err
	}
	if !ok {
		return &RangeOverflowError[K]{Key: key, Capacity: bound}
	}

	added, newKey := arr.insert(idx, pos)
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
func (d *Int[K]) Delete(key K, pos core.Position) bool {
	arr, idx := d.side(key)
	removed, emptied := arr.remove(idx, pos)
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
			d.meta.minKey, _ = d.findMin()
		case key == d.meta.maxKey:
			d.meta.maxKey, _ = d.findMax()
		}
	}
	return true
}

// Release returns the store's reserved slot budget to its controller.
func (d *Int[K]) Release() {
	d.pos.release()
	d.neg.release()
}

// side maps a key to its slot array and index: ^k for negative keys, so the
// most negative keys sit deepest in the negative array.
func (d *Int[K]) side(key K) (*slotArray, uint64) {
	if key < 0 {
		return &d.neg, uint64(^key)
	}
	return &d.pos, uint64(key)
}

func (d *Int[K]) allowed(arr *slotArray) uint64 {
	switch {
	case d.fixed > 0:
		return d.fixed
	case d.frozen:
		return uint64(len(arr.slots))
	default:
		return dynamicGuard(d.count)
	}
}

// findMin sweeps the negative array from its most negative slot, then the
// non-negative array upward.
func (d *Int[K]) findMin() (K, bool) {
	for i := len(d.neg.slots); i > 0; i-- {
		if len(d.neg.at(uint64(i-1))) > 0 {
			return ^K(i - 1), true
		}
	}
	for i := range d.pos.slots {
		if len(d.pos.at(uint64(i))) > 0 {
			return K(i), true
		}
	}
	var zero K
	return zero, false
}

// findMax sweeps the non-negative array from its largest slot, then the
// negative array toward -1.
func (d *Int[K]) findMax() (K, bool) {
	for i := len(d.pos.slots); i > 0; i-- {
		if len(d.pos.at(uint64(i-1))) > 0 {
			return K(i - 1), true
		}
	}
	for i := range d.neg.slots {
		if len(d.neg.at(uint64(i))) > 0 {
			return ^K(i), true
		}
	}
	var zero K
	return zero, false
}
