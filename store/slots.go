package store

import (
	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/resource"
)

const (
	// slotHeaderBytes is the range-proportional cost charged against a
	// resource controller: one postings slice header per slot.
	slotHeaderBytes = 24

	// minDenseSlots is the slot floor below which a derived key range is
	// never rejected.
	minDenseSlots = 4096

	// denseRangeFactor bounds a derived key range to this many slots per
	// indexed position.
	denseRangeFactor = 64
)

// dynamicGuard is the slot bound for a derived (non-fixed) key range holding
// count positions. Keys forcing the range past it indicate a key domain that
// belongs in the hash store.
func dynamicGuard(count int) uint64 {
	if g := uint64(denseRangeFactor) * uint64(count+1); g > minDenseSlots {
		return g
	}
	return minDenseSlots
}

// slotArray is the postings-per-slot backing shared by the dense and
// signed-integer stores. The wrapping store owns the range policy; slotArray
// grows to a requested slot index and keeps the resource accounting straight.
type slotArray struct {
	slots    []postings
	ctrl     *resource.Controller
	reserved int64
}

// init pre-allocates a fixed slot range.
func (a *slotArray) init(capacity int) error {
	if capacity <= 0 {
		return nil
	}
	if err := a.reserve(int64(capacity) * slotHeaderBytes); err != nil {
		return err
	}
	a.slots = make([]postings, capacity)
	return nil
}

// ensure grows the slot range to cover idx, with allowed as the hard bound.
// It reports false when idx is out of range; the caller maps that to its
// typed overflow error. The resource budget is charged before allocating.
func (a *slotArray) ensure(idx, allowed uint64) (bool, error) {
	if idx >= allowed {
		return false, nil
	}
	need := int(idx) + 1
	if need <= len(a.slots) {
		return true, nil
	}
	if need > cap(a.slots) {
		newCap := 2 * cap(a.slots)
		if newCap < need {
			newCap = need
		}
		if uint64(newCap) > allowed {
			newCap = int(allowed)
		}
		if err := a.reserve(int64(newCap-cap(a.slots)) * slotHeaderBytes); err != nil {
			return true, err
		}
		grown := make([]postings, need, newCap)
		copy(grown, a.slots)
		a.slots = grown
		return true, nil
	}
	a.slots = a.slots[:need]
	return true, nil
}

func (a *slotArray) reserve(bytes int64) error {
	if a.ctrl == nil || bytes <= 0 {
		return nil
	}
	if err := a.ctrl.TryAcquireMemory(bytes); err != nil {
		return err
	}
	a.reserved += bytes
	return nil
}

// release returns the reserved budget to the controller.
func (a *slotArray) release() {
	if a.reserved > 0 {
		a.ctrl.ReleaseMemory(a.reserved)
		a.reserved = 0
	}
}

func (a *slotArray) at(idx uint64) postings {
	if idx >= uint64(len(a.slots)) {
		return nil
	}
	return a.slots[idx]
}

// append is the build fast path: positions arrive in collection order, so
// plain appends keep each slot ascending.
func (a *slotArray) append(idx uint64, pos core.Position) (newKey bool) {
	newKey = len(a.slots[idx]) == 0
	a.slots[idx] = append(a.slots[idx], pos)
	return newKey
}

func (a *slotArray) insert(idx uint64, pos core.Position) (added, newKey bool) {
	newKey = len(a.slots[idx]) == 0
	p, added := a.slots[idx].insert(pos)
	a.slots[idx] = p
	return added, added && newKey
}

func (a *slotArray) remove(idx uint64, pos core.Position) (removed, emptied bool) {
	if idx >= uint64(len(a.slots)) {
		return false, false
	}
	p, removed := a.slots[idx].remove(pos)
	if !removed {
		return false, false
	}
	if len(p) == 0 {
		p = nil
	}
	a.slots[idx] = p
	return true, p == nil
}
