package idxgo

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/filter"
	"github.com/hupe1980/idxgo/store"
)

// RWList is the editable counterpart of List: records can be pushed, updated
// and removed after the build, with the index kept consistent on every
// mutation. It owns a copy of the record slice handed to its constructor.
//
// Shared access uses exclusive-write sections that block readers: mutations
// hold a write lock, reads hold a read lock, including the full lifetime of
// every sequence returned by Get, GetMany and Filter. A sequence must not be
// iterated concurrently with a mutation from the same goroutine, as that
// would deadlock.
//
// Views and borrowed slices are unsound under mutation, so RWList has no
// CreateView or Items; At returns a copy instead.
type RWList[T any, K cmp.Ordered] struct {
	mu      sync.RWMutex
	records []T
	store   store.Mutable[K]
	keyOf   func(T) K
	metrics MetricsCollector
	logger  *Logger
}

// DenseRW creates an editable indexed list backed by the dense store. The
// key range observed during the build stays fixed: a later Push or Update
// with a key beyond it fails with ErrRangeOverflow. Size the range upfront
// with WithKeyCapacity when pushes will introduce larger keys.
func DenseRW[T any, K store.UintKey](records []T, keyOf func(T) K, optFns ...Option) (*RWList[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildDense(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuildRW[T, K](kindDense, records, keyOf, o, s, err, time.Since(start))
}

// IntRW creates an editable indexed list backed by the signed-integer store.
// The range policy of DenseRW applies per sign side.
func IntRW[T any, K store.IntKey](records []T, keyOf func(T) K, optFns ...Option) (*RWList[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildInt(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuildRW[T, K](kindInt, records, keyOf, o, s, err, time.Since(start))
}

// HashRW creates an editable indexed list backed by the hash store. The key
// domain is unbounded, so mutations never overflow.
func HashRW[T any, K cmp.Ordered](records []T, keyOf func(T) K, optFns ...Option) (*RWList[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildHash(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuildRW[T, K](kindHash, records, keyOf, o, s, err, time.Since(start))
}

func finishBuildRW[T any, K cmp.Ordered](kind string, records []T, keyOf func(T) K, o options, s store.Mutable[K], err error, elapsed time.Duration) (*RWList[T, K], error) {
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordBuild(len(records), elapsed, err)
		o.logger.LogBuild(kind, len(records), 0, err)
		return nil, err
	}

	o.metricsCollector.RecordBuild(len(records), elapsed, nil)
	o.logger.LogBuild(kind, len(records), s.Keys(), nil)

	return &RWList[T, K]{
		records: slices.Clone(records),
		store:   s,
		keyOf:   keyOf,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}, nil
}

// Push appends item and indexes it under its key, returning the new
// position.
func (l *RWList[T, K]) Push(item T) (core.Position, error) {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if uint64(len(l.records)) > uint64(core.MaxPosition) {
		err := ErrTooManyRecords
		l.metrics.RecordMutation(time.Since(start), err)
		l.logger.LogPush(uint64(len(l.records)), err)
		return 0, err
	}

	pos := core.Position(len(l.records))
	if err := l.store.Insert(l.keyOf(item), pos); err != nil {
		err = translateError(err)
		l.metrics.RecordMutation(time.Since(start), err)
		l.logger.LogPush(uint64(pos), err)
		return 0, err
	}
	l.records = append(l.records, item)

	l.metrics.RecordMutation(time.Since(start), nil)
	l.logger.LogPush(uint64(pos), nil)
	return pos, nil
}

// Update replaces the record at pos. A changed key is reindexed; if indexing
// the new key fails, the old entry is restored and the record left unchanged.
func (l *RWList[T, K]) Update(pos core.Position, item T) error {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if int(pos) >= len(l.records) {
		err := translateError(&PositionOutOfRangeError{Position: pos, Length: len(l.records)})
		l.metrics.RecordMutation(time.Since(start), err)
		l.logger.LogUpdate(uint64(pos), err)
		return err
	}

	oldKey, newKey := l.keyOf(l.records[pos]), l.keyOf(item)
	if newKey != oldKey {
		l.store.Delete(oldKey, pos)
		if err := l.store.Insert(newKey, pos); err != nil {
			l.mustInsert(oldKey, pos) // restore; the old key fit before
			err = translateError(err)
			l.metrics.RecordMutation(time.Since(start), err)
			l.logger.LogUpdate(uint64(pos), err)
			return err
		}
	}
	l.records[pos] = item

	l.metrics.RecordMutation(time.Since(start), nil)
	l.logger.LogUpdate(uint64(pos), nil)
	return nil
}

// Remove deletes and returns the record at pos. The last record is swapped
// into the vacated slot and its index entry rewritten, so removal is O(1)
// plus the reindex, at the cost of record order.
func (l *RWList[T, K]) Remove(pos core.Position) (T, error) {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if int(pos) >= len(l.records) {
		var zero T
		err := translateError(&PositionOutOfRangeError{Position: pos, Length: len(l.records)})
		l.metrics.RecordMutation(time.Since(start), err)
		l.logger.LogRemove(uint64(pos), err)
		return zero, err
	}

	removed := l.records[pos]
	l.store.Delete(l.keyOf(removed), pos)

	last := core.Position(len(l.records) - 1)
	if pos != last {
		moved := l.records[last]
		l.store.Delete(l.keyOf(moved), last)
		l.mustInsert(l.keyOf(moved), pos) // the moved key fit at last
		l.records[pos] = moved
	}
	var zero T
	l.records[last] = zero
	l.records = l.records[:last]

	l.metrics.RecordMutation(time.Since(start), nil)
	l.logger.LogRemove(uint64(pos), nil)
	return removed, nil
}

// mustInsert reindexes a key that is known to fit the store's range; a
// failure indicates index corruption.
func (l *RWList[T, K]) mustInsert(key K, pos core.Position) {
	if err := l.store.Insert(key, pos); err != nil {
		panic(fmt.Sprintf("idxgo: reindex of position %d failed: %v", pos, err))
	}
}

// Contains reports whether at least one record is indexed under key.
func (l *RWList[T, K]) Contains(key K) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Contains(key)
}

// Get returns a lazy, restartable sequence of the records indexed under key,
// in ascending position order. The read lock is held for the lifetime of
// every iteration.
func (l *RWList[T, K]) Get(key K) iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		positions := l.store.Positions(key)
		l.metrics.RecordLookup(len(positions))
		for _, pos := range positions {
			if !yield(deref(l.records, pos)) {
				return
			}
		}
	}
}

// GetMany returns the concatenation of Get per requested key, in requested
// order, under a single read lock.
func (l *RWList[T, K]) GetMany(keys ...K) iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		for _, key := range keys {
			positions := l.store.Positions(key)
			l.metrics.RecordLookup(len(positions))
			for _, pos := range positions {
				if !yield(deref(l.records, pos)) {
					return
				}
			}
		}
	}
}

// Filter evaluates a boolean filter expression and returns the matching
// records in ascending position order, deduplicated. Unlike List.Filter the
// expression is re-evaluated on every iteration, under the read lock, so a
// restarted sequence sees the current state.
func (l *RWList[T, K]) Filter(expr filter.Expr[K]) iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		start := time.Now()
		bm := filter.Eval(l.store, expr)
		l.metrics.RecordFilter(int(bm.GetCardinality()), time.Since(start))

		it := bm.Iterator()
		for it.HasNext() {
			if !yield(deref(l.records, core.Position(it.Next()))) {
				return
			}
		}
	}
}

// FilterPositions evaluates a boolean filter expression into the raw
// ascending, duplicate-free position set.
func (l *RWList[T, K]) FilterPositions(expr filter.Expr[K]) []core.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start := time.Now()
	positions := filter.Positions(l.store, expr)
	l.metrics.RecordFilter(len(positions), time.Since(start))
	return positions
}

// MinKey returns the smallest indexed key, or false on an empty list.
func (l *RWList[T, K]) MinKey() (K, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.MinKey()
}

// MaxKey returns the largest indexed key, or false on an empty list.
func (l *RWList[T, K]) MaxKey() (K, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.MaxKey()
}

// Len returns the number of records.
func (l *RWList[T, K]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Keys returns the number of distinct keys present.
func (l *RWList[T, K]) Keys() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Keys()
}

// At returns a copy of the record at pos.
func (l *RWList[T, K]) At(pos core.Position) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if int(pos) >= len(l.records) {
		var zero T
		return zero, translateError(&PositionOutOfRangeError{Position: pos, Length: len(l.records)})
	}
	return l.records[pos], nil
}
