package idxgo

import (
	"cmp"
	"iter"
	"time"

	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/filter"
	"github.com/hupe1980/idxgo/store"
)

// Store kinds, for build logging.
const (
	kindDense   = "dense"
	kindInt     = "int"
	kindHash    = "hash"
	kindSharded = "sharded"
)

// List is an indexed, read-only view over a record slice: one store mapping
// derived keys to record positions, plus the records themselves. The records
// slice is borrowed, never copied; it must not be reordered or truncated
// while the list or anything derived from it is alive.
//
// A List is immutable after construction and safe for unlocked concurrent
// reads from any number of goroutines.
type List[T any, K cmp.Ordered] struct {
	records []T
	store   store.Store[K]
	metrics MetricsCollector
	logger  *Logger
}

// Dense creates an indexed list backed by the dense store, for records whose
// keys are small-range unsigned integers. The key extractor is called once
// per record during the single build pass.
func Dense[T any, K store.UintKey](records []T, keyOf func(T) K, optFns ...Option) (*List[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildDense(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuild[T, K](kindDense, records, o, s, err, time.Since(start))
}

// Int creates an indexed list backed by the signed-integer store.
func Int[T any, K store.IntKey](records []T, keyOf func(T) K, optFns ...Option) (*List[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildInt(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuild[T, K](kindInt, records, o, s, err, time.Since(start))
}

// Hash creates an indexed list backed by the hash store, for arbitrary
// ordered keys.
func Hash[T any, K cmp.Ordered](records []T, keyOf func(T) K, optFns ...Option) (*List[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildHash(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuild[T, K](kindHash, records, o, s, err, time.Since(start))
}

// Sharded creates an indexed list backed by the sharded string store. Use
// WithShards to scale the build across cores; lookups route to the owning
// shard and stay O(1).
func Sharded[T any, K ~string](records []T, keyOf func(T) K, optFns ...Option) (*List[T, K], error) {
	o := applyOptions(optFns)
	if err := checkInput(records, keyOf); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := store.BuildSharded(len(records), keySeq(records, keyOf), o.storeOptions()...)
	return finishBuild[T, K](kindSharded, records, o, s, err, time.Since(start))
}

func checkInput[T, K any](records []T, keyOf func(T) K) error {
	if keyOf == nil {
		return ErrNilKeyFunc
	}
	if uint64(len(records)) > uint64(core.MaxPosition)+1 {
		return ErrTooManyRecords
	}
	return nil
}

// keySeq adapts a record slice and extractor to the position→key sequence the
// store layer builds from. It is restartable, which the sharded build relies
// on.
func keySeq[T, K any](records []T, keyOf func(T) K) iter.Seq2[core.Position, K] {
	return func(yield func(core.Position, K) bool) {
		for i := range records {
			if !yield(core.Position(i), keyOf(records[i])) {
				return
			}
		}
	}
}

func finishBuild[T any, K cmp.Ordered](kind string, records []T, o options, s store.Store[K], err error, elapsed time.Duration) (*List[T, K], error) {
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordBuild(len(records), elapsed, err)
		o.logger.LogBuild(kind, len(records), 0, err)
		return nil, err
	}

	o.metricsCollector.RecordBuild(len(records), elapsed, nil)
	o.logger.LogBuild(kind, len(records), s.Keys(), nil)

	return &List[T, K]{
		records: records,
		store:   s,
		metrics: o.metricsCollector,
		logger:  o.logger,
	}, nil
}

// Contains reports whether at least one record is indexed under key. It is a
// store lookup only and does not allocate.
func (l *List[T, K]) Contains(key K) bool {
	return l.store.Contains(key)
}

// Get returns a lazy, restartable sequence of the records indexed under key,
// in ascending position order. A missing key yields an empty sequence, never
// an error. Nothing is allocated beyond the closure.
func (l *List[T, K]) Get(key K) iter.Seq[T] {
	positions := l.store.Positions(key)
	l.metrics.RecordLookup(len(positions))

	return func(yield func(T) bool) {
		for _, pos := range positions {
			if !yield(deref(l.records, pos)) {
				return
			}
		}
	}
}

// GetMany returns the concatenation of Get per requested key, in requested
// order. Records reachable through more than one key are yielded once per
// key; callers needing set semantics use Filter instead.
func (l *List[T, K]) GetMany(keys ...K) iter.Seq[T] {
	return func(yield func(T) bool) {
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
// records in ascending position order, deduplicated regardless of how the
// expression is nested. Evaluation materializes the position set once; the
// returned sequence is restartable over that result.
func (l *List[T, K]) Filter(expr filter.Expr[K]) iter.Seq[T] {
	start := time.Now()
	bm := filter.Eval(l.store, expr)
	l.metrics.RecordFilter(int(bm.GetCardinality()), time.Since(start))

	return func(yield func(T) bool) {
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
func (l *List[T, K]) FilterPositions(expr filter.Expr[K]) []core.Position {
	start := time.Now()
	positions := filter.Positions(l.store, expr)
	l.metrics.RecordFilter(len(positions), time.Since(start))
	return positions
}

// MinKey returns the smallest indexed key, or false on an empty list.
func (l *List[T, K]) MinKey() (K, bool) { return l.store.MinKey() }

// MaxKey returns the largest indexed key, or false on an empty list.
func (l *List[T, K]) MaxKey() (K, bool) { return l.store.MaxKey() }

// Len returns the number of records reachable through the index.
func (l *List[T, K]) Len() int { return l.store.Len() }

// Keys returns the number of distinct keys present.
func (l *List[T, K]) Keys() int { return l.store.Keys() }

// At returns the record at pos.
func (l *List[T, K]) At(pos core.Position) T {
	return deref(l.records, pos)
}

// Items returns the backing record slice, borrowed; callers must not mutate
// it.
func (l *List[T, K]) Items() []T { return l.records }
