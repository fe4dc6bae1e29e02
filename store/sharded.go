package store

import (
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/idxgo/core"
	"golang.org/x/sync/errgroup"
)

// Compile-time check to ensure Sharded satisfies the read interface.
var _ Store[string] = (*Sharded[string])(nil)

// Sharded is a string-keyed hash store partitioned into N shards routed by
// xxhash. Each shard owns a disjoint slice of the key space, so the build can
// run one goroutine per shard without contention. Point lookups route to the
// owning shard; Len, Keys and the min/max summary are aggregated once at the
// end of the build.
//
// Sharded is read-only: it satisfies Store but not Mutable.
type Sharded[K ~string] struct {
	shards []*Hash[K]
	count  int
	keys   int
	meta   meta[K]
}

// BuildSharded bulk-loads a sharded store with Options.Shards partitions
// (values <= 1 build a single shard). The key sequence must be restartable:
// every shard's build goroutine replays it and keeps only the keys it owns.
// When a resource controller is configured its worker budget bounds the
// number of goroutines building concurrently.
func BuildSharded[K ~string](n int, keys iter.Seq2[core.Position, K], optFns ...func(*Options)) (*Sharded[K], error) {
	opts := applyOptions(optFns)
	numShards := opts.Shards
	if numShards <= 1 {
		numShards = 1
	}

	s := &Sharded[K]{shards: make([]*Hash[K], numShards)}

	g := new(errgroup.Group)
	if opts.Controller != nil {
		g.SetLimit(opts.Controller.MaxBuildWorkers())
	}

	for i := range s.shards {
		g.Go(func() error {
			shard := &Hash[K]{buckets: make(map[K]postings, n/numShards+1)}
			for pos, key := range keys {
				if xxhash.Sum64String(string(key))%uint64(numShards) != uint64(i) {
					continue
				}
				shard.buckets[key] = append(shard.buckets[key], pos)
				shard.count++
				shard.meta.observe(key)
			}
			s.shards[i] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, shard := range s.shards {
		s.count += shard.count
		s.keys += len(shard.buckets)
		if k, ok := shard.meta.min(); ok {
			s.meta.observe(k)
		}
		if k, ok := shard.meta.max(); ok {
			s.meta.observe(k)
		}
	}

	return s, nil
}

// Positions returns the ascending positions indexed under key, or nil.
// The slice is borrowed and must not be mutated.
func (s *Sharded[K]) Positions(key K) []core.Position {
	return s.shardFor(key).Positions(key)
}

// Contains reports whether key has at least one indexed position.
func (s *Sharded[K]) Contains(key K) bool {
	return s.shardFor(key).Contains(key)
}

// MinKey returns the smallest key present, or false on an empty store.
func (s *Sharded[K]) MinKey() (K, bool) { return s.meta.min() }

// MaxKey returns the largest key present, or false on an empty store.
func (s *Sharded[K]) MaxKey() (K, bool) { return s.meta.max() }

// Len returns the total number of indexed positions.
func (s *Sharded[K]) Len() int { return s.count }

// Keys returns the number of distinct keys present.
func (s *Sharded[K]) Keys() int { return s.keys }

// Shards returns the shard count.
func (s *Sharded[K]) Shards() int { return len(s.shards) }

func (s *Sharded[K]) shardFor(key K) *Hash[K] {
	return s.shards[xxhash.Sum64String(string(key))%uint64(len(s.shards))]
}
