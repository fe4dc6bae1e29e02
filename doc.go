// Package idxgo provides an embedded in-memory secondary index for Go slices.
//
// Idxgo sits in front of an ordered, read-only record slice and answers
// key-based lookups in sub-linear time: a store maps every derived key to the
// positions of the records carrying it, built once in a single pass.
//
// # Quick Start
//
//	type Car struct {
//	    ID   uint32
//	    Name string
//	}
//
//	cars := []Car{{1, "BMW"}, {2, "VW"}, {3, "Audi"}}
//
//	list, _ := idxgo.Dense(cars, func(c Car) uint32 { return c.ID })
//
//	for car := range list.Get(2) {
//	    fmt.Println(car.Name) // VW
//	}
//
// # Store Kinds
//
// Pick the store kind by key shape:
//
//	// Dense: small-range unsigned-integer keys, O(1) array lookup.
//	list, _ := idxgo.Dense(cars, carID)
//
//	// Int: signed-integer keys, dual-array variant of Dense.
//	list, _ := idxgo.Int(readings, func(r Reading) int { return r.Celsius })
//
//	// Hash: arbitrary ordered keys.
//	list, _ := idxgo.Hash(cars, func(c Car) string { return c.Name })
//
//	// Sharded: string keys, multi-core build via hash-partitioned shards.
//	list, _ := idxgo.Sharded(docs, docTag, idxgo.WithShards(8))
//
// # Queries
//
// Get and GetMany are lazy and allocation-free; Filter evaluates a boolean
// expression into a deduplicated, ascending position set:
//
//	list.Contains(2)
//	list.Get(2)                                      // records with key 2
//	list.GetMany(2, 1)                               // key order, then position order
//	list.Filter(filter.Or(filter.Eq(1), filter.Eq(2)))
//	list.MinKey(), list.MaxKey()                     // maintained during the build
//
// # Views
//
// A view restricts the visible keys without copying index data:
//
//	view := list.CreateView(1, 3)
//	view.Contains(2) // false, even though list.Contains(2) is true
//
// # Mutation
//
// List is immutable and lock-free for readers. The RWList variants add
// push/update/remove under a read-write lock:
//
//	rw, _ := idxgo.HashRW(cars, func(c Car) string { return c.Name })
//	pos, _ := rw.Push(Car{4, "Porsche"})
//
// # Key Features
//
//   - Single-pass bulk build, O(1) point lookups
//   - Boolean filter algebra on Roaring bitmaps
//   - Zero-copy views over restricted key sets
//   - Incremental min/max key metadata
//   - Optional memory and build-worker budgeting
//   - Structured logging (slog) and pluggable metrics
package idxgo
