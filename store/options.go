package store

import "github.com/hupe1980/idxgo/resource"

// Options contains configuration options shared by the store constructors.
// Kinds ignore what does not apply to them.
type Options struct {
	// KeyCapacity fixes the key range of dense and signed-integer stores:
	// exactly KeyCapacity slots are allocated upfront and every key >=
	// KeyCapacity (or beyond +-KeyCapacity for signed keys) fails with a
	// RangeOverflowError. If 0, the range is derived from observed keys
	// under a pathology guard (see Dense). Hash stores use it as the
	// initial bucket size hint.
	KeyCapacity int

	// Shards is the shard count of the sharded store. Values <= 1 build a
	// single shard.
	Shards int

	// Controller, when set, charges range-proportional slot allocations
	// against its memory budget and bounds the sharded build's workers.
	Controller *resource.Controller
}

// DefaultOptions contains the default configuration options for stores.
var DefaultOptions = Options{
	KeyCapacity: 0,
	Shards:      1,
}

func applyOptions(optFns []func(*Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}
