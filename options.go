package idxgo

import (
	"log/slog"

	"github.com/hupe1980/idxgo/resource"
	"github.com/hupe1980/idxgo/store"
)

type options struct {
	keyCapacity      int
	shards           int
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures list constructor behavior.
//
// Options exist to avoid exploding the API surface with store-kind-specific
// constructor variants.
type Option func(*options)

// WithKeyCapacity fixes the key range of dense and signed-integer stores:
// exactly capacity slots are allocated upfront and keys beyond them fail the
// build with ErrRangeOverflow instead of growing the range. Hash stores use
// it as the initial bucket count hint.
//
// Without it the range is derived from the keys observed during the build,
// under a pathology guard relating range to record count.
func WithKeyCapacity(capacity int) Option {
	return func(o *options) {
		o.keyCapacity = capacity
	}
}

// WithShards configures the shard count of the sharded string store.
//
// Sharding partitions the key space by hash so the build can run one
// goroutine per shard on multi-core systems. Queries route point lookups to
// the owning shard, so lookup cost is unchanged.
//
// If shards <= 1, sharding is disabled.
func WithShards(shards int) Option {
	return func(o *options) {
		o.shards = shards
	}
}

// WithResourceController attaches a resource controller. Dense and
// signed-integer slot allocations are charged against its memory budget, and
// the sharded build bounds its workers by the controller's worker budget.
//
// One controller may be shared by many lists to enforce a process-wide limit.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &idxgo.BasicMetricsCollector{}
//	list, _ := idxgo.Hash(records, keyOf, idxgo.WithMetricsCollector(metrics))
//	// ... use list ...
//	stats := metrics.GetStats()
//	fmt.Printf("Lookups: %d, hits: %d\n", stats.LookupCount, stats.LookupHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := idxgo.NewJSONLogger(slog.LevelInfo)
//	list, _ := idxgo.Hash(records, keyOf, idxgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// storeOptions maps the facade options onto the store layer's option struct.
func (o options) storeOptions() []func(*store.Options) {
	return []func(*store.Options){
		func(so *store.Options) {
			so.KeyCapacity = o.keyCapacity
			so.Shards = o.shards
			so.Controller = o.controller
		},
	}
}
