package idxgo

import (
	"iter"
	"slices"
	"testing"

	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/filter"
	"github.com/hupe1980/idxgo/resource"
	"github.com/hupe1980/idxgo/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type car struct {
	ID   uint32
	Name string
}

var cars = []car{{1, "BMW"}, {2, "VW"}, {3, "Audi"}}

func carID(c car) uint32 { return c.ID }

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func TestList(t *testing.T) {
	t.Run("GetAndGetMany", func(t *testing.T) {
		list, err := Dense(cars, carID)
		require.NoError(t, err)

		assert.Equal(t, []car{{2, "VW"}}, collect(list.Get(2)))
		assert.Empty(t, collect(list.Get(9)))

		// Requested-key order, then position order.
		assert.Equal(t, []car{{2, "VW"}, {1, "BMW"}}, collect(list.GetMany(2, 1)))
	})

	t.Run("GetManyPreservesDuplicates", func(t *testing.T) {
		list, err := Hash(cars, func(c car) string { return c.Name })
		require.NoError(t, err)

		got := collect(list.GetMany("VW", "VW"))
		assert.Equal(t, []car{{2, "VW"}, {2, "VW"}}, got)
	})

	t.Run("GetIsRestartable", func(t *testing.T) {
		list, err := Dense(cars, carID)
		require.NoError(t, err)

		seq := list.Get(1)
		assert.Equal(t, collect(seq), collect(seq))
	})

	t.Run("Filter", func(t *testing.T) {
		list, err := Dense(cars, carID)
		require.NoError(t, err)

		got := collect(list.Filter(filter.Or(filter.Eq[uint32](1), filter.Eq[uint32](2))))
		assert.Equal(t, []car{{1, "BMW"}, {2, "VW"}}, got)

		assert.Empty(t, collect(list.Filter(filter.And(filter.Eq[uint32](1), filter.Eq[uint32](2)))))

		assert.Equal(t, []core.Position{0, 1},
			list.FilterPositions(filter.In[uint32](1, 2)))
	})

	t.Run("FilterDeduplicatesAcrossKeys", func(t *testing.T) {
		dup := []car{{1, "BMW"}, {1, "BMW M3"}, {2, "VW"}}
		list, err := Dense(dup, carID)
		require.NoError(t, err)

		// Positions ascending, each exactly once, however the union nests.
		a := list.FilterPositions(filter.Or(filter.Eq[uint32](1), filter.Eq[uint32](1), filter.Eq[uint32](2)))
		b := list.FilterPositions(filter.Or(filter.Eq[uint32](2), filter.Or(filter.Eq[uint32](1), filter.Eq[uint32](1))))
		assert.Equal(t, []core.Position{0, 1, 2}, a)
		assert.Equal(t, a, b)
	})

	t.Run("MinMaxAndCounts", func(t *testing.T) {
		list, err := Dense(cars, carID)
		require.NoError(t, err)

		minKey, ok := list.MinKey()
		require.True(t, ok)
		assert.Equal(t, uint32(1), minKey)
		maxKey, ok := list.MaxKey()
		require.True(t, ok)
		assert.Equal(t, uint32(3), maxKey)

		assert.Equal(t, 3, list.Len())
		assert.Equal(t, 3, list.Keys())
		assert.Equal(t, car{3, "Audi"}, list.At(2))
		assert.Equal(t, cars, list.Items())
	})

	t.Run("EmptyBuild", func(t *testing.T) {
		list, err := Hash(nil, func(c car) string { return c.Name })
		require.NoError(t, err)

		_, ok := list.MinKey()
		assert.False(t, ok)
		assert.Empty(t, collect(list.Get("BMW")))
	})

	t.Run("IntKeys", func(t *testing.T) {
		type reading struct {
			Celsius int
			Station string
		}
		readings := []reading{{-5, "north"}, {12, "south"}, {-5, "east"}}

		list, err := Int(readings, func(r reading) int { return r.Celsius })
		require.NoError(t, err)

		assert.Equal(t, []reading{{-5, "north"}, {-5, "east"}}, collect(list.Get(-5)))
		minKey, _ := list.MinKey()
		assert.Equal(t, -5, minKey)
	})

	t.Run("ShardedKeys", func(t *testing.T) {
		list, err := Sharded(cars, func(c car) string { return c.Name }, WithShards(4))
		require.NoError(t, err)

		assert.Equal(t, []car{{2, "VW"}}, collect(list.Get("VW")))
		assert.Equal(t, 3, list.Keys())
	})
}

func TestList_Errors(t *testing.T) {
	t.Run("NilKeyFunc", func(t *testing.T) {
		_, err := Dense[car, uint32](cars, nil)
		assert.ErrorIs(t, err, ErrNilKeyFunc)
	})

	t.Run("RangeOverflow", func(t *testing.T) {
		_, err := Dense(cars, carID, WithKeyCapacity(2))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRangeOverflow)

		var roe *store.RangeOverflowError[uint32]
		require.ErrorAs(t, err, &roe)
		assert.Equal(t, uint32(2), roe.Key)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64})
		_, err := Dense(cars, carID, WithKeyCapacity(4096), WithResourceController(ctrl))
		assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	})
}

func TestList_DerefInvariant(t *testing.T) {
	// A store emitting positions beyond the records indicates a construction
	// bug and must fail loudly.
	s, err := store.NewHash[string]()
	require.NoError(t, err)
	require.NoError(t, s.Insert("ghost", 10))

	list := &List[car, string]{
		records: cars,
		store:   s,
		metrics: NoopMetricsCollector{},
		logger:  NoopLogger(),
	}

	assert.Panics(t, func() {
		collect(list.Get("ghost"))
	})
}

func TestList_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	list, err := Dense(cars, carID, WithMetricsCollector(metrics))
	require.NoError(t, err)

	collect(list.Get(1))
	collect(list.GetMany(1, 2))
	collect(list.Filter(filter.Eq[uint32](1)))
	list.CreateView(1)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(3), stats.BuildRecords)
	assert.Equal(t, int64(3), stats.LookupCount)
	assert.Equal(t, int64(3), stats.LookupHits)
	assert.Equal(t, int64(1), stats.FilterCount)
	assert.Equal(t, int64(1), stats.FilterMatches)
	assert.Equal(t, int64(1), stats.ViewCount)
}

func BenchmarkGet(b *testing.B) {
	records := make([]car, 10000)
	for i := range records {
		records[i] = car{ID: uint32(i % 100), Name: "car"}
	}
	list, err := Dense(records, carID)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range list.Get(uint32(i % 100)) {
		}
	}
}

func BenchmarkFilter(b *testing.B) {
	records := make([]car, 10000)
	for i := range records {
		records[i] = car{ID: uint32(i % 100), Name: "car"}
	}
	list, err := Dense(records, carID)
	if err != nil {
		b.Fatal(err)
	}
	expr := filter.Or(filter.Eq[uint32](1), filter.Eq[uint32](2), filter.Eq[uint32](3))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = list.FilterPositions(expr)
	}
}

func TestList_PartitionInvariant(t *testing.T) {
	records := make([]car, 50)
	for i := range records {
		records[i] = car{ID: uint32(i % 7), Name: "car"}
	}
	list, err := Dense(records, carID)
	require.NoError(t, err)

	var all []core.Position
	for k := uint32(0); k < 7; k++ {
		all = append(all, list.FilterPositions(filter.Eq(k))...)
	}
	slices.Sort(all)

	require.Len(t, all, len(records))
	for i, pos := range all {
		assert.Equal(t, core.Position(i), pos)
	}
}
