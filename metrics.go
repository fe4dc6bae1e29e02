package idxgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter    prometheus.Counter
//	    filterHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBuild(records int, duration time.Duration, err error) {
//	    p.buildCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// records is the number of records indexed, duration is the total time
	// taken, err is nil if successful.
	RecordBuild(records int, duration time.Duration, err error)

	// RecordLookup is called after each point lookup (Contains/Get/GetMany
	// per requested key). hits is the number of positions found.
	RecordLookup(hits int)

	// RecordFilter is called after each filter evaluation.
	// matches is the number of positions in the result set,
	// duration is the time taken to evaluate the expression.
	RecordFilter(matches int, duration time.Duration)

	// RecordViewCreate is called after each view creation.
	// visible is the number of keys the view exposes.
	RecordViewCreate(visible int)

	// RecordMutation is called after each push/update/remove operation.
	RecordMutation(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLookup(int)                      {}
func (NoopMetricsCollector) RecordFilter(int, time.Duration)       {}
func (NoopMetricsCollector) RecordViewCreate(int)                  {}
func (NoopMetricsCollector) RecordMutation(time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildRecords     atomic.Int64
	BuildTotalNanos  atomic.Int64
	LookupCount      atomic.Int64
	LookupHits       atomic.Int64
	FilterCount      atomic.Int64
	FilterMatches    atomic.Int64
	FilterTotalNanos atomic.Int64
	ViewCount        atomic.Int64
	MutationCount    atomic.Int64
	MutationErrors   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(records int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildRecords.Add(int64(records))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(hits int) {
	b.LookupCount.Add(1)
	b.LookupHits.Add(int64(hits))
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(matches int, duration time.Duration) {
	b.FilterCount.Add(1)
	b.FilterMatches.Add(int64(matches))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
}

// RecordViewCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordViewCreate(visible int) {
	b.ViewCount.Add(1)
}

// RecordMutation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMutation(duration time.Duration, err error) {
	b.MutationCount.Add(1)
	if err != nil {
		b.MutationErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildRecords:   b.BuildRecords.Load(),
		BuildAvgNanos:  b.getAvgBuildNanos(),
		LookupCount:    b.LookupCount.Load(),
		LookupHits:     b.LookupHits.Load(),
		FilterCount:    b.FilterCount.Load(),
		FilterMatches:  b.FilterMatches.Load(),
		FilterAvgNanos: b.getAvgFilterNanos(),
		ViewCount:      b.ViewCount.Load(),
		MutationCount:  b.MutationCount.Load(),
		MutationErrors: b.MutationErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgFilterNanos() int64 {
	count := b.FilterCount.Load()
	if count == 0 {
		return 0
	}
	return b.FilterTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildRecords   int64
	BuildAvgNanos  int64
	LookupCount    int64
	LookupHits     int64
	FilterCount    int64
	FilterMatches  int64
	FilterAvgNanos int64
	ViewCount      int64
	MutationCount  int64
	MutationErrors int64
}
