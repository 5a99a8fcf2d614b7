package digitknn

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after the dataset has been loaded.
	// samples is the number of loaded samples, err is nil if successful.
	RecordLoad(samples int, duration time.Duration, err error)

	// RecordClassify is called after each classification.
	// k is the number of neighbors requested.
	RecordClassify(k int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClassify(int, time.Duration)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadSamples        atomic.Int64
	LoadTotalNanos     atomic.Int64
	ClassifyCount      atomic.Int64
	ClassifyTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(samples int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadSamples.Add(int64(samples))
}

// RecordClassify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClassify(k int, duration time.Duration) {
	b.ClassifyCount.Add(1)
	b.ClassifyTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:        b.LoadCount.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadSamples:      b.LoadSamples.Load(),
		ClassifyCount:    b.ClassifyCount.Load(),
		ClassifyAvgNanos: b.getAvgClassifyNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgClassifyNanos() int64 {
	count := b.ClassifyCount.Load()
	if count == 0 {
		return 0
	}
	return b.ClassifyTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount        int64
	LoadErrors       int64
	LoadSamples      int64
	ClassifyCount    int64
	ClassifyAvgNanos int64
}

