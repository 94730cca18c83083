package framevault

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
//	    ingestCounter  prometheus.Counter
//	    queryHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordIngest(chunks int, duration time.Duration, err error) {
//	    p.ingestCounter.Add(float64(chunks))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordIngest is called after each Ingest call.
	// chunks is the number of chunks produced, duration is the total time
	// taken, err is nil if successful.
	RecordIngest(chunks int, duration time.Duration, err error)

	// RecordBuildVideo is called after each Build call.
	// frames is the number of frames written, duration is the time taken,
	// err is nil if successful.
	RecordBuildVideo(frames int, duration time.Duration, err error)

	// RecordQuery is called after each Query call.
	// k is the number of neighbors requested, duration is the time taken,
	// err is nil if successful.
	RecordQuery(k int, duration time.Duration, err error)

	// RecordRetrieve is called after each decode Retrieve/RetrieveFrames call.
	// recovered is the number of frames successfully decoded.
	RecordRetrieve(recovered int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordBuildVideo(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordRetrieve(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IngestCount      atomic.Int64
	IngestErrors     atomic.Int64
	IngestChunks     atomic.Int64
	IngestTotalNanos atomic.Int64

	BuildVideoCount      atomic.Int64
	BuildVideoErrors     atomic.Int64
	BuildVideoFrames     atomic.Int64
	BuildVideoTotalNanos atomic.Int64

	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64

	RetrieveCount      atomic.Int64
	RetrieveErrors     atomic.Int64
	RetrieveRecovered  atomic.Int64
	RetrieveTotalNanos atomic.Int64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(chunks int, duration time.Duration, err error) {
	b.IngestCount.Add(1)
	b.IngestChunks.Add(int64(chunks))
	b.IngestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IngestErrors.Add(1)
	}
}

// RecordBuildVideo implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuildVideo(frames int, duration time.Duration, err error) {
	b.BuildVideoCount.Add(1)
	b.BuildVideoFrames.Add(int64(frames))
	b.BuildVideoTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildVideoErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(k int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordRetrieve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRetrieve(recovered int, duration time.Duration, err error) {
	b.RetrieveCount.Add(1)
	b.RetrieveRecovered.Add(int64(recovered))
	b.RetrieveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RetrieveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IngestCount:        b.IngestCount.Load(),
		IngestErrors:       b.IngestErrors.Load(),
		IngestChunks:       b.IngestChunks.Load(),
		IngestAvgNanos:     b.avg(b.IngestTotalNanos.Load(), b.IngestCount.Load()),
		BuildVideoCount:    b.BuildVideoCount.Load(),
		BuildVideoErrors:   b.BuildVideoErrors.Load(),
		BuildVideoFrames:   b.BuildVideoFrames.Load(),
		BuildVideoAvgNanos: b.avg(b.BuildVideoTotalNanos.Load(), b.BuildVideoCount.Load()),
		QueryCount:         b.QueryCount.Load(),
		QueryErrors:        b.QueryErrors.Load(),
		QueryAvgNanos:      b.avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		RetrieveCount:      b.RetrieveCount.Load(),
		RetrieveErrors:     b.RetrieveErrors.Load(),
		RetrieveRecovered:  b.RetrieveRecovered.Load(),
		RetrieveAvgNanos:   b.avg(b.RetrieveTotalNanos.Load(), b.RetrieveCount.Load()),
	}
}

func (b *BasicMetricsCollector) avg(totalNanos, count int64) int64 {
	if count == 0 {
		return 0
	}
	return totalNanos / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IngestCount    int64
	IngestErrors   int64
	IngestChunks   int64
	IngestAvgNanos int64

	BuildVideoCount    int64
	BuildVideoErrors   int64
	BuildVideoFrames   int64
	BuildVideoAvgNanos int64

	QueryCount    int64
	QueryErrors   int64
	QueryAvgNanos int64

	RetrieveCount     int64
	RetrieveErrors    int64
	RetrieveRecovered int64
	RetrieveAvgNanos  int64
}
