package countof

import (
	"sync/atomic"
)

// MetricsCollector collects allocation metrics from the arena and the
// resource controller. Implement it to feed a monitoring system.
type MetricsCollector interface {
	// RecordAlloc is called after each allocation attempt.
	// err is nil if the allocation succeeded.
	RecordAlloc(size ByteCount, err error)

	// RecordFree is called when memory is handed back.
	RecordFree(size ByteCount)

	// RecordReject is called when a request is refused by a memory limit.
	RecordReject(size ByteCount)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(ByteCount, error) {}
func (NoopMetricsCollector) RecordFree(ByteCount)         {}
func (NoopMetricsCollector) RecordReject(ByteCount)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	AllocCount  atomic.Uint64
	AllocErrors atomic.Uint64
	AllocBytes  atomic.Uint64
	FreeCount   atomic.Uint64
	FreeBytes   atomic.Uint64
	RejectCount atomic.Uint64
	RejectBytes atomic.Uint64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(size ByteCount, err error) {
	b.AllocCount.Add(1)
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBytes.Add(size.n)
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(size ByteCount) {
	b.FreeCount.Add(1)
	b.FreeBytes.Add(size.n)
}

// RecordReject implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReject(size ByteCount) {
	b.RejectCount.Add(1)
	b.RejectBytes.Add(size.n)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocCount:  b.AllocCount.Load(),
		AllocErrors: b.AllocErrors.Load(),
		AllocBytes:  Bytes(b.AllocBytes.Load()),
		FreeCount:   b.FreeCount.Load(),
		FreeBytes:   Bytes(b.FreeBytes.Load()),
		RejectCount: b.RejectCount.Load(),
		RejectBytes: Bytes(b.RejectBytes.Load()),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocCount  uint64
	AllocErrors uint64
	AllocBytes  ByteCount
	FreeCount   uint64
	FreeBytes   ByteCount
	RejectCount uint64
	RejectBytes ByteCount
}

// Live returns the bytes allocated and not yet freed.
func (s BasicMetricsStats) Live() ByteCount {
	return s.AllocBytes.Sub(s.FreeBytes)
}
