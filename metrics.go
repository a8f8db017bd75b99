package filestore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordPut is called after each put. blocks is the number of blocks
	// per replica the content needed.
	RecordPut(blocks int, duration time.Duration, err error)

	// RecordGet is called after each get. corrupted is true if the file
	// could not be recovered and was deleted.
	RecordGet(corrupted bool, duration time.Duration, err error)

	// RecordDelete is called after each delete.
	RecordDelete(err error)

	// RecordBlockWrite is called after each retried block write with the
	// number of device writes it took.
	RecordBlockWrite(attempts int, duration time.Duration, err error)

	// RecordRepair is called after a corrupted block is rewritten from
	// another replica. ok is false if the repair write itself was corrupted.
	RecordRepair(ok bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordGet(bool, time.Duration, error)       {}
func (NoopMetricsCollector) RecordDelete(error)                         {}
func (NoopMetricsCollector) RecordBlockWrite(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRepair(bool)                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	PutCount      atomic.Int64
	PutErrors     atomic.Int64
	PutBlocks     atomic.Int64
	PutTotalNanos atomic.Int64

	GetCount      atomic.Int64
	GetErrors     atomic.Int64
	GetCorrupted  atomic.Int64
	GetTotalNanos atomic.Int64

	DeleteCount  atomic.Int64
	DeleteErrors atomic.Int64

	BlockWrites   atomic.Int64
	WriteAttempts atomic.Int64
	WriteTimeouts atomic.Int64

	Repairs        atomic.Int64
	RepairFailures atomic.Int64
}

func (b *BasicMetricsCollector) RecordPut(blocks int, duration time.Duration, err error) {
	b.PutCount.Add(1)
	b.PutTotalNanos.Add(int64(duration))
	if err != nil {
		b.PutErrors.Add(1)
		return
	}
	b.PutBlocks.Add(int64(blocks))
}

func (b *BasicMetricsCollector) RecordGet(corrupted bool, duration time.Duration, err error) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(int64(duration))
	if err != nil {
		b.GetErrors.Add(1)
	}
	if corrupted {
		b.GetCorrupted.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordDelete(err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordBlockWrite(attempts int, _ time.Duration, err error) {
	b.BlockWrites.Add(1)
	b.WriteAttempts.Add(int64(attempts))
	if err != nil {
		b.WriteTimeouts.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordRepair(ok bool) {
	if ok {
		b.Repairs.Add(1)
	} else {
		b.RepairFailures.Add(1)
	}
}

// Stats is a point in time copy of a BasicMetricsCollector.
type Stats struct {
	PutCount       int64
	PutErrors      int64
	AvgPutLatency  time.Duration
	GetCount       int64
	GetCorrupted   int64
	AvgGetLatency  time.Duration
	DeleteCount    int64
	BlockWrites    int64
	WriteAttempts  int64
	WriteTimeouts  int64
	Repairs        int64
	RepairFailures int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		PutCount:       b.PutCount.Load(),
		PutErrors:      b.PutErrors.Load(),
		GetCount:       b.GetCount.Load(),
		GetCorrupted:   b.GetCorrupted.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		BlockWrites:    b.BlockWrites.Load(),
		WriteAttempts:  b.WriteAttempts.Load(),
		WriteTimeouts:  b.WriteTimeouts.Load(),
		Repairs:        b.Repairs.Load(),
		RepairFailures: b.RepairFailures.Load(),
	}
	if s.PutCount > 0 {
		s.AvgPutLatency = time.Duration(b.PutTotalNanos.Load() / s.PutCount)
	}
	if s.GetCount > 0 {
		s.AvgGetLatency = time.Duration(b.GetTotalNanos.Load() / s.GetCount)
	}
	return s
}
