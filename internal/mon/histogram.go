package mon

import (
	"sync/atomic"
	"time"
)

const (
	bufferShift = 8 // 256 elements
	bufferElems = 1 << bufferShift
	bufferMask  = bufferElems - 1
)

// Histogram is a ring histogram of durations that have been observed.
type Histogram struct {
	total   int64
	current int64
	durs    [bufferElems]int64
}

// start should be called before done, to keep track of concurrent executions.
func (h *Histogram) start() { atomic.AddInt64(&h.current, 1) }

// done stores the duration in the ring buffer, incrementing the count.
func (h *Histogram) done(dur int64) {
	loc := &h.durs[(atomic.AddInt64(&h.total, 1)-1)&bufferMask]
	atomic.StoreInt64(loc, dur)
	atomic.AddInt64(&h.current, -1)
}

// Total returns the amount of times a duration has been added to the histogram.
func (h *Histogram) Total() int64 { return atomic.LoadInt64(&h.total) }

// Current returns the amount of currently recording executions exist
func (h *Histogram) Current() int64 { return atomic.LoadInt64(&h.current) }

// dursLen returns the number of valid entries in the durs buffer.
func (h *Histogram) dursLen() int {
	n := h.Total()
	if n > bufferElems {
		return bufferElems
	}
	return int(n)
}

// Durations returns a copy of observed durations.
func (h *Histogram) Durations() []int64 {
	out := make([]int64, h.dursLen())
	for i := range out {
		out[i] = atomic.LoadInt64(&h.durs[i&bufferMask])
	}
	return out
}

// Average returns the average of the observed durations. It is zero if
// nothing has been observed.
func (h *Histogram) Average() time.Duration {
	n := h.dursLen()
	if n == 0 {
		return 0
	}
	total := int64(0)
	for i := 0; i < n; i++ {
		total += atomic.LoadInt64(&h.durs[i])
	}
	return time.Duration(total / int64(n))
}

// Thunk keeps timing information for some operation. The zero value is
// ready to use.
type Thunk struct {
	his Histogram
}

// Start begins timing an execution. Stop must be called on the returned
// Timer to record it.
func (t *Thunk) Start() Timer {
	t.his.start()
	return Timer{his: &t.his, start: time.Now()}
}

// Histogram returns the histogram of durations recorded by the thunk.
func (t *Thunk) Histogram() *Histogram { return &t.his }

// Timer is an in flight execution of a Thunk.
type Timer struct {
	his   *Histogram
	start time.Time
}

// Stop records the time since the timer started and returns it.
func (t Timer) Stop() time.Duration {
	dur := time.Since(t.start)
	t.his.done(int64(dur))
	return dur
}
