package filestore

import "time"

// Timing is the observed latency of some internal operation.
type Timing struct {
	Name    string
	Total   int64
	Average time.Duration
}

// Timings returns the latencies observed for block writes (including every
// retry) and block reads, across all stores in the process.
func Timings() []Timing {
	return []Timing{
		{
			Name:    "block write",
			Total:   writeThunk.Histogram().Total(),
			Average: writeThunk.Histogram().Average(),
		},
		{
			Name:    "block read",
			Total:   readThunk.Histogram().Total(),
			Average: readThunk.Histogram().Average(),
		},
	}
}
