// Package filestore stores files on an unreliable block device. Each file
// is split into blocks that carry a one byte sentinel, every block is
// written to each replica until it persists as intended, and reads fall
// back to other replicas, rewriting corrupted blocks as they go.
//
// The file index lives only in memory.
package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/zeebo/filestore/device"
	"github.com/zeebo/filestore/internal/debug"
	"github.com/zeebo/filestore/io"
)

// FileMetadata describes where a file lives. Blocks are the indices of the
// first replica; the other replicas are at fixed offsets from them.
type FileMetadata struct {
	Length int
	Blocks []int
}

// T is a replicated file store. It is not thread safe: every method must
// be called from a single goroutine or under an external lock.
type T struct {
	cfg     Config
	dev     io.Device
	files   map[string]FileMetadata
	free    []int
	logger  *Logger
	metrics MetricsCollector
	clock   Clock
}

// New returns a store for the configuration. It fails with a ParameterError
// if the configuration is invalid, or if a device passed with WithDevice
// does not match it.
func New(cfg Config, opts ...Option) (*T, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	dev := o.dev
	if dev == nil {
		var devOpts []device.Option
		if o.seed != nil {
			devOpts = append(devOpts, device.WithSeed(*o.seed))
		}
		dev = device.New(cfg.BlockCount, cfg.BlockSize, cfg.CorruptionRate, devOpts...)
	} else if dev.BlockCount() != cfg.BlockCount || dev.BlockSize() != cfg.BlockSize {
		return nil, Error.Wrap(ParameterError.New(
			"device geometry must match config: %dx%d != %dx%d",
			dev.BlockCount(), dev.BlockSize(), cfg.BlockCount, cfg.BlockSize))
	}

	free := make([]int, cfg.segment())
	for i := range free {
		free[i] = i
	}

	return &T{
		cfg:     cfg,
		dev:     dev,
		files:   make(map[string]FileMetadata),
		free:    free,
		logger:  o.logger,
		metrics: o.metrics,
		clock:   o.clock,
	}, nil
}

// Config returns the configuration of the store.
func (t *T) Config() Config { return t.cfg }

// Free returns the number of free bytes in a single replica.
func (t *T) Free() int { return len(t.free) * t.cfg.BlockSize }

// Stat returns the metadata for the file name, if it exists.
func (t *T) Stat(name string) (FileMetadata, bool) {
	meta, ok := t.files[name]
	if !ok {
		return FileMetadata{}, false
	}
	meta.Blocks = append([]int(nil), meta.Blocks...)
	return meta, true
}

// Names returns the names of every stored file in sorted order.
func (t *T) Names() []string {
	names := make([]string, 0, len(t.files))
	for name := range t.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCorrupted returns true if the content came from a file that could not
// be fully recovered.
func (t *T) IsCorrupted(c Content) bool { return c.IsCorrupted() }

// Delete removes the file and frees its blocks. It fails with a
// NotFoundError if the file does not exist.
func (t *T) Delete(name string) (err error) {
	if !t.remove(name) {
		err = Error.Wrap(NotFoundError.New("%q is not found", name))
	}
	t.logger.LogDelete(context.Background(), name, err)
	t.metrics.RecordDelete(err)
	return err
}

// remove drops the file from the index and returns its first replica's
// blocks to the free list. The other replicas' blocks are implied by the
// offsets and are overwritten by whatever reuses the same indices.
func (t *T) remove(name string) bool {
	meta, ok := t.files[name]
	if !ok {
		return false
	}
	delete(t.files, name)
	t.free = append(t.free, meta.Blocks...)

	debug.Assert("free list partition", t.partitioned)
	return true
}

// partitioned checks that the free list and the files' blocks cover every
// index of a replica exactly once.
func (t *T) partitioned() bool {
	seen := make([]bool, t.cfg.segment())
	claim := func(blocks []int) bool {
		for _, b := range blocks {
			if b < 0 || b >= len(seen) || seen[b] {
				return false
			}
			seen[b] = true
		}
		return true
	}

	if !claim(t.free) {
		return false
	}
	for _, meta := range t.files {
		if !claim(meta.Blocks) {
			return false
		}
	}
	for _, ok := range seen {
		if !ok {
			return false
		}
	}
	return true
}

// since returns the time elapsed since start according to the store clock.
func (t *T) since(start time.Time) time.Duration {
	return t.clock.Now().Sub(start)
}
