// Package device provides an in memory block device that corrupts its
// contents at a configurable rate.
package device

import (
	"time"

	"github.com/cespare/xxhash"
	"github.com/zeebo/errs"
	"github.com/zeebo/filestore/internal/debug"
	"github.com/zeebo/filestore/internal/pcg"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("device")

const (
	DefaultBlockCount     = 1024
	DefaultBlockSize      = 8
	DefaultCorruptionRate = 0.01
)

// alphabet is used for all random block content. It contains no zero byte,
// so a corrupted block can never end in one.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Source is the randomness used to decide and produce corruption.
// *math/rand.Rand satisfies it.
type Source interface {
	// Float64 returns a number uniformly in [0, 1).
	Float64() float64

	// Intn returns a number uniformly in [0, n).
	Intn(n int) int
}

// Option configures a device.
type Option func(*T)

// WithSource uses src for all random decisions.
func WithSource(src Source) Option {
	return func(t *T) { t.src = src }
}

// WithSeed uses a pcg generator seeded with seed for all random decisions.
func WithSeed(seed uint64) Option {
	return func(t *T) {
		gen := pcg.New(seed, 0)
		t.src = &gen
	}
}

// T is a simulated block device. Every Read and Write has an independent
// chance of replacing the block with random content, and that replacement
// is permanent. It is not thread safe.
type T struct {
	size  int
	count int
	rate  float64
	src   Source
	buf   []byte // count blocks of size bytes each
}

// New returns a device with blockCount blocks of blockSize bytes, each
// filled with random content. Every access is corrupted with probability
// rate.
func New(blockCount, blockSize int, rate float64, opts ...Option) *T {
	debug.Assert("positive geometry", func() bool {
		return blockCount >= 0 && blockSize > 0
	})

	t := &T{
		size:  blockSize,
		count: blockCount,
		rate:  rate,
		buf:   make([]byte, blockCount*blockSize),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.src == nil {
		gen := pcg.New(uint64(time.Now().UnixNano()), 0)
		t.src = &gen
	}

	t.randomize(t.buf)
	return t
}

// BlockSize returns the size of every block in bytes.
func (t *T) BlockSize() int { return t.size }

// BlockCount returns the number of blocks.
func (t *T) BlockCount() int { return t.count }

// CorruptionRate returns the probability that an access corrupts a block.
func (t *T) CorruptionRate() float64 { return t.rate }

// SetCorruptionRate changes the probability that an access corrupts a block.
func (t *T) SetCorruptionRate(rate float64) { t.rate = rate }

// Read returns the content of the block at index. The read may corrupt the
// block, in which case the original content is lost and the corrupted
// content is returned and seen by every later read.
func (t *T) Read(index int) ([]byte, error) {
	blk, err := t.block(index)
	if err != nil {
		return nil, err
	}
	return t.persist(blk, blk), nil
}

// Write stores the first BlockSize bytes of content into the block at
// index. If content is shorter than a block, the rest of the block keeps
// its existing bytes. The write may be corrupted; the returned bytes are
// always exactly what was persisted.
func (t *T) Write(index int, content []byte) ([]byte, error) {
	blk, err := t.block(index)
	if err != nil {
		return nil, err
	}

	merged := make([]byte, t.size)
	copy(merged, blk)
	copy(merged, content)

	return t.persist(blk, merged), nil
}

// Peek returns the content of the block at index without the chance of
// corrupting it.
func (t *T) Peek(index int) ([]byte, error) {
	blk, err := t.block(index)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), blk...), nil
}

// Fingerprint returns a hash of the content of every block. It does not
// corrupt anything.
func (t *T) Fingerprint() uint64 {
	return xxhash.Sum64(t.buf)
}

// block returns the storage for the block at index.
func (t *T) block(index int) ([]byte, error) {
	if index < 0 || index >= t.count {
		return nil, Error.New("block index out of range: %d not in [0, %d)", index, t.count)
	}
	off := index * t.size
	return t.buf[off : off+t.size : off+t.size], nil
}

// persist applies the corruption model to candidate, stores the result
// into blk and returns a copy of it.
func (t *T) persist(blk, candidate []byte) []byte {
	if t.src.Float64() < t.rate {
		t.randomize(blk)
	} else {
		copy(blk, candidate)
	}

	debug.Assert("block length", func() bool { return len(blk) == t.size })

	return append([]byte(nil), blk...)
}

// randomize fills buf with random letters.
func (t *T) randomize(buf []byte) {
	for i := range buf {
		buf[i] = alphabet[t.src.Intn(len(alphabet))]
	}
}
