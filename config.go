package filestore

import (
	"time"

	"github.com/zeebo/filestore/device"
)

// Config holds the parameters of a store.
type Config struct {
	// Replicas is the number of copies written for every block.
	Replicas int

	// Timeout bounds how long a single block write may keep retrying.
	Timeout time.Duration

	// BlockCount is the number of blocks on the device. Each replica gets
	// BlockCount / Replicas of them; any remainder is unused.
	BlockCount int

	// BlockSize is the size of a device block. One byte of every block is
	// reserved for the corruption sentinel.
	BlockSize int

	// CorruptionRate is the probability that any device access corrupts
	// the block it touches.
	CorruptionRate float64
}

// DefaultConfig returns the default configuration: a single replica, a one
// second write timeout, and a reliable device of 1024 blocks of 8 bytes.
func DefaultConfig() Config {
	return Config{
		Replicas:       1,
		Timeout:        time.Second,
		BlockCount:     device.DefaultBlockCount,
		BlockSize:      device.DefaultBlockSize,
		CorruptionRate: 0,
	}
}

// Validate checks that every parameter is in range.
func (c Config) Validate() error {
	switch {
	case c.Replicas <= 0:
		return Error.Wrap(ParameterError.New("replicas must be a positive integer: %d", c.Replicas))
	case c.BlockCount < 1:
		return Error.Wrap(ParameterError.New("block_count must be at least 1: %d", c.BlockCount))
	case c.Replicas > c.BlockCount:
		return Error.Wrap(ParameterError.New("replicas must be <= block_count: %d > %d", c.Replicas, c.BlockCount))
	case c.Timeout <= 0:
		return Error.Wrap(ParameterError.New("timeout must be positive: %v", c.Timeout))
	case c.BlockSize < 2:
		return Error.Wrap(ParameterError.New("block_size must be at least 2: %d", c.BlockSize))
	case !(c.CorruptionRate >= 0 && c.CorruptionRate <= 1):
		return Error.Wrap(ParameterError.New("corruption_rate must be in [0, 1]: %v", c.CorruptionRate))
	}
	return nil
}

// segment returns the number of blocks in each replica's address range.
func (c Config) segment() int { return c.BlockCount / c.Replicas }
