package filestore

import (
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"
	"github.com/zeebo/filestore/device"
	"github.com/zeebo/filestore/internal/pcg"
)

var gen = pcg.New(uint64(time.Now().UnixNano()), 0)

const (
	sphinx = "Sphinx of black quartz, judge my vow."
	parrot = "That parrot is no more!"
	lorem  = "This is an excessively long single line of text that should be " +
		"split into multiple blocks."
)

// randomContent returns n random printable bytes.
func randomContent(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(' ' + gen.Intn('~'-' '))
	}
	return buf
}

// newStore returns a store for cfg, failing the test on error.
func newStore(tb testing.TB, cfg Config, opts ...Option) *T {
	tb.Helper()

	st, err := New(cfg, opts...)
	assert.NoError(tb, err)
	return st
}

// newDevice returns a seeded device matching cfg's geometry.
func newDevice(cfg Config) *device.T {
	return device.New(cfg.BlockCount, cfg.BlockSize, cfg.CorruptionRate, device.WithSeed(gen.Uint64()))
}

// config returns the default config modified by fn.
func config(fn func(*Config)) Config {
	cfg := DefaultConfig()
	if fn != nil {
		fn(&cfg)
	}
	return cfg
}

// stepClock advances by step every time it is read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// long repeats s n times.
func long(s string, n int) []byte {
	return []byte(strings.Repeat(s, n))
}
