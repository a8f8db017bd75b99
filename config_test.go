package filestore

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, cfg.Replicas, 1)
		assert.Equal(t, cfg.Timeout, time.Second)
		assert.Equal(t, cfg.BlockCount, 1024)
		assert.Equal(t, cfg.BlockSize, 8)
		assert.Equal(t, cfg.CorruptionRate, 0.0)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Valid", func(t *testing.T) {
		for _, fn := range []func(*Config){
			func(c *Config) { c.Replicas = 5 },
			func(c *Config) { c.Replicas, c.BlockCount = 1, 1 },
			func(c *Config) { c.Replicas, c.BlockCount = 3, 3 },
			func(c *Config) { c.BlockSize = 2 },
			func(c *Config) { c.CorruptionRate = 1 },
			func(c *Config) { c.CorruptionRate = 0.5 },
			func(c *Config) { c.Timeout = time.Nanosecond },
		} {
			_, err := New(config(fn))
			assert.NoError(t, err)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for name, fn := range map[string]func(*Config){
			"replicas":         func(c *Config) { c.Replicas = 0 },
			"negative replica": func(c *Config) { c.Replicas = -1 },
			"block_count":      func(c *Config) { c.BlockCount = 0 },
			"replicas > count": func(c *Config) { c.Replicas, c.BlockCount = 5, 4 },
			"timeout":          func(c *Config) { c.Timeout = 0 },
			"negative timeout": func(c *Config) { c.Timeout = -time.Second },
			"block_size":       func(c *Config) { c.BlockSize = 1 },
			"rate below":       func(c *Config) { c.CorruptionRate = -0.1 },
			"rate above":       func(c *Config) { c.CorruptionRate = 1.1 },
			"rate nan":         func(c *Config) { c.CorruptionRate = math.NaN() },
		} {
			st, err := New(config(fn))
			assert.Error(t, err)
			assert.That(t, st == nil)
			assert.That(t, Error.Has(err))
			assert.That(t, ParameterError.Has(err))
			assert.Equal(t, KindOf(err), KindParameter)
			t.Log(name, err)
		}
	})

	t.Run("Message", func(t *testing.T) {
		err := config(func(c *Config) { c.BlockSize = 1 }).Validate()
		assert.Error(t, err)
		assert.That(t, containsAll(err.Error(), "block_size", "1"))

		err = config(func(c *Config) { c.Replicas, c.BlockCount = 7, 3 }).Validate()
		assert.Error(t, err)
		assert.That(t, containsAll(err.Error(), "replicas", "7", "3"))
	})

	t.Run("DeviceMismatch", func(t *testing.T) {
		cfg := DefaultConfig()
		dev := newDevice(config(func(c *Config) { c.BlockCount = 16 }))

		_, err := New(cfg, WithDevice(dev))
		assert.Error(t, err)
		assert.Equal(t, KindOf(err), KindParameter)
	})
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindOf(nil), KindUnknown)
	assert.Equal(t, KindOf(Error.New("other")), KindUnknown)
	assert.Equal(t, KindOf(Error.Wrap(NotFoundError.New("x"))), KindNotFound)
	assert.Equal(t, KindOf(Error.Wrap(OutOfSpaceError.New("x"))), KindOutOfSpace)
	assert.Equal(t, KindOf(Error.Wrap(TimeoutError.New("x"))), KindTimeout)

	assert.Equal(t, KindTimeout.String(), "timeout")
	assert.Equal(t, KindUnknown.String(), "unknown")
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
