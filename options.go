package filestore

import (
	"time"

	"github.com/zeebo/filestore/io"
)

// Clock reports the current time. Elapsed time is measured as the
// difference of two readings.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type options struct {
	logger  *Logger
	metrics MetricsCollector
	clock   Clock
	dev     io.Device
	seed    *uint64
}

// Option configures collaborators of a store.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics are
// discarded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithClock sets the clock used to enforce the write timeout.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c == nil {
			c = systemClock{}
		}
		o.clock = c
	}
}

// WithDevice makes the store use dev instead of creating a device. The
// device must have the configured block count and block size; the
// configured corruption rate is not applied to it.
func WithDevice(dev io.Device) Option {
	return func(o *options) { o.dev = dev }
}

// WithSeed seeds the random source of the device the store creates. It has
// no effect together with WithDevice.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}
