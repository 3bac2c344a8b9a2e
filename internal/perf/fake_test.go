package perf

import (
	"errors"
	"time"
)

// fakeClock drives both the monotonic and wall source by hand.
type fakeClock struct {
	nanos int64
	wall  float64
}

func newFakeClock() *fakeClock {
	return &fakeClock{nanos: 5_000_000_000, wall: 1_700_000_000_000}
}

func (f *fakeClock) NowNanos() (int64, error) { return f.nanos, nil }

func (f *fakeClock) NowMillis() float64 { return f.wall }

func (f *fakeClock) advance(ms float64) {
	f.nanos += int64(ms * float64(time.Millisecond))
	f.wall += ms
}

func (f *fakeClock) config() *Config {
	return &Config{Monotonic: f, Wall: f}
}

var errNoClock = errors.New("clock_gettime: operation not supported")

func float64Ptr(v float64) *float64 {
	return &v
}
