//go:build !linux && !darwin && !freebsd

package perf

import "time"

var runtimeEpoch = time.Now()

type runtimeMonotonic struct{}

// time.Since subtracts monotonic readings carried by time.Time.
func (runtimeMonotonic) NowNanos() (int64, error) {
	return time.Since(runtimeEpoch).Nanoseconds(), nil
}

// SystemMonotonic returns the Go runtime's monotonic clock.
func SystemMonotonic() MonotonicSource {
	return runtimeMonotonic{}
}
