//go:build linux || darwin || freebsd

package perf

import "golang.org/x/sys/unix"

type unixMonotonic struct{}

func (unixMonotonic) NowNanos() (int64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return ts.Nano(), nil
}

// SystemMonotonic returns the host's CLOCK_MONOTONIC.
func SystemMonotonic() MonotonicSource {
	return unixMonotonic{}
}
