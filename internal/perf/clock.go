package perf

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/penwyp/go-perf-timeline/internal/util"
)

var (
	// ErrNoMonotonicClock is returned by New when the monotonic source cannot
	// be read.
	ErrNoMonotonicClock = errors.New("monotonic clock unavailable")
	// ErrInvalidOffset is returned by New when an explicit offset is NaN or
	// infinite.
	ErrInvalidOffset = errors.New("invalid offset")
)

// MonotonicSource reads a clock that never goes backwards and is not affected
// by wall-clock adjustments. The epoch is arbitrary.
type MonotonicSource interface {
	NowNanos() (int64, error)
}

// WallSource reads wall-clock time as milliseconds since the Unix epoch.
type WallSource interface {
	NowMillis() float64
}

// MonotonicFunc adapts a function to MonotonicSource.
type MonotonicFunc func() (int64, error)

func (f MonotonicFunc) NowNanos() (int64, error) { return f() }

// WallFunc adapts a function to WallSource.
type WallFunc func() float64

func (f WallFunc) NowMillis() float64 { return f() }

type systemWall struct{}

func (systemWall) NowMillis() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

// SystemWall returns the host wall clock.
func SystemWall() WallSource {
	return systemWall{}
}

// ComputeDefaultOffset returns the bias that makes monotonic elapsed time
// agree with wall-clock elapsed time. Both arguments are milliseconds elapsed
// since the same starting instant, read from the monotonic and wall clocks.
func ComputeDefaultOffset(monotonicNow, wallNow float64) float64 {
	return wallNow - monotonicNow
}

// wallResolutionMillis is the skew tolerated on top of the setup window
// before a computed default offset is treated as a wall-clock step.
const wallResolutionMillis = 1.0

// Clock yields offset-adjusted milliseconds since its construction.
type Clock struct {
	mono   MonotonicSource
	origin int64
	offset float64
	last   float64
}

// NewClock captures the construction reading from mono. A nil offset selects
// ComputeDefaultOffset over the skew observed between mono and wall while the
// clock was being set up.
func NewClock(mono MonotonicSource, wall WallSource, offset *float64) (*Clock, error) {
	if mono == nil {
		mono = SystemMonotonic()
	}
	if wall == nil {
		wall = SystemWall()
	}

	wallOrigin := wall.NowMillis()
	origin, err := mono.NowNanos()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMonotonicClock, err)
	}

	c := &Clock{mono: mono, origin: origin}

	if offset != nil {
		if math.IsNaN(*offset) || math.IsInf(*offset, 0) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOffset, *offset)
		}
		c.offset = *offset
		return c, nil
	}

	reading, err := mono.NowNanos()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMonotonicClock, err)
	}
	monoElapsed := nanosToMillis(reading - origin)
	c.offset = ComputeDefaultOffset(monoElapsed, wall.NowMillis()-wallOrigin)
	if math.Abs(c.offset) > monoElapsed+wallResolutionMillis || math.IsNaN(c.offset) {
		// the wall clock stepped while the two were being sampled
		util.LogDebugf("perf: discarding default offset %.3fms measured over %.3fms", c.offset, monoElapsed)
		c.offset = 0
	}
	return c, nil
}

// Origin returns the monotonic reading captured at construction, in
// milliseconds on the source's own epoch.
func (c *Clock) Origin() float64 {
	return nanosToMillis(c.origin)
}

// Offset returns the bias added to every reading.
func (c *Clock) Offset() float64 {
	return c.offset
}

// Elapsed returns milliseconds since construction without the offset.
// Readings never decrease: a failed or regressing source repeats the last
// value.
func (c *Clock) Elapsed() float64 {
	n, err := c.mono.NowNanos()
	if err != nil {
		return c.last
	}
	ms := nanosToMillis(n - c.origin)
	if ms < c.last {
		return c.last
	}
	c.last = ms
	return ms
}

// Now returns Elapsed plus the offset.
func (c *Clock) Now() float64 {
	return c.Elapsed() + c.offset
}

func nanosToMillis(n int64) float64 {
	return float64(n) / 1e6
}
