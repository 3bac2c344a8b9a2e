package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatNumber groups the integer part of n with commas.
func FormatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatMillis renders fractional milliseconds with a unit that fits:
// µs below 1ms, ms below 1s, seconds above.
func FormatMillis(ms float64) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fmt.Sprintf("%v", ms)
	}
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	// the unit is picked on the rounded value so 0.9996 prints as 1.000ms
	switch {
	case math.Round(ms*1000) < 1000:
		return fmt.Sprintf("%s%.0fµs", sign, ms*1000)
	case math.Round(ms*1000)/1000 < 1000:
		return fmt.Sprintf("%s%.3fms", sign, ms)
	default:
		return fmt.Sprintf("%s%.2fs", sign, ms/1000)
	}
}

// MillisToDuration converts fractional milliseconds to a time.Duration,
// truncating below a nanosecond.
func MillisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// DurationToMillis converts a time.Duration to fractional milliseconds.
func DurationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
