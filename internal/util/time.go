package util

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// TimestampLayout is used when rendering wall-clock entry timestamps.
const TimestampLayout = "2006-01-02 15:04:05.000 MST"

// TimeProvider renders wall-clock instants in a configured timezone.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

// NewTimeProvider returns a provider for timezone ("" and "Local" mean the
// host zone).
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	tp := &TimeProvider{}
	if err := tp.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return tp, nil
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured timezone.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	if tp.location == nil {
		return time.Local
	}
	return tp.location
}

// FromEpochMillis converts fractional Unix milliseconds to a time.Time in the
// configured timezone.
func (tp *TimeProvider) FromEpochMillis(ms float64) time.Time {
	whole := math.Floor(ms)
	ns := int64(whole)*int64(time.Millisecond) + int64(math.Round((ms-whole)*float64(time.Millisecond)))
	return time.Unix(0, ns).In(tp.Location())
}

// FormatEpochMillis formats fractional Unix milliseconds with layout.
func (tp *TimeProvider) FormatEpochMillis(ms float64, layout string) string {
	return tp.FromEpochMillis(ms).Format(layout)
}
