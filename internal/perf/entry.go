package perf

import "fmt"

// EntryType distinguishes instantaneous marks from measured intervals.
type EntryType string

const (
	EntryTypeMark    EntryType = "mark"
	EntryTypeMeasure EntryType = "measure"
)

func (t EntryType) String() string {
	return string(t)
}

// ParseEntryType converts "mark" or "measure" into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryTypeMark, EntryTypeMeasure:
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("unknown entry type %q (expected mark or measure)", s)
	}
}

// Entry is a single record in a Timeline. Entries are never modified after
// they are appended.
type Entry struct {
	Name      string    `json:"name"`
	EntryType EntryType `json:"entryType"`
	StartTime float64   `json:"startTime"`
	Duration  float64   `json:"duration"`
	// Timestamp is wall-clock epoch milliseconds, nil unless the Timeline was
	// configured to capture timestamps.
	Timestamp *float64 `json:"timestamp,omitempty"`
}

// HasTimestamp reports whether a wall-clock timestamp was captured.
func (e Entry) HasTimestamp() bool {
	return e.Timestamp != nil
}

// EndTime returns StartTime + Duration.
func (e Entry) EndTime() float64 {
	return e.StartTime + e.Duration
}

// clone returns a copy that shares no memory with e.
func (e Entry) clone() Entry {
	if e.Timestamp != nil {
		ts := *e.Timestamp
		e.Timestamp = &ts
	}
	return e
}
