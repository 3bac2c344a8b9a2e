package perf

import (
	"github.com/penwyp/go-perf-timeline/internal/util"
)

// Config configures a Timeline. The zero value (or a nil *Config) selects the
// host clocks, a computed offset and no timestamps.
type Config struct {
	// Offset overrides the computed monotonic/wall skew when non-nil. A
	// pointer to 0 is an explicit zero.
	Offset *float64
	// Timestamp records wall-clock epoch milliseconds on every entry.
	Timestamp bool

	Monotonic MonotonicSource
	Wall      WallSource
}

// Timeline is an ordered ledger of marks and measures. It is not safe for
// concurrent use.
type Timeline struct {
	clock            *Clock
	wall             WallSource
	captureTimestamp bool
	entries          []Entry
}

// New creates an empty Timeline whose zero point is now.
func New(cfg *Config) (*Timeline, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	wall := cfg.Wall
	if wall == nil {
		wall = SystemWall()
	}

	clock, err := NewClock(cfg.Monotonic, wall, cfg.Offset)
	if err != nil {
		return nil, err
	}

	return &Timeline{
		clock:            clock,
		wall:             wall,
		captureTimestamp: cfg.Timestamp,
		entries:          make([]Entry, 0),
	}, nil
}

// Now returns offset-adjusted milliseconds since the Timeline was created.
func (tl *Timeline) Now() float64 {
	return tl.clock.Now()
}

// Offset returns the bias applied by Now.
func (tl *Timeline) Offset() float64 {
	return tl.clock.Offset()
}

// ConstructionTimeMillis returns the monotonic reading taken at construction.
func (tl *Timeline) ConstructionTimeMillis() float64 {
	return tl.clock.Origin()
}

// CapturesTimestamp reports whether entries carry wall-clock timestamps.
func (tl *Timeline) CapturesTimestamp() bool {
	return tl.captureTimestamp
}

func (tl *Timeline) timestamp() *float64 {
	if !tl.captureTimestamp {
		return nil
	}
	ts := tl.wall.NowMillis()
	return &ts
}

// Mark appends a mark stamped with Now. Names need not be unique.
func (tl *Timeline) Mark(name string) {
	ts := tl.timestamp()
	tl.entries = append(tl.entries, Entry{
		Name:      name,
		EntryType: EntryTypeMark,
		StartTime: tl.clock.Now(),
		Duration:  0,
		Timestamp: ts,
	})
}

// Measure appends an interval named name. The optional marks are the start
// and end mark names, in that order; an empty string means "not given" and
// anything after the second is ignored.
//
// Each given name binds to the latest mark with that name. A missing start
// resolves to 0 (construction) and a missing end resolves to Now. The
// duration is end minus start and is not clamped.
func (tl *Timeline) Measure(name string, marks ...string) {
	var startMark, endMark string
	if len(marks) > 0 {
		startMark = marks[0]
	}
	if len(marks) > 1 {
		endMark = marks[1]
	}

	ts := tl.timestamp()
	iv := resolveInterval(tl.entries, startMark, endMark, tl.clock.Now())

	if startMark != "" && !iv.startFound {
		util.LogDebugf("perf: measure %q: start mark %q not found, using construction time", name, startMark)
	}
	if endMark != "" && !iv.endFound {
		util.LogDebugf("perf: measure %q: end mark %q not found, using now", name, endMark)
	}
	if iv.end < iv.start {
		util.LogDebugf("perf: measure %q has negative duration %.3fms", name, iv.end-iv.start)
	}

	tl.entries = append(tl.entries, Entry{
		Name:      name,
		EntryType: EntryTypeMeasure,
		StartTime: iv.start,
		Duration:  iv.end - iv.start,
		Timestamp: ts,
	})
}

// GetEntries returns a copy of every entry in insertion order.
func (tl *Timeline) GetEntries() []Entry {
	return tl.filter(func(Entry) bool { return true })
}

// GetEntriesByName returns the entries named name, in insertion order.
func (tl *Timeline) GetEntriesByName(name string) []Entry {
	return tl.filter(func(e Entry) bool { return e.Name == name })
}

// GetEntriesByType returns the entries of type t, in insertion order.
func (tl *Timeline) GetEntriesByType(t EntryType) []Entry {
	return tl.filter(func(e Entry) bool { return e.EntryType == t })
}

// Len returns the number of entries.
func (tl *Timeline) Len() int {
	return len(tl.entries)
}

// ClearMarks removes every mark.
func (tl *Timeline) ClearMarks() {
	tl.remove(EntryTypeMark)
}

// ClearMeasures removes every measure.
func (tl *Timeline) ClearMeasures() {
	tl.remove(EntryTypeMeasure)
}

// Clear removes every entry. Configuration is kept.
func (tl *Timeline) Clear() {
	removed := len(tl.entries)
	tl.entries = make([]Entry, 0)
	util.LogDebugf("perf: cleared %d entries", removed)
}

func (tl *Timeline) filter(keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(tl.entries))
	for _, e := range tl.entries {
		if keep(e) {
			out = append(out, e.clone())
		}
	}
	return out
}

func (tl *Timeline) remove(t EntryType) {
	kept := make([]Entry, 0, len(tl.entries))
	for _, e := range tl.entries {
		if e.EntryType != t {
			kept = append(kept, e)
		}
	}
	util.LogDebugf("perf: cleared %d %s entries", len(tl.entries)-len(kept), t)
	tl.entries = kept
}
