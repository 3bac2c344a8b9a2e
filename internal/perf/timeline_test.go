package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimeline(t *testing.T) (*Timeline, *fakeClock) {
	t.Helper()
	fc := newFakeClock()
	tl, err := New(fc.config())
	require.NoError(t, err)
	return tl, fc
}

func TestNewTimelineInitialState(t *testing.T) {
	tl, err := New(&Config{Offset: float64Ptr(10)})
	require.NoError(t, err)

	assert.Empty(t, tl.GetEntries())
	assert.NotNil(t, tl.GetEntries())
	assert.Equal(t, 10.0, tl.Offset())
	assert.Greater(t, tl.ConstructionTimeMillis(), 0.0)
	assert.False(t, tl.CapturesTimestamp())
}

func TestNewTimelineNilConfig(t *testing.T) {
	tl, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tl.Len())
}

func TestNewTimelineFailsFast(t *testing.T) {
	_, err := New(&Config{Monotonic: MonotonicFunc(func() (int64, error) { return 0, errNoClock })})
	assert.ErrorIs(t, err, ErrNoMonotonicClock)
}

func TestMarkShape(t *testing.T) {
	tl, fc := newTestTimeline(t)
	fc.advance(3.25)

	tl.Mark("woot")

	entries := tl.GetEntries()
	require.Len(t, entries, 1)
	first := entries[0]
	assert.Equal(t, "woot", first.Name)
	assert.Equal(t, EntryTypeMark, first.EntryType)
	assert.InDelta(t, 3.25, first.StartTime, 1e-9)
	assert.Equal(t, 0.0, first.Duration)
	assert.False(t, first.HasTimestamp())
	assert.Nil(t, first.Timestamp)
}

func TestMarkOrderingAndDelta(t *testing.T) {
	tl, fc := newTestTimeline(t)

	tl.Mark("a")
	fc.advance(90)
	tl.Mark("b")

	entries := tl.GetEntries()
	require.Len(t, entries, 2)
	diff := entries[1].StartTime - entries[0].StartTime
	assert.GreaterOrEqual(t, diff, 80.0)
	assert.LessOrEqual(t, diff, 100.0)
}

func TestMarkMultipleRealClock(t *testing.T) {
	tl, err := New(nil)
	require.NoError(t, err)

	tl.Mark("woot")
	time.Sleep(90 * time.Millisecond)
	tl.Mark("woot2")

	entries := tl.GetEntries()
	require.Len(t, entries, 2)
	diff := entries[1].StartTime - entries[0].StartTime
	assert.GreaterOrEqual(t, diff, 80.0)
	assert.Less(t, diff, 200.0)
}

func TestMeasureBindsToLatestMarks(t *testing.T) {
	tl, fc := newTestTimeline(t)

	tl.Mark("foo")
	fc.advance(1)
	tl.Mark("foo")
	fc.advance(2)
	tl.Mark("bar")
	fc.advance(4)
	tl.Mark("bar")
	fc.advance(8)
	tl.Measure("baz", "foo", "bar")

	entries := tl.GetEntries()
	require.Len(t, entries, 5)
	foo1, foo2, bar1, bar2, measure := entries[0], entries[1], entries[2], entries[3], entries[4]
	assert.Equal(t, "foo", foo1.Name)
	assert.Equal(t, "foo", foo2.Name)
	assert.Equal(t, "bar", bar1.Name)
	assert.Equal(t, "bar", bar2.Name)
	assert.Equal(t, "baz", measure.Name)
	assert.Equal(t, EntryTypeMeasure, measure.EntryType)

	assert.Equal(t, foo2.StartTime, measure.StartTime)
	assert.Equal(t, bar2.StartTime-foo2.StartTime, measure.Duration)
	assert.InDelta(t, 6.0, measure.Duration, 1e-9)
	assert.Nil(t, measure.Timestamp)
}

func TestMeasureWithoutMarksUsesConstructionAndNow(t *testing.T) {
	tl, fc := newTestTimeline(t)

	fc.advance(20)
	tl.Measure("bad-measure")

	first := tl.GetEntries()[0]
	assert.Equal(t, 0.0, first.StartTime)
	assert.InDelta(t, 20.0, first.Duration, 1e-9)

	tl.Mark("ok")
	fc.advance(30)
	tl.Measure("evil", "", "ok")

	evil := tl.GetEntriesByName("evil")
	require.Len(t, evil, 1)
	assert.Equal(t, 0.0, evil[0].StartTime)
	assert.InDelta(t, 20.0, evil[0].Duration, 1e-9)
}

func TestMeasureWithStartOnlyEndsNow(t *testing.T) {
	tl, fc := newTestTimeline(t)

	fc.advance(10)
	tl.Mark("start")
	fc.advance(20)
	tl.Measure("measure", "start")
	fc.advance(40)

	m := tl.GetEntriesByName("measure")
	require.Len(t, m, 1)
	assert.InDelta(t, 10.0, m[0].StartTime, 1e-9)
	assert.InDelta(t, 20.0, m[0].Duration, 1e-9)
}

func TestMeasureUnknownMarksFallBack(t *testing.T) {
	tl, fc := newTestTimeline(t)

	fc.advance(5)
	tl.Measure("m", "missing-start", "missing-end")

	m := tl.GetEntries()[0]
	assert.Equal(t, 0.0, m.StartTime)
	assert.InDelta(t, 5.0, m.Duration, 1e-9)
}

func TestMeasureIgnoresLaterMarks(t *testing.T) {
	tl, fc := newTestTimeline(t)

	fc.advance(1)
	tl.Mark("a")
	fc.advance(3)
	tl.Measure("first", "a")
	fc.advance(3)
	tl.Mark("a")

	first := tl.GetEntriesByName("first")[0]
	assert.InDelta(t, 1.0, first.StartTime, 1e-9)
	assert.InDelta(t, 3.0, first.Duration, 1e-9)
}

func TestMeasureNegativeDurationIsNotClamped(t *testing.T) {
	tl, fc := newTestTimeline(t)

	tl.Mark("early")
	fc.advance(7)
	tl.Mark("late")
	tl.Measure("backwards", "late", "early")

	m := tl.GetEntriesByName("backwards")[0]
	assert.InDelta(t, 7.0, m.StartTime, 1e-9)
	assert.InDelta(t, -7.0, m.Duration, 1e-9)
}

func TestMeasureExtraArgumentsIgnored(t *testing.T) {
	tl, fc := newTestTimeline(t)

	tl.Mark("a")
	fc.advance(2)
	tl.Mark("b")
	tl.Measure("m", "a", "b", "c")

	assert.InDelta(t, 2.0, tl.GetEntriesByName("m")[0].Duration, 1e-9)
}

func TestClearOperations(t *testing.T) {
	tl, _ := newTestTimeline(t)

	tl.Mark("woot")
	tl.Mark("hooray")
	tl.Measure("measure-1", "woot", "hooray")
	assert.Len(t, tl.GetEntries(), 3)

	tl.ClearMarks()
	assert.Len(t, tl.GetEntries(), 1)
	assert.Equal(t, "measure-1", tl.GetEntries()[0].Name)

	tl.Mark("wee")
	assert.Len(t, tl.GetEntries(), 2)

	tl.ClearMeasures()
	assert.Len(t, tl.GetEntries(), 1)
	assert.Equal(t, "wee", tl.GetEntries()[0].Name)

	tl.Mark("ding")
	tl.Measure("measure-2", "wee", "ding")
	assert.Len(t, tl.GetEntries(), 3)

	tl.Clear()
	assert.Len(t, tl.GetEntries(), 0)
}

func TestClearKeepsConfiguration(t *testing.T) {
	fc := newFakeClock()
	cfg := fc.config()
	cfg.Offset = float64Ptr(4)
	cfg.Timestamp = true
	tl, err := New(cfg)
	require.NoError(t, err)

	origin := tl.ConstructionTimeMillis()
	tl.Mark("a")
	tl.Clear()

	assert.Equal(t, 4.0, tl.Offset())
	assert.Equal(t, origin, tl.ConstructionTimeMillis())
	assert.True(t, tl.CapturesTimestamp())
}

func TestClearMarksPreservesOrderOfMeasures(t *testing.T) {
	tl, fc := newTestTimeline(t)

	tl.Mark("a")
	tl.Measure("m1")
	fc.advance(1)
	tl.Mark("b")
	tl.Measure("m2")
	tl.Measure("m3")

	tl.ClearMarks()
	names := []string{}
	for _, e := range tl.GetEntries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"m1", "m2", "m3"}, names)
}

func TestGetEntriesFilters(t *testing.T) {
	tl, _ := newTestTimeline(t)

	tl.Mark("woot")
	tl.Mark("hooray")
	tl.Measure("measure-1", "woot", "hooray")
	tl.Mark("ding")
	tl.Mark("woot")
	tl.Measure("measure-2", "woot", "ding")

	assert.Len(t, tl.GetEntries(), 6)
	assert.Len(t, tl.GetEntriesByType(EntryTypeMark), 4)
	assert.Len(t, tl.GetEntriesByType(EntryTypeMeasure), 2)
	assert.Len(t, tl.GetEntriesByName("ding"), 1)
	assert.Len(t, tl.GetEntriesByName("woot"), 2)
	assert.Empty(t, tl.GetEntriesByName("absent"))
	assert.NotNil(t, tl.GetEntriesByName("absent"))

	measures := tl.GetEntriesByType(EntryTypeMeasure)
	assert.Equal(t, "measure-1", measures[0].Name)
	assert.Equal(t, "measure-2", measures[1].Name)
}

func TestGetEntriesReturnsCopies(t *testing.T) {
	fc := newFakeClock()
	cfg := fc.config()
	cfg.Timestamp = true
	tl, err := New(cfg)
	require.NoError(t, err)

	tl.Mark("a")
	got := tl.GetEntries()
	got[0].Name = "mutated"
	*got[0].Timestamp = -1
	_ = append(got, Entry{Name: "extra"})

	fresh := tl.GetEntries()
	require.Len(t, fresh, 1)
	assert.Equal(t, "a", fresh[0].Name)
	assert.Equal(t, fc.wall, *fresh[0].Timestamp)
}

func TestNoCrossInstanceLeakage(t *testing.T) {
	perf, _ := newTestTimeline(t)
	timeline, _ := newTestTimeline(t)

	perf.Mark("woot")
	perf.Mark("wow")
	timeline.Mark("ok")

	assert.Len(t, perf.GetEntries(), 2)
	assert.Len(t, timeline.GetEntries(), 1)
	assert.Equal(t, "ok", timeline.GetEntries()[0].Name)
}

func TestNowUsesConstructionTimeByDefault(t *testing.T) {
	tl, err := New(nil)
	require.NoError(t, err)

	start := time.Now()
	time.Sleep(10 * time.Millisecond)
	now := tl.Now()
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)

	assert.GreaterOrEqual(t, now, 9.5)
	assert.Less(t, now, elapsed+5)

	tl.Mark("foo")
	time.Sleep(10 * time.Millisecond)
	tl.Mark("bar")
	tl.Measure("m1", "foo", "bar")

	d := tl.GetEntriesByName("m1")[0].Duration
	assert.GreaterOrEqual(t, d, 9.5)
	assert.Less(t, d, 100.0)
}

func TestNowWithExplicitOffset(t *testing.T) {
	tl, fc := newTestTimeline(t)
	assert.Equal(t, 0.0, tl.Offset())

	fc2 := newFakeClock()
	cfg := fc2.config()
	cfg.Offset = float64Ptr(1000)
	shifted, err := New(cfg)
	require.NoError(t, err)

	fc.advance(5)
	fc2.advance(5)
	assert.InDelta(t, 5.0, tl.Now(), 1e-9)
	assert.InDelta(t, 1005.0, shifted.Now(), 1e-9)

	// marks use Now, measures fall back to 0 rather than the offset
	shifted.Mark("m")
	shifted.Measure("since-construction")
	entries := shifted.GetEntries()
	assert.InDelta(t, 1005.0, entries[0].StartTime, 1e-9)
	assert.Equal(t, 0.0, entries[1].StartTime)
	assert.InDelta(t, 1005.0, entries[1].Duration, 1e-9)
}

func TestTimestampOption(t *testing.T) {
	tl, err := New(&Config{Timestamp: true})
	require.NoError(t, err)

	wallMillis := func() float64 { return float64(time.Now().UnixNano()) / 1e6 }

	before := wallMillis() - 1
	tl.Mark("foo")
	afterFoo := wallMillis() + 1
	time.Sleep(10 * time.Millisecond)
	tl.Mark("bar")
	beforeMeasure := wallMillis() - 1
	tl.Measure("m1", "foo", "bar")
	after := wallMillis() + 1

	foo := tl.GetEntries()[0]
	require.True(t, foo.HasTimestamp())
	assert.GreaterOrEqual(t, *foo.Timestamp, before)
	assert.LessOrEqual(t, *foo.Timestamp, afterFoo)

	m1 := tl.GetEntriesByName("m1")[0]
	require.True(t, m1.HasTimestamp())
	assert.GreaterOrEqual(t, *m1.Timestamp, beforeMeasure)
	assert.LessOrEqual(t, *m1.Timestamp, after)
	assert.Greater(t, *m1.Timestamp, *foo.Timestamp)
}

func TestMeasureTimestampIsCallTime(t *testing.T) {
	fc := newFakeClock()
	cfg := fc.config()
	cfg.Timestamp = true
	tl, err := New(cfg)
	require.NoError(t, err)

	tl.Mark("foo")
	fooWall := fc.wall
	fc.advance(10)
	tl.Mark("bar")
	fc.advance(25)
	tl.Measure("m1", "foo", "bar")

	m1 := tl.GetEntriesByName("m1")[0]
	assert.Equal(t, fc.wall, *m1.Timestamp)
	assert.Equal(t, fooWall+35, *m1.Timestamp)
	assert.InDelta(t, 10.0, m1.Duration, 1e-9)
}

func TestParseEntryType(t *testing.T) {
	got, err := ParseEntryType("mark")
	require.NoError(t, err)
	assert.Equal(t, EntryTypeMark, got)

	got, err = ParseEntryType("measure")
	require.NoError(t, err)
	assert.Equal(t, EntryTypeMeasure, got)
	assert.Equal(t, "measure", got.String())

	_, err = ParseEntryType("resource")
	assert.Error(t, err)
}

func TestEntryEndTime(t *testing.T) {
	e := Entry{StartTime: 2, Duration: 3.5}
	assert.Equal(t, 5.5, e.EndTime())
}
