package perf

// interval is the resolved [start, end] of a measure.
type interval struct {
	start      float64
	end        float64
	startFound bool
	endFound   bool
}

// lastMarkTime returns the StartTime of the most recently appended mark named
// name.
func lastMarkTime(entries []Entry, name string) (float64, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.EntryType == EntryTypeMark && e.Name == name {
			return e.StartTime, true
		}
	}
	return 0, false
}

// resolveInterval picks the endpoints of a measure. An empty or unknown start
// mark resolves to construction time (0); an empty or unknown end mark
// resolves to now. end < start is returned as-is.
func resolveInterval(entries []Entry, startMark, endMark string, now float64) interval {
	iv := interval{start: 0, end: now}

	if startMark != "" {
		if t, ok := lastMarkTime(entries, startMark); ok {
			iv.start = t
			iv.startFound = true
		}
	}
	if endMark != "" {
		if t, ok := lastMarkTime(entries, endMark); ok {
			iv.end = t
			iv.endFound = true
		}
	}
	return iv
}
