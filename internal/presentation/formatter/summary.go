package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/penwyp/go-perf-timeline/internal/perf"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

// Summary aggregates a snapshot of entries.
type Summary struct {
	Marks         int
	Measures      int
	TotalMeasured float64
	Longest       *perf.Entry
	// Span is the latest entry end minus the earliest entry start.
	Span float64
	// ByName sums measure durations per name.
	ByName map[string]float64
}

// Summarize computes a Summary over entries.
func Summarize(entries []perf.Entry) Summary {
	s := Summary{ByName: make(map[string]float64)}
	if len(entries) == 0 {
		return s
	}

	first, last := entries[0].StartTime, entries[0].EndTime()
	for i := range entries {
		e := entries[i]
		if e.StartTime < first {
			first = e.StartTime
		}
		if end := e.EndTime(); end > last {
			last = end
		}

		switch e.EntryType {
		case perf.EntryTypeMark:
			s.Marks++
		case perf.EntryTypeMeasure:
			s.Measures++
			s.TotalMeasured += e.Duration
			s.ByName[e.Name] += e.Duration
			if s.Longest == nil || e.Duration > s.Longest.Duration {
				s.Longest = &entries[i]
			}
		}
	}
	s.Span = last - first
	return s
}

// SummaryFormatter prints aggregate figures instead of individual rows.
type SummaryFormatter struct {
	opts Options
}

func NewSummaryFormatter(opts Options) *SummaryFormatter {
	return &SummaryFormatter{opts: opts}
}

func (f *SummaryFormatter) Format(w io.Writer, entries []perf.Entry) error {
	s := Summarize(entries)

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString("Timeline Summary\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Entries:        %s\n", util.FormatNumber(len(entries)))
	fmt.Fprintf(&b, "Marks:          %s\n", util.FormatNumber(s.Marks))
	fmt.Fprintf(&b, "Measures:       %s\n", util.FormatNumber(s.Measures))
	fmt.Fprintf(&b, "Span:           %s\n", util.FormatMillis(s.Span))
	fmt.Fprintf(&b, "Total measured: %s\n", util.FormatMillis(s.TotalMeasured))
	if s.Longest != nil {
		fmt.Fprintf(&b, "Longest:        %s (%s)\n", s.Longest.Name, util.FormatMillis(s.Longest.Duration))
	}

	if len(s.ByName) > 0 {
		names := make([]string, 0, len(s.ByName))
		nameWidth := 0
		for name := range s.ByName {
			names = append(names, name)
			if cw := util.GetDisplayWidth(name); cw > nameWidth {
				nameWidth = cw
			}
		}
		sort.Strings(names)

		b.WriteString("\nBy name:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %s  %s\n", util.PadString(name, nameWidth, true), util.FormatMillis(s.ByName[name]))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
