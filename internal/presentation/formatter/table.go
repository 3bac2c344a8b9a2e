package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-perf-timeline/internal/perf"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

const minNameWidth = 8

type TableFormatter struct {
	opts Options
}

func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{opts: opts}
}

func (f *TableFormatter) headers(withTimestamp bool) []string {
	h := []string{"#", "Type", "Name", "Start", "Duration"}
	if withTimestamp {
		h = append(h, "Timestamp")
	}
	return h
}

func (f *TableFormatter) Format(w io.Writer, entries []perf.Entry) error {
	withTimestamp := false
	for _, e := range entries {
		if e.HasTimestamp() {
			withTimestamp = true
			break
		}
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, f.row(i, e, withTimestamp))
	}

	headers := f.headers(withTimestamp)
	if len(rows) == 0 {
		empty := make([]string, len(headers))
		empty[2] = "(no entries)"
		rows = append(rows, empty)
	}
	widths := f.calculateColumnWidths(headers, rows)

	p := &tablePrinter{w: w}
	p.border(widths, "top")
	p.row(headers, widths)
	p.border(widths, "middle")
	for _, r := range rows {
		p.row(r, widths)
	}
	p.border(widths, "bottom")
	return p.err
}

func (f *TableFormatter) row(i int, e perf.Entry, withTimestamp bool) []string {
	r := []string{
		fmt.Sprintf("%d", i+1),
		e.EntryType.String(),
		e.Name,
		util.FormatMillis(e.StartTime),
		util.FormatMillis(e.Duration),
	}
	if withTimestamp {
		ts := "-"
		if e.HasTimestamp() {
			ts = f.opts.timeProvider().FormatEpochMillis(*e.Timestamp, util.TimestampLayout)
		}
		r = append(r, ts)
	}
	return r
}

// calculateColumnWidths sizes every column to its widest cell, then shrinks
// the Name column (truncating names) until the table fits opts.Width.
func (f *TableFormatter) calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, r := range rows {
		for i, v := range r {
			if cw := util.GetDisplayWidth(v); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	if widths[2] < minNameWidth {
		widths[2] = minNameWidth
	}

	if f.opts.Width > 0 {
		// each column adds 3 cells ("│ " + " ") plus the closing "│"
		total := 1
		for _, cw := range widths {
			total += cw + 3
		}
		if over := total - f.opts.Width; over > 0 {
			widths[2] -= over
			if widths[2] < minNameWidth {
				widths[2] = minNameWidth
			}
		}
		for _, r := range rows {
			r[2] = util.TruncateToWidth(r[2], widths[2])
		}
	}
	return widths
}

type tablePrinter struct {
	w   io.Writer
	err error
}

func (p *tablePrinter) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *tablePrinter) border(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
	p.print(b.String())
}

// row left-aligns the text columns (Type, Name, Timestamp) and right-aligns
// the numeric ones.
func (p *tablePrinter) row(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		leftAlign := i == 1 || i == 2 || i == 5
		b.WriteString(" ")
		b.WriteString(util.PadString(value, widths[i], leftAlign))
		b.WriteString(" │")
	}
	b.WriteString("\n")
	p.print(b.String())
}
