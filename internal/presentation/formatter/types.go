package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-perf-timeline/internal/perf"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

// Formatter renders a snapshot of timeline entries for a human reader.
type Formatter interface {
	Format(w io.Writer, entries []perf.Entry) error
}

// Options controls rendering shared by all formatters.
type Options struct {
	// Width caps the table width in display cells; 0 means unlimited.
	Width int
	// Time renders wall-clock timestamps; nil uses the host timezone.
	Time *util.TimeProvider
}

func (o Options) timeProvider() *util.TimeProvider {
	if o.Time != nil {
		return o.Time
	}
	return &util.TimeProvider{}
}

// New returns the formatter for kind ("table" or "summary").
func New(kind string, opts Options) (Formatter, error) {
	switch kind {
	case "table", "":
		return NewTableFormatter(opts), nil
	case "summary":
		return NewSummaryFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected table or summary)", kind)
	}
}
