package watch

import (
	"context"

	"github.com/penwyp/go-perf-timeline/internal/perf"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

// SessionMeasure is the measure Recorder appends when it stops, spanning the
// first recorded event to the stop.
const SessionMeasure = "session"

const firstEventMark = "first-event"

// Recorder marks events on a Timeline it exclusively owns while Run is active.
type Recorder struct {
	tl    *perf.Timeline
	count int
}

func NewRecorder(tl *perf.Timeline) *Recorder {
	return &Recorder{tl: tl}
}

// Count returns the number of events recorded so far.
func (r *Recorder) Count() int {
	return r.count
}

// Record marks a single event.
func (r *Recorder) Record(e Event) {
	if r.count == 0 {
		r.tl.Mark(firstEventMark)
	}
	r.tl.Mark(e.MarkName())
	r.count++
	util.LogDebug("watch: event recorded",
		util.Field{Key: "path", Value: e.Path},
		util.Field{Key: "op", Value: e.Operation})
}

// Run records events until ctx is done or events is closed. When at least one
// event was recorded it appends SessionMeasure. ctx.Err() is not treated as a
// failure.
func (r *Recorder) Run(ctx context.Context, events <-chan Event) {
	defer func() {
		if r.count > 0 {
			r.tl.Measure(SessionMeasure, firstEventMark)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			r.Record(e)
		}
	}
}
