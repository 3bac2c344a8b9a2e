// Package perf implements an in-process performance timeline: named marks and
// measures stamped against a per-instance monotonic clock.
//
// A Timeline is owned by a single goroutine. Entries are appended by Mark and
// Measure, read back through the GetEntries* family as copies, and removed only
// in bulk by ClearMarks, ClearMeasures and Clear.
//
// All times are fractional milliseconds. StartTime values are relative to the
// Timeline's construction; Now adds the configured offset on top of that.
package perf
