package engine

import (
	"time"

	"cleanops-backend/internal/model"
)

// Span is the measured extent of a job: earliest clock-in to latest
// clock-out across every closed entry. Multiple staff usually overlap on one
// job, so this is a span of spans, not a sum.
type Span struct {
	Start time.Time
	End   time.Time
}

// Hours returns the span length in hours.
func (s Span) Hours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// ExtractSpan reduces a job's time entries to its actual span. Entries
// missing either timestamp are ignored. ok is false when no entry qualifies:
// a job without measurements has no duration, not a zero one, and must be
// excluded downstream rather than averaged in.
func ExtractSpan(entries []model.TimeEntry) (span Span, ok bool) {
	for _, e := range entries {
		if !e.Closed() {
			continue
		}
		if !ok {
			span = Span{Start: *e.ClockIn, End: *e.ClockOut}
			ok = true
			continue
		}
		if e.ClockIn.Before(span.Start) {
			span.Start = *e.ClockIn
		}
		if e.ClockOut.After(span.End) {
			span.End = *e.ClockOut
		}
	}
	return span, ok
}

// WageCost sums the labor cost of a job: each closed entry's own span times
// the hourly pay rate. Unlike ExtractSpan this adds overlapping staff time,
// since every worked hour is paid.
func WageCost(entries []model.TimeEntry, payRatePerHour float64) float64 {
	var total float64
	for _, e := range entries {
		if !e.Closed() {
			continue
		}
		total += e.ClockOut.Sub(*e.ClockIn).Hours() * payRatePerHour
	}
	return total
}
