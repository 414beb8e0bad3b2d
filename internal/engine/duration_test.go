package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cleanops-backend/internal/model"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return parsed
}

func entry(in, out *time.Time) model.TimeEntry {
	return model.TimeEntry{StaffID: 1, JobID: 1, ClockIn: in, ClockOut: out}
}

func TestExtractSpanNoQualifyingEntries(t *testing.T) {
	in := ts(t, "2025-06-09T09:00:00Z")

	_, ok := ExtractSpan(nil)
	assert.False(t, ok, "no entries must yield no measurement")

	_, ok = ExtractSpan([]model.TimeEntry{entry(&in, nil)})
	assert.False(t, ok, "an open entry must not produce a span")
}

func TestExtractSpanIsSpanOfSpans(t *testing.T) {
	// Two overlapping workers: 09:00-11:00 and 09:30-12:00.
	in1, out1 := ts(t, "2025-06-09T09:00:00Z"), ts(t, "2025-06-09T11:00:00Z")
	in2, out2 := ts(t, "2025-06-09T09:30:00Z"), ts(t, "2025-06-09T12:00:00Z")

	span, ok := ExtractSpan([]model.TimeEntry{entry(&in1, &out1), entry(&in2, &out2)})
	assert.True(t, ok)
	assert.Equal(t, in1, span.Start)
	assert.Equal(t, out2, span.End)
	assert.InDelta(t, 3.0, span.Hours(), 1e-9)
}

func TestExtractSpanIgnoresOpenEntries(t *testing.T) {
	in1, out1 := ts(t, "2025-06-09T09:00:00Z"), ts(t, "2025-06-09T11:00:00Z")
	in2 := ts(t, "2025-06-09T08:00:00Z") // open, earlier clock-in must not count

	span, ok := ExtractSpan([]model.TimeEntry{entry(&in1, &out1), entry(&in2, nil)})
	assert.True(t, ok)
	assert.Equal(t, in1, span.Start)
}

func TestWageCostSumsOverlappingEntries(t *testing.T) {
	// The same two overlapping workers: 2h + 2.5h paid even though the job
	// span is only 3h.
	in1, out1 := ts(t, "2025-06-09T09:00:00Z"), ts(t, "2025-06-09T11:00:00Z")
	in2, out2 := ts(t, "2025-06-09T09:30:00Z"), ts(t, "2025-06-09T12:00:00Z")
	entries := []model.TimeEntry{entry(&in1, &out1), entry(&in2, &out2)}

	assert.InDelta(t, 4.5*32.31, WageCost(entries, 32.31), 1e-9)
	assert.InDelta(t, 0, WageCost([]model.TimeEntry{entry(&in1, nil)}, 32.31), 1e-9)
}
