package engine

import (
	"strconv"
	"strings"
	"time"
)

// Settings table keys read by the engine.
const (
	KeyPayRatePerHour       = "staff_pay_rate_per_hour"
	KeyLunchMinHours        = "lunch_break_min_hours"
	KeyLunchDurationMinutes = "lunch_break_duration_minutes"
	KeyLunchStartTime       = "lunch_break_start_time"
	KeyLunchFinishTime      = "lunch_break_finish_time"
)

// Defaults applied when a setting row is absent or unparseable. Settings are
// soft configuration: absence is never an error.
const (
	DefaultPayRatePerHour       = 32.31
	DefaultLunchMinHours        = 5.0
	DefaultLunchDurationMinutes = 30
)

var (
	defaultLunchStart  = 9 * 60  // 09:00
	defaultLunchFinish = 17 * 60 // 17:00
)

// Snapshot is the typed, immutable settings view a single computation runs
// against. It is built once per call and passed explicitly, so a mid-flight
// settings update can never apply inconsistently within one computation and
// tests can supply fixed values.
type Snapshot struct {
	PayRatePerHour       float64
	LunchMinHours        float64
	LunchDurationMinutes int
	LunchStartMinutes    int // eligible window start, minutes after local midnight
	LunchFinishMinutes   int // eligible window finish, minutes after local midnight
	Location             *time.Location
}

// BuildSnapshot resolves raw settings rows into a Snapshot, defaulting every
// absent or malformed value.
func BuildSnapshot(values map[string]string, loc *time.Location) Snapshot {
	if loc == nil {
		loc = time.Local
	}
	snap := Snapshot{
		PayRatePerHour:       parseFloat(values[KeyPayRatePerHour], DefaultPayRatePerHour),
		LunchMinHours:        parseFloat(values[KeyLunchMinHours], DefaultLunchMinHours),
		LunchDurationMinutes: parseInt(values[KeyLunchDurationMinutes], DefaultLunchDurationMinutes),
		LunchStartMinutes:    parseClock(values[KeyLunchStartTime], defaultLunchStart),
		LunchFinishMinutes:   parseClock(values[KeyLunchFinishTime], defaultLunchFinish),
		Location:             loc,
	}
	return snap
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// parseClock converts an "HH:MM" string to minutes after midnight.
func parseClock(s string, fallback int) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fallback
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return fallback
	}
	return h*60 + m
}

// minuteOfDay returns the local-time minutes after midnight for t.
func minuteOfDay(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}
