package engine

import (
	"fmt"
	"time"
)

// Range selectors accepted by the dashboard and timesheet endpoints.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeThisWeek  = "thisWeek"
	RangeLastWeek  = "lastWeek"
	RangeCustom    = "custom"
)

// DateRange is a half-open [Start, End) window. Boundaries are local-midnight
// instants in the business zone; the store compares them against UTC
// timestamps directly.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// RangeBounds resolves a selector to a concrete window. Custom ranges take
// YYYY-MM-DD dates with an inclusive end day. Weeks are Monday-anchored:
// Monday 00:00 local through the following Monday 00:00 local, with Sunday
// counting as day 6 of the prior week.
func RangeBounds(selector, customStart, customEnd string, now time.Time, loc *time.Location) (DateRange, error) {
	today := localMidnight(now, loc)

	switch selector {
	case RangeToday, "":
		return DateRange{Start: today, End: today.AddDate(0, 0, 1)}, nil
	case RangeYesterday:
		return DateRange{Start: today.AddDate(0, 0, -1), End: today}, nil
	case RangeThisWeek:
		monday := mondayOf(today)
		return DateRange{Start: monday, End: monday.AddDate(0, 0, 7)}, nil
	case RangeLastWeek:
		monday := mondayOf(today).AddDate(0, 0, -7)
		return DateRange{Start: monday, End: monday.AddDate(0, 0, 7)}, nil
	case RangeCustom:
		start, err := time.ParseInLocation("2006-01-02", customStart, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid custom start date %q: %w", customStart, err)
		}
		end, err := time.ParseInLocation("2006-01-02", customEnd, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid custom end date %q: %w", customEnd, err)
		}
		end = end.AddDate(0, 0, 1) // include the whole end day
		if !start.Before(end) {
			return DateRange{}, fmt.Errorf("custom range start %s is after end %s", customStart, customEnd)
		}
		return DateRange{Start: start, End: end}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown range selector %q", selector)
	}
}

// WeekBounds resolves a timesheet week selector to its Monday-to-Monday
// window.
func WeekBounds(selector string, now time.Time, loc *time.Location) (DateRange, error) {
	switch selector {
	case RangeThisWeek, "":
		return RangeBounds(RangeThisWeek, "", "", now, loc)
	case RangeLastWeek:
		return RangeBounds(RangeLastWeek, "", "", now, loc)
	default:
		return DateRange{}, fmt.Errorf("unknown week selector %q", selector)
	}
}

// localMidnight truncates t to 00:00 of its local calendar day.
func localMidnight(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// mondayOf returns the Monday 00:00 of the week containing the given local
// midnight. Sunday maps to the preceding Monday.
func mondayOf(day time.Time) time.Time {
	idx := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -idx)
}

// localDate formats t's calendar day in the business zone as YYYY-MM-DD, the
// key shape shared with lunch-break overrides.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
