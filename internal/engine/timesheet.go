package engine

import (
	"context"
	"sort"
	"time"

	"cleanops-backend/internal/model"
)

// dayKey addresses one staff member's entries on one absolute local calendar
// day. Bucketing by date rather than weekday keeps weeks from different
// calendar weeks apart even if a window ever exceeds seven days; the weekday
// is only a display label.
type dayKey struct {
	StaffID uint
	Date    string // YYYY-MM-DD, business-local
}

// TimesheetDay is one staff member's day on the weekly timesheet.
type TimesheetDay struct {
	Date       string     `json:"date"`
	Weekday    string     `json:"weekday"`
	Hours      float64    `json:"hours"`
	Jobs       int        `json:"jobs"`
	LunchBreak bool       `json:"lunchBreak"`
	StartTime  *time.Time `json:"startTime"`
	EndTime    *time.Time `json:"endTime"`
	Report     RuleReport `json:"lunchBreakReport"`
}

// StaffTimesheet is one staff member's week, Monday through Sunday.
type TimesheetTotals struct {
	TotalHours float64 `json:"totalHours"`
	TotalJobs  int     `json:"totalJobs"`
}

type StaffTimesheet struct {
	StaffID    uint           `json:"staffId"`
	StaffName  string         `json:"staffName"`
	Days       []TimesheetDay `json:"days"`
	TotalHours float64        `json:"totalHours"`
	TotalJobs  int            `json:"totalJobs"`
}

// TimesheetReport is the weekly roll-up across all staff.
type TimesheetReport struct {
	WeekStart string           `json:"weekStart"`
	Staff     []StaffTimesheet `json:"weekly"`
	Totals    TimesheetTotals  `json:"stats"`
}

// ComputeWeeklyTimesheets builds per-staff daily hours for a Monday-anchored
// week, applying the lunch-break rules per day. Day totals run from first
// clock-in to last clock-out; days with an unfinished entry report zero
// hours until the entry closes. The global job total counts distinct jobs
// with at least one clock-out in the week.
func (e *Engine) ComputeWeeklyTimesheets(ctx context.Context, weekSelector string) (TimesheetReport, error) {
	window, err := WeekBounds(weekSelector, e.now(), e.loc)
	if err != nil {
		return TimesheetReport{}, err
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return TimesheetReport{}, err
	}

	entries, err := e.store.EntriesClockedInBetween(ctx, window.Start, window.End)
	if err != nil {
		return TimesheetReport{}, err
	}
	overrides, err := e.store.LunchOverridesBetween(ctx,
		localDate(window.Start, e.loc), localDate(window.End, e.loc))
	if err != nil {
		return TimesheetReport{}, err
	}

	overrideByKey := make(map[dayKey]bool, len(overrides))
	for _, o := range overrides {
		overrideByKey[dayKey{StaffID: o.StaffID, Date: o.Date}] = o.HasLunchBreak
	}

	buckets := make(map[dayKey][]model.TimeEntry)
	staffNames := make(map[uint]string)
	completedJobs := make(map[uint]struct{})
	for _, entry := range entries {
		if entry.ClockIn == nil {
			continue
		}
		key := dayKey{StaffID: entry.StaffID, Date: localDate(*entry.ClockIn, e.loc)}
		buckets[key] = append(buckets[key], entry)
		staffNames[entry.StaffID] = entry.Staff.FullName()
		if entry.ClockOut != nil {
			completedJobs[entry.JobID] = struct{}{}
		}
	}

	report := TimesheetReport{
		WeekStart: localDate(window.Start, e.loc),
		Staff:     []StaffTimesheet{},
	}

	sheets := make(map[uint]*StaffTimesheet)
	for key, dayEntries := range buckets {
		sheet, ok := sheets[key.StaffID]
		if !ok {
			sheet = emptySheet(key.StaffID, staffNames[key.StaffID], window, e.loc)
			sheets[key.StaffID] = sheet
		}

		var override *bool
		if v, found := overrideByKey[key]; found {
			override = &v
		}
		decision := EvaluateLunchBreak(dayEntries, override, snap)

		idx := dayIndex(window.Start, key.Date, e.loc)
		if idx < 0 || idx > 6 {
			continue
		}
		day := &sheet.Days[idx]
		day.Hours = round2(decision.Hours)
		day.Jobs = len(dayEntries)
		day.LunchBreak = decision.Applied
		day.Report = decision.Report
		if firstIn, lastOut, ok := daySpan(dayEntries); ok {
			in, out := firstIn, lastOut
			day.StartTime = &in
			day.EndTime = &out
		}

		sheet.TotalHours = round2(sheet.TotalHours + decision.Hours)
		sheet.TotalJobs += len(dayEntries)
		report.Totals.TotalHours = round2(report.Totals.TotalHours + decision.Hours)
	}
	report.Totals.TotalJobs = len(completedJobs)

	for _, sheet := range sheets {
		report.Staff = append(report.Staff, *sheet)
	}
	sort.Slice(report.Staff, func(i, j int) bool {
		return report.Staff[i].StaffName < report.Staff[j].StaffName
	})
	return report, nil
}

// emptySheet pre-fills the seven day cells so every weekday renders even
// when unworked.
func emptySheet(staffID uint, name string, window DateRange, loc *time.Location) *StaffTimesheet {
	sheet := &StaffTimesheet{StaffID: staffID, StaffName: name, Days: make([]TimesheetDay, 7)}
	for i := 0; i < 7; i++ {
		day := window.Start.AddDate(0, 0, i)
		sheet.Days[i] = TimesheetDay{
			Date:    localDate(day, loc),
			Weekday: day.Weekday().String(),
			Report:  report(false, false, false, false),
		}
	}
	return sheet
}

// dayIndex maps a local date back to its 0-based offset from the week
// start. Comparing formatted dates keeps this correct across DST days of
// uneven length.
func dayIndex(weekStart time.Time, date string, loc *time.Location) int {
	for i := 0; i < 7; i++ {
		if localDate(weekStart.AddDate(0, 0, i), loc) == date {
			return i
		}
	}
	return -1
}
