package engine

import (
	"time"

	"cleanops-backend/internal/model"
)

// MinLunchEntries is the job-count condition of the automatic rule: a day
// with a single entry never auto-deducts, whatever its length.
const MinLunchEntries = 2

// RuleCondition is one independently-reportable leg of the automatic
// lunch-break rule.
type RuleCondition struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// RuleReport explains a lunch-break decision: whether an override decided it
// and how each automatic condition evaluated.
type RuleReport struct {
	HasOverride   bool            `json:"hasOverride"`
	OverrideValue *bool           `json:"overrideValue,omitempty"`
	Conditions    []RuleCondition `json:"conditions"`
}

// LunchDecision is the outcome of evaluating one staff member's day.
type LunchDecision struct {
	Applied bool
	// Hours is the day's span after any deduction.
	Hours  float64
	Report RuleReport
}

// EvaluateLunchBreak decides whether the configured lunch deduction applies
// to one staff member's calendar day. A manual override wins outright, in
// both directions. Otherwise all four automatic conditions must hold:
// the day's span reaches the minimum hours, at least MinLunchEntries entries
// exist, the first clock-in falls strictly before the eligible window start,
// and the last clock-out strictly after the window finish. Time-of-day
// comparisons use the snapshot's local zone.
func EvaluateLunchBreak(entries []model.TimeEntry, override *bool, snap Snapshot) LunchDecision {
	firstIn, lastOut, spanOK := daySpan(entries)

	var hours float64
	if spanOK {
		hours = lastOut.Sub(firstIn).Hours()
	}

	decision := LunchDecision{Hours: hours}
	deduction := float64(snap.LunchDurationMinutes) / 60

	if override != nil {
		v := *override
		decision.Report = RuleReport{HasOverride: true, OverrideValue: &v}
		if v && spanOK {
			decision.Applied = true
			decision.Hours = hours - deduction
		}
		return decision
	}

	if !spanOK {
		decision.Report = report(false, false, false, false)
		return decision
	}

	hoursRule := hours >= snap.LunchMinHours
	entriesRule := len(entries) >= MinLunchEntries
	startRule := minuteOfDay(firstIn, snap.Location) < snap.LunchStartMinutes
	finishRule := minuteOfDay(lastOut, snap.Location) > snap.LunchFinishMinutes

	decision.Report = report(hoursRule, entriesRule, startRule, finishRule)

	if hoursRule && entriesRule && startRule && finishRule {
		decision.Applied = true
		decision.Hours = hours - deduction
	}
	return decision
}

// daySpan finds the earliest clock-in and latest clock-out of a day's
// entries. ok is false when either end is missing.
func daySpan(entries []model.TimeEntry) (firstIn, lastOut time.Time, ok bool) {
	var haveIn, haveOut bool
	for _, e := range entries {
		if e.ClockIn != nil && (!haveIn || e.ClockIn.Before(firstIn)) {
			firstIn = *e.ClockIn
			haveIn = true
		}
		if e.ClockOut != nil && (!haveOut || e.ClockOut.After(lastOut)) {
			lastOut = *e.ClockOut
			haveOut = true
		}
	}
	return firstIn, lastOut, haveIn && haveOut
}

func report(hours, entries, start, finish bool) RuleReport {
	return RuleReport{
		Conditions: []RuleCondition{
			{Name: "hours", Passed: hours},
			{Name: "jobs", Passed: entries},
			{Name: "start_time", Passed: start},
			{Name: "finish_time", Passed: finish},
		},
	}
}
