package engine

import (
	"context"
	"math"

	"cleanops-backend/internal/model"
)

// DashboardSummary is the rolled-up view for a date range.
type DashboardSummary struct {
	ActiveCount    int64 `json:"activeCleans"`
	CompletedCount int   `json:"completedCleans"`
	EfficiencyPct  int   `json:"efficiency"`
	Revenue        int   `json:"revenue"`
	WageRatioPct   int   `json:"wageRatio"`
}

// ComputeDashboardSummary aggregates job activity over the selected window.
// Active jobs (any open entry) are counted independently of the range.
// Completed jobs count when every entry is closed and the final clock-out
// falls inside the window. Friends & family jobs are excluded from the
// commercial figures. Efficiency is the mean of per-job rounded percentages;
// the wage ratio is deliberately pooled instead, total wages over total
// revenue.
func (e *Engine) ComputeDashboardSummary(ctx context.Context, selector, customStart, customEnd string) (DashboardSummary, error) {
	window, err := RangeBounds(selector, customStart, customEnd, e.now(), e.loc)
	if err != nil {
		return DashboardSummary{}, err
	}

	active, err := e.store.CountActiveJobs(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	summary := DashboardSummary{ActiveCount: active}

	jobIDs, err := e.store.JobIDsClockedOutBetween(ctx, window.Start, window.End)
	if err != nil {
		return DashboardSummary{}, err
	}
	jobs, err := e.store.JobsWithEntriesByIDs(ctx, jobIDs)
	if err != nil {
		return DashboardSummary{}, err
	}

	snap, err := e.snapshot(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	tiers, err := e.store.ListPriceTiers(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}

	var efficiencies []int
	var totalWages float64
	for _, jw := range jobs {
		span, measured := ExtractSpan(jw.Entries)
		if !measured || !fullyCompleted(jw.Entries) || !window.Contains(span.End) {
			continue
		}
		summary.CompletedCount++

		if jw.Job.Customer.IsFriendsFamily {
			continue
		}
		price := jw.Job.Price
		if price == 0 {
			price = jw.Job.Customer.Price
		}
		summary.Revenue += price
		totalWages += WageCost(jw.Entries, snap.PayRatePerHour)
		if span.Hours() > 0 {
			expected := float64(AllottedMinutes(tiers, float64(price))) / 60
			efficiencies = append(efficiencies, Efficiency(expected, span.Hours()))
		}
	}

	if len(efficiencies) > 0 {
		summary.EfficiencyPct = MeanOfRounded(efficiencies)
	} else {
		summary.EfficiencyPct = 100
	}
	if summary.Revenue > 0 {
		summary.WageRatioPct = int(math.Round(totalWages / float64(summary.Revenue) * 100))
	}
	return summary, nil
}

// fullyCompleted reports whether a job has at least one entry and every
// entry is clocked out.
func fullyCompleted(entries []model.TimeEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if !e.Closed() {
			return false
		}
	}
	return true
}
