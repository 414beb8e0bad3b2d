package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cleanops-backend/internal/db"
	"cleanops-backend/internal/model"
	"cleanops-backend/internal/store"
)

// newTestEngine wires an engine to an in-memory SQLite database with a
// pinned clock: Wednesday 2025-06-11 14:00 UTC.
func newTestEngine(t *testing.T) (*Engine, store.Store, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})
	require.NoError(t, gdb.AutoMigrate(db.Models()...))

	st := store.NewGormStore(gdb)
	eng := New(st, time.UTC)
	eng.now = func() time.Time { return time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC) }
	return eng, st, gdb
}

func seedTiers(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	require.NoError(t, gdb.Create(&[]model.PriceTier{
		{PriceMin: 100, PriceMax: 150, AllottedMinutes: 90},
		{PriceMin: 151, PriceMax: 200, AllottedMinutes: 120},
	}).Error)
}

func closedEntry(staffID, jobID uint, in, out time.Time) model.TimeEntry {
	return model.TimeEntry{StaffID: staffID, JobID: jobID, ClockIn: &in, ClockOut: &out}
}

func TestComputeCustomerMetrics(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()
	seedTiers(t, gdb)

	staleTarget := 120
	customer := model.Customer{Name: "Acme Offices", Address: "1 Main St", Price: 180, TargetTimeMinutes: &staleTarget}
	require.NoError(t, gdb.Create(&customer).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	require.NoError(t, gdb.Create(&alice).Error)

	// On-target job: 2h against a 120-minute allotment.
	job1 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&job1).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, job1.ID,
		time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC))}).Error)

	// Overrun job: 3h.
	job2 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&job2).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, job2.ID,
		time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC))}).Error)

	// Still in progress: must not count.
	job3 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobInProgress}
	require.NoError(t, gdb.Create(&job3).Error)
	in := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&model.TimeEntry{StaffID: alice.ID, JobID: job3.ID, ClockIn: &in}).Error)

	metrics, err := eng.ComputeCustomerMetrics(ctx, customer.ID)
	require.NoError(t, err)

	// Per-job rounding first, then the mean: (100 + 67) / 2 -> 84.
	assert.Equal(t, 2, metrics.ValidJobs)
	assert.Equal(t, 84, metrics.AverageEfficiency)
	// Wage ratios 36 and 54 at the default 32.31/h rate.
	assert.Equal(t, 45, metrics.AverageWageRatio)

	var persisted model.Customer
	require.NoError(t, gdb.First(&persisted, customer.ID).Error)
	require.NotNil(t, persisted.AverageWageRatio)
	assert.Equal(t, 45, *persisted.AverageWageRatio)
	assert.Nil(t, persisted.TargetTimeMinutes, "stored target time must be cleared, it is derived from tiers")
}

func TestComputeCustomerMetricsNoCompletedJobs(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()

	stale := 55
	customer := model.Customer{Name: "New Customer", Address: "2 Side St", Price: 120, AverageWageRatio: &stale}
	require.NoError(t, gdb.Create(&customer).Error)

	metrics, err := eng.ComputeCustomerMetrics(ctx, customer.ID)
	require.NoError(t, err)
	assert.Zero(t, metrics.ValidJobs)

	// The stale stored ratio is cleared rather than left behind.
	var persisted model.Customer
	require.NoError(t, gdb.First(&persisted, customer.ID).Error)
	assert.Nil(t, persisted.AverageWageRatio)
}

func TestComputeCustomerMetricsFriendsFamily(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()

	kept := 40
	customer := model.Customer{Name: "Mum", Address: "3 Home St", Price: 0, IsFriendsFamily: true, AverageWageRatio: &kept}
	require.NoError(t, gdb.Create(&customer).Error)

	metrics, err := eng.ComputeCustomerMetrics(ctx, customer.ID)
	require.NoError(t, err)
	assert.Zero(t, metrics.ValidJobs)

	// Friends & family is skipped entirely: no write happens at all.
	var persisted model.Customer
	require.NoError(t, gdb.First(&persisted, customer.ID).Error)
	require.NotNil(t, persisted.AverageWageRatio)
	assert.Equal(t, 40, *persisted.AverageWageRatio)
}

func TestComputeCustomerMetricsMissingCustomer(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	_, err := eng.ComputeCustomerMetrics(context.Background(), 9999)
	assert.Error(t, err)
}

func TestComputeDashboardSummary(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()
	seedTiers(t, gdb)

	customer := model.Customer{Name: "Acme Offices", Address: "1 Main St", Price: 180}
	require.NoError(t, gdb.Create(&customer).Error)
	ff := model.Customer{Name: "Mum", Address: "3 Home St", Price: 0, IsFriendsFamily: true}
	require.NoError(t, gdb.Create(&ff).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	bob := model.Staff{Email: "bob@example.com", FirstName: "Bob", LastName: "Singh"}
	require.NoError(t, gdb.Create(&alice).Error)
	require.NoError(t, gdb.Create(&bob).Error)

	// Completed two-person job inside the window: 2h span, 4h of wages.
	job1 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&job1).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{
		closedEntry(alice.ID, job1.ID,
			time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC)),
		closedEntry(bob.ID, job1.ID,
			time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC)),
	}).Error)

	// Friends & family job in the window: counts as completed, carries no
	// revenue and no efficiency sample.
	job2 := model.Job{CustomerID: ff.ID, Price: 0, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&job2).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, job2.ID,
		time.Date(2025, 6, 9, 13, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC))}).Error)

	// Completed outside the window: invisible to this range.
	job3 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&job3).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, job3.ID,
		time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC))}).Error)

	// Still running: counted as active regardless of the range.
	job4 := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobInProgress}
	require.NoError(t, gdb.Create(&job4).Error)
	in := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&model.TimeEntry{StaffID: bob.ID, JobID: job4.ID, ClockIn: &in}).Error)

	summary, err := eng.ComputeDashboardSummary(ctx, RangeCustom, "2025-06-09", "2025-06-09")
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.ActiveCount)
	assert.Equal(t, 2, summary.CompletedCount)
	assert.Equal(t, 180, summary.Revenue)
	assert.Equal(t, 100, summary.EfficiencyPct)
	// Pooled ratio: 4h * 32.31 over 180 -> 72.
	assert.Equal(t, 72, summary.WageRatioPct)
}

func TestComputeDashboardSummaryEmptyRange(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	summary, err := eng.ComputeDashboardSummary(context.Background(), RangeToday, "", "")
	require.NoError(t, err)

	assert.Zero(t, summary.ActiveCount)
	assert.Zero(t, summary.CompletedCount)
	assert.Zero(t, summary.Revenue)
	assert.Zero(t, summary.WageRatioPct)
	assert.Equal(t, 100, summary.EfficiencyPct, "an empty range reads as on-target")
}

func TestComputeDashboardSummaryPartiallyCompletedJob(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()
	seedTiers(t, gdb)

	customer := model.Customer{Name: "Acme Offices", Address: "1 Main St", Price: 180}
	require.NoError(t, gdb.Create(&customer).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	bob := model.Staff{Email: "bob@example.com", FirstName: "Bob", LastName: "Singh"}
	require.NoError(t, gdb.Create(&alice).Error)
	require.NoError(t, gdb.Create(&bob).Error)

	// One worker clocked out, the other is still on site.
	job := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobInProgress}
	require.NoError(t, gdb.Create(&job).Error)
	in := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{
		closedEntry(alice.ID, job.ID, in, time.Date(2025, 6, 9, 11, 0, 0, 0, time.UTC)),
		{StaffID: bob.ID, JobID: job.ID, ClockIn: &in},
	}).Error)

	summary, err := eng.ComputeDashboardSummary(ctx, RangeCustom, "2025-06-09", "2025-06-09")
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.ActiveCount)
	assert.Zero(t, summary.CompletedCount, "a job with an open entry is not completed")
	assert.Zero(t, summary.Revenue)
}

func TestComputeWeeklyTimesheets(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()

	customer := model.Customer{Name: "Acme Offices", Address: "1 Main St", Price: 180}
	require.NoError(t, gdb.Create(&customer).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	bob := model.Staff{Email: "bob@example.com", FirstName: "Bob", LastName: "Singh"}
	require.NoError(t, gdb.Create(&alice).Error)
	require.NoError(t, gdb.Create(&bob).Error)

	var jobs []model.Job
	for i := 0; i < 4; i++ {
		jobs = append(jobs, model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted})
	}
	require.NoError(t, gdb.Create(&jobs).Error)

	// Alice, Monday: two jobs spanning 08:30-17:30. All four lunch
	// conditions hold, so 30 minutes come off.
	require.NoError(t, gdb.Create(&[]model.TimeEntry{
		closedEntry(alice.ID, jobs[0].ID,
			time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)),
		closedEntry(alice.ID, jobs[1].ID,
			time.Date(2025, 6, 9, 12, 30, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 17, 30, 0, 0, time.UTC)),
	}).Error)

	// Alice, Tuesday: one short job, no deduction.
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, jobs[2].ID,
		time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))}).Error)

	// Bob, Monday: one short job, but a force-on override for the day.
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(bob.ID, jobs[3].ID,
		time.Date(2025, 6, 9, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 11, 30, 0, 0, time.UTC))}).Error)
	require.NoError(t, gdb.Create(&model.LunchBreakOverride{
		StaffID: bob.ID, Date: "2025-06-09", HasLunchBreak: true,
	}).Error)

	// Last week's entry must not leak into this week.
	prevJob := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobCompleted}
	require.NoError(t, gdb.Create(&prevJob).Error)
	require.NoError(t, gdb.Create(&[]model.TimeEntry{closedEntry(alice.ID, prevJob.ID,
		time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC))}).Error)

	report, err := eng.ComputeWeeklyTimesheets(ctx, RangeThisWeek)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", report.WeekStart)
	require.Len(t, report.Staff, 2)
	assert.Equal(t, "Alice Nguyen", report.Staff[0].StaffName)
	assert.Equal(t, "Bob Singh", report.Staff[1].StaffName)

	aliceSheet := report.Staff[0]
	require.Len(t, aliceSheet.Days, 7)
	monday := aliceSheet.Days[0]
	assert.Equal(t, "2025-06-09", monday.Date)
	assert.Equal(t, "Monday", monday.Weekday)
	assert.InDelta(t, 8.5, monday.Hours, 1e-9)
	assert.Equal(t, 2, monday.Jobs)
	assert.True(t, monday.LunchBreak)
	require.NotNil(t, monday.StartTime)
	require.NotNil(t, monday.EndTime)
	assert.Equal(t, 8, monday.StartTime.UTC().Hour())
	assert.InDelta(t, 2.0, aliceSheet.Days[1].Hours, 1e-9)
	assert.Zero(t, aliceSheet.Days[6].Hours, "unworked days still render")
	assert.InDelta(t, 10.5, aliceSheet.TotalHours, 1e-9)
	assert.Equal(t, 3, aliceSheet.TotalJobs)

	bobSheet := report.Staff[1]
	bobMonday := bobSheet.Days[0]
	assert.True(t, bobMonday.LunchBreak, "override forces the deduction on")
	assert.True(t, bobMonday.Report.HasOverride)
	assert.InDelta(t, 1.5, bobMonday.Hours, 1e-9)

	assert.InDelta(t, 12.0, report.Totals.TotalHours, 1e-9)
	assert.Equal(t, 4, report.Totals.TotalJobs, "distinct jobs clocked out this week")
}

func TestComputeWeeklyTimesheetsOpenDay(t *testing.T) {
	eng, _, gdb := newTestEngine(t)
	ctx := context.Background()

	customer := model.Customer{Name: "Acme Offices", Address: "1 Main St", Price: 180}
	require.NoError(t, gdb.Create(&customer).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	require.NoError(t, gdb.Create(&alice).Error)
	job := model.Job{CustomerID: customer.ID, Price: 180, Status: model.JobInProgress}
	require.NoError(t, gdb.Create(&job).Error)

	in := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create(&model.TimeEntry{StaffID: alice.ID, JobID: job.ID, ClockIn: &in}).Error)

	report, err := eng.ComputeWeeklyTimesheets(ctx, RangeThisWeek)
	require.NoError(t, err)

	require.Len(t, report.Staff, 1)
	wednesday := report.Staff[0].Days[2]
	assert.Equal(t, 1, wednesday.Jobs)
	assert.Zero(t, wednesday.Hours, "an open day reports no hours until it closes")
	assert.Nil(t, wednesday.StartTime)
	assert.Zero(t, report.Totals.TotalJobs)
}

func TestResolveTeamRosterAt(t *testing.T) {
	eng, st, gdb := newTestEngine(t)
	ctx := context.Background()

	team := model.Team{Name: "Team Red", ColorHex: "#ff0000"}
	require.NoError(t, gdb.Create(&team).Error)
	alice := model.Staff{Email: "alice@example.com", FirstName: "Alice", LastName: "Nguyen"}
	require.NoError(t, gdb.Create(&alice).Error)

	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, st.AddTeamMember(ctx, team.ID, alice.ID, day(10)))
	require.NoError(t, st.RemoveTeamMember(ctx, team.ID, alice.ID, day(11)))

	members, err := eng.ResolveTeamRosterAt(ctx, team.ID, day(10))
	require.NoError(t, err)
	require.Len(t, members, 1, "member on the add date")

	members, err = eng.ResolveTeamRosterAt(ctx, team.ID, day(11))
	require.NoError(t, err)
	assert.Len(t, members, 1, "end date is inclusive")

	members, err = eng.ResolveTeamRosterAt(ctx, team.ID, day(12))
	require.NoError(t, err)
	assert.Empty(t, members, "not a member after the removal date")

	members, err = eng.ResolveTeamRosterAt(ctx, team.ID, day(9))
	require.NoError(t, err)
	assert.Empty(t, members, "not a member before the add date")
}
