package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"cleanops-backend/internal/model"
	"cleanops-backend/internal/store"
)

// Engine is the analytics core: it turns raw time-entry records into
// normalized efficiency, wage and timesheet metrics. It is single-threaded
// per invocation and reads a fresh settings snapshot per computation.
type Engine struct {
	store store.Store
	loc   *time.Location
	now   func() time.Time
}

// New creates an engine computing in the given business timezone.
func New(s store.Store, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{store: s, loc: loc, now: time.Now}
}

// snapshot loads the settings rows the engine reads and freezes them for one
// computation.
func (e *Engine) snapshot(ctx context.Context) (Snapshot, error) {
	values, err := e.store.SettingsValues(ctx, []string{
		KeyPayRatePerHour,
		KeyLunchMinHours,
		KeyLunchDurationMinutes,
		KeyLunchStartTime,
		KeyLunchFinishTime,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load settings snapshot: %w", err)
	}
	return BuildSnapshot(values, e.loc), nil
}

// ResolveTeamRosterAt answers "who was on team T at date D" from the
// temporal membership intervals.
func (e *Engine) ResolveTeamRosterAt(ctx context.Context, teamID uint, at time.Time) ([]model.Staff, error) {
	return e.store.TeamMembersAt(ctx, teamID, at)
}

// ResolveStaffTeamsAt answers the inverse: which teams staff member U was on
// at date D.
func (e *Engine) ResolveStaffTeamsAt(ctx context.Context, staffID uint, at time.Time) ([]model.Team, error) {
	return e.store.StaffTeamsAt(ctx, staffID, at)
}

// round2 rounds hour totals to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
