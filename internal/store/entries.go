package store

import (
	"context"
	"fmt"
	"time"

	"cleanops-backend/internal/model"
)

// CountActiveJobs counts jobs that currently have at least one open time
// entry, independent of any date range.
func (s *gormStore) CountActiveJobs(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("clock_out IS NULL AND clock_in IS NOT NULL").
		Distinct("job_id").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active jobs: %w", err)
	}
	return count, nil
}

// JobIDsClockedOutBetween returns the distinct jobs touched by a clock-out
// inside the half-open [start, end) window.
func (s *gormStore) JobIDsClockedOutBetween(ctx context.Context, start, end time.Time) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("clock_out >= ? AND clock_out < ?", start, end).
		Distinct().Pluck("job_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clocked-out jobs: %w", err)
	}
	return ids, nil
}

// EntriesClockedInBetween returns every entry whose clock-in falls inside
// [start, end), staff preloaded for timesheet display.
func (s *gormStore) EntriesClockedInBetween(ctx context.Context, start, end time.Time) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := s.db.WithContext(ctx).Preload("Staff").
		Where("clock_in >= ? AND clock_in < ?", start, end).
		Order("clock_in ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}
	return entries, nil
}

// OpenEntriesByJob returns the job's entries that have not clocked out yet.
func (s *gormStore) OpenEntriesByJob(ctx context.Context, jobID uint) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND clock_out IS NULL", jobID).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open entries for job %d: %w", jobID, err)
	}
	return entries, nil
}

// CreateTimeEntries inserts a batch of entries.
func (s *gormStore) CreateTimeEntries(ctx context.Context, entries []model.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to create time entries: %w", err)
	}
	return nil
}

// CloseTimeEntries stamps the given entries with a clock-out time and the
// lunch flags decided at clock-out.
func (s *gormStore) CloseTimeEntries(ctx context.Context, ids []uint, at time.Time, lunchBreak, autoDeducted bool) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("id IN ? AND clock_out IS NULL", ids).
		Updates(map[string]any{
			"clock_out":           at,
			"lunch_break":         lunchBreak,
			"auto_lunch_deducted": autoDeducted,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to close time entries: %w", err)
	}
	return nil
}

// CountOpenEntriesByJob counts a job's entries still missing a clock-out.
// Zero means the job just became fully completed.
func (s *gormStore) CountOpenEntriesByJob(ctx context.Context, jobID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TimeEntry{}).
		Where("job_id = ? AND clock_out IS NULL", jobID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count open entries for job %d: %w", jobID, err)
	}
	return count, nil
}
