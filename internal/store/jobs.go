package store

import (
	"context"
	"fmt"

	"cleanops-backend/internal/model"
)

// GetCustomer looks up one customer by id.
func (s *gormStore) GetCustomer(ctx context.Context, id uint) (model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// SaveCustomerMetrics persists the recomputed wage ratio. TargetTimeMinutes
// is always written back as NULL: target time is derived from tiers on
// demand, never stored.
func (s *gormStore) SaveCustomerMetrics(ctx context.Context, id uint, averageWageRatio *int) error {
	err := s.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).
		Updates(map[string]any{
			"target_time_minutes": nil,
			"average_wage_ratio":  averageWageRatio,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save metrics for customer %d: %w", id, err)
	}
	return nil
}

// GetJob looks up one job by id, customer preloaded.
func (s *gormStore) GetJob(ctx context.Context, id uint) (model.Job, error) {
	var job model.Job
	if err := s.db.WithContext(ctx).Preload("Customer").First(&job, id).Error; err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// SetJobStatus updates a job's lifecycle status.
func (s *gormStore) SetJobStatus(ctx context.Context, jobID uint, status string) error {
	err := s.db.WithContext(ctx).Model(&model.Job{}).Where("id = ?", jobID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to set job %d status to %s: %w", jobID, status, err)
	}
	return nil
}

// CompletedJobsWithEntries returns every fully clocked-out job for a
// customer. A job qualifies when it has at least one entry and every entry
// has both timestamps.
func (s *gormStore) CompletedJobsWithEntries(ctx context.Context, customerID uint) ([]JobWithEntries, error) {
	var jobs []model.Job
	err := s.db.WithContext(ctx).Preload("Customer").
		Where("customer_id = ?", customerID).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs for customer %d: %w", customerID, err)
	}
	withEntries, err := s.attachEntries(ctx, jobs)
	if err != nil {
		return nil, err
	}

	completed := withEntries[:0]
	for _, jw := range withEntries {
		if len(jw.Entries) == 0 {
			continue
		}
		done := true
		for _, e := range jw.Entries {
			if !e.Closed() {
				done = false
				break
			}
		}
		if done {
			completed = append(completed, jw)
		}
	}
	return completed, nil
}

// JobsWithEntriesByIDs loads the given jobs with their entries, customers
// preloaded.
func (s *gormStore) JobsWithEntriesByIDs(ctx context.Context, ids []uint) ([]JobWithEntries, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []model.Job
	err := s.db.WithContext(ctx).Preload("Customer").
		Where("id IN ?", ids).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return s.attachEntries(ctx, jobs)
}

func (s *gormStore) attachEntries(ctx context.Context, jobs []model.Job) ([]JobWithEntries, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}

	var entries []model.TimeEntry
	if err := s.db.WithContext(ctx).Where("job_id IN ?", ids).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}
	byJob := make(map[uint][]model.TimeEntry, len(jobs))
	for _, e := range entries {
		byJob[e.JobID] = append(byJob[e.JobID], e)
	}

	result := make([]JobWithEntries, len(jobs))
	for i, j := range jobs {
		result[i] = JobWithEntries{Job: j, Entries: byJob[j.ID]}
	}
	return result, nil
}
