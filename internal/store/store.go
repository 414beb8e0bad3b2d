package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cleanops-backend/internal/model"
)

// JobWithEntries pairs a job with all of its time entries, customer
// preloaded.
type JobWithEntries struct {
	Job     model.Job
	Entries []model.TimeEntry
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Settings and price tiers.
	SettingsValues(ctx context.Context, keys []string) (map[string]string, error)
	PutSetting(ctx context.Context, key, value string) error
	ListPriceTiers(ctx context.Context) ([]model.PriceTier, error)
	ReplacePriceTiers(ctx context.Context, tiers []model.PriceTier) error

	// Customers and jobs.
	GetCustomer(ctx context.Context, id uint) (model.Customer, error)
	SaveCustomerMetrics(ctx context.Context, id uint, averageWageRatio *int) error
	GetJob(ctx context.Context, id uint) (model.Job, error)
	SetJobStatus(ctx context.Context, jobID uint, status string) error
	CompletedJobsWithEntries(ctx context.Context, customerID uint) ([]JobWithEntries, error)
	JobsWithEntriesByIDs(ctx context.Context, ids []uint) ([]JobWithEntries, error)

	// Time entries.
	CountActiveJobs(ctx context.Context) (int64, error)
	JobIDsClockedOutBetween(ctx context.Context, start, end time.Time) ([]uint, error)
	EntriesClockedInBetween(ctx context.Context, start, end time.Time) ([]model.TimeEntry, error)
	OpenEntriesByJob(ctx context.Context, jobID uint) ([]model.TimeEntry, error)
	CreateTimeEntries(ctx context.Context, entries []model.TimeEntry) error
	CloseTimeEntries(ctx context.Context, ids []uint, at time.Time, lunchBreak, autoDeducted bool) error
	CountOpenEntriesByJob(ctx context.Context, jobID uint) (int64, error)

	// Lunch-break overrides.
	LunchOverridesBetween(ctx context.Context, startDate, endDate string) ([]model.LunchBreakOverride, error)
	UpsertLunchOverride(ctx context.Context, staffID uint, date string, hasLunchBreak bool) error

	// Temporal team membership.
	AddTeamMember(ctx context.Context, teamID, staffID uint, start time.Time) error
	RemoveTeamMember(ctx context.Context, teamID, staffID uint, end time.Time) error
	TeamMembersAt(ctx context.Context, teamID uint, at time.Time) ([]model.Staff, error)
	StaffTeamsAt(ctx context.Context, staffID uint, at time.Time) ([]model.Team, error)

	// Push subscriptions.
	SaveSubscription(ctx context.Context, sub model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}
