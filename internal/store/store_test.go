package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_SettingsValues(t *testing.T) {
	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "settings" WHERE key IN`)).
		WithArgs("staff_pay_rate_per_hour", "lunch_break_min_hours").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("staff_pay_rate_per_hour", "32.31"))

	values, err := store.SettingsValues(context.Background(),
		[]string{"staff_pay_rate_per_hour", "lunch_break_min_hours"})
	require.NoError(t, err)

	assert.Equal(t, "32.31", values["staff_pay_rate_per_hour"])
	_, present := values["lunch_break_min_hours"]
	assert.False(t, present, "absent rows stay absent, defaulting is not the store's job")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SaveCustomerMetrics(t *testing.T) {
	testCases := []struct {
		name             string
		averageWageRatio *int
		expectedArg      any
	}{
		{
			name:             "stores the recomputed ratio",
			averageWageRatio: func() *int { v := 45; return &v }(),
			expectedArg:      45,
		},
		{
			name:             "clears the ratio when no valid jobs remain",
			averageWageRatio: nil,
			expectedArg:      nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			store := NewGormStore(gormDB)

			mock.ExpectBegin()
			// The stored target time is always written back to NULL; it is
			// derived from price tiers on read.
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET "average_wage_ratio"=$1,"target_time_minutes"=$2 WHERE id = $3`)).
				WithArgs(tc.expectedArg, nil, 7).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := store.SaveCustomerMetrics(context.Background(), 7, tc.averageWageRatio)
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_SetJobStatus(t *testing.T) {
	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "jobs" SET "status"=$1 WHERE id = $2`)).
		WithArgs("completed", 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SetJobStatus(context.Background(), 12, "completed")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CountActiveJobs(t *testing.T) {
	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT\("job_id"\)\) FROM "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := store.CountActiveJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
