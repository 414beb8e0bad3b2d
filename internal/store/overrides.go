package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"cleanops-backend/internal/model"
)

// LunchOverridesBetween returns the overrides whose date falls in the
// half-open [startDate, endDate) window. Dates are business-local
// YYYY-MM-DD strings, which compare correctly lexicographically.
func (s *gormStore) LunchOverridesBetween(ctx context.Context, startDate, endDate string) ([]model.LunchBreakOverride, error) {
	var overrides []model.LunchBreakOverride
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date < ?", startDate, endDate).
		Find(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lunch break overrides: %w", err)
	}
	return overrides, nil
}

// UpsertLunchOverride writes the single override row for (staff, date).
func (s *gormStore) UpsertLunchOverride(ctx context.Context, staffID uint, date string, hasLunchBreak bool) error {
	row := model.LunchBreakOverride{StaffID: staffID, Date: date, HasLunchBreak: hasLunchBreak}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "staff_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_lunch_break"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save lunch break override for staff %d on %s: %w", staffID, date, err)
	}
	return nil
}
