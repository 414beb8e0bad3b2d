package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cleanops-backend/internal/model"
)

// SettingsValues reads the requested settings rows into a key/value map.
// Absent keys are simply missing from the map; defaulting is the engine's
// job.
func (s *gormStore) SettingsValues(ctx context.Context, keys []string) (map[string]string, error) {
	var rows []model.Setting
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// PutSetting upserts one settings row.
func (s *gormStore) PutSetting(ctx context.Context, key, value string) error {
	row := model.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}

// ListPriceTiers returns all tiers in ascending price order.
func (s *gormStore) ListPriceTiers(ctx context.Context) ([]model.PriceTier, error) {
	var tiers []model.PriceTier
	if err := s.db.WithContext(ctx).Order("price_min ASC, id ASC").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch price tiers: %w", err)
	}
	return tiers, nil
}

// ReplacePriceTiers swaps the whole tier table for the supplied set. Tiers
// are edited as one configuration, not row by row.
func (s *gormStore) ReplacePriceTiers(ctx context.Context, tiers []model.PriceTier) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.PriceTier{}).Error; err != nil {
			return fmt.Errorf("failed to clear price tiers: %w", err)
		}
		if len(tiers) == 0 {
			return nil
		}
		for i := range tiers {
			tiers[i].ID = 0
		}
		if err := tx.Create(&tiers).Error; err != nil {
			return fmt.Errorf("failed to insert price tiers: %w", err)
		}
		return nil
	})
}
