package model

import "time"

// LunchBreakOverride pins the lunch-break decision for one staff member on
// one calendar day, in either direction. At most one row exists per
// (staff, date); it always wins over the automatic rule.
type LunchBreakOverride struct {
	ID            uint   `gorm:"primaryKey"`
	StaffID       uint   `gorm:"uniqueIndex:idx_staff_date;not null"`
	Date          string `gorm:"uniqueIndex:idx_staff_date;size:10;not null"` // YYYY-MM-DD, business-local
	HasLunchBreak bool   `gorm:"not null"`
	CreatedAt     time.Time

	// Associations
	Staff Staff `gorm:"constraint:OnDelete:CASCADE"`
}
