package model

import "time"

// TimeEntry is one staff member's clock-in/clock-out span against a job.
// ClockOut == nil marks the entry (and its job) as active. Timestamps are
// stored in UTC; all day-of-week and time-of-day reasoning happens in the
// business timezone at the engine layer.
type TimeEntry struct {
	ID                uint       `gorm:"primaryKey"`
	StaffID           uint       `gorm:"index;not null"`
	JobID             uint       `gorm:"index;not null"`
	ClockIn           *time.Time `gorm:"index"`
	ClockOut          *time.Time `gorm:"index"`
	LunchBreak        bool       `gorm:"not null;default:false"`
	AutoLunchDeducted bool       `gorm:"not null;default:false"`

	// Associations
	Staff Staff `gorm:"constraint:OnDelete:CASCADE"`
	Job   Job   `gorm:"constraint:OnDelete:CASCADE"`
}

// Closed reports whether both timestamps are present. Only closed entries
// contribute to duration and wage math.
func (e TimeEntry) Closed() bool {
	return e.ClockIn != nil && e.ClockOut != nil
}
