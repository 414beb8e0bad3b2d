package model

import "time"

// Clean frequencies.
const (
	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyTriWeekly   = "tri-weekly"
	FrequencyMonthly     = "monthly"
	FrequencyOneOff      = "one-off"
)

// Customer is a billed (or friends & family) cleaning customer.
//
// TargetTimeMinutes is always persisted as nil: target time is derived from
// price tiers on demand, never stored. AverageWageRatio is the stored output
// of the background metrics recompute.
type Customer struct {
	ID                   uint   `gorm:"primaryKey"`
	Name                 string `gorm:"size:255;not null"`
	Address              string `gorm:"not null"`
	Phone                string `gorm:"size:32"`
	Email                string `gorm:"size:255"`
	Price                int    `gorm:"not null"`
	CleanFrequency       string `gorm:"size:16;not null;default:weekly"`
	Notes                string
	TargetTimeMinutes    *int
	AverageWageRatio     *int
	IsFriendsFamily      bool `gorm:"not null;default:false"`
	FriendsFamilyMinutes *int
	Active               bool `gorm:"not null;default:true"`
	CreatedAt            time.Time
}
