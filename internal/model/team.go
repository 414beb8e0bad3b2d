package model

import "time"

// Team is a named cleaning crew.
type Team struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	ColorHex  string `gorm:"size:7;not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// TeamMembership is a dated interval of a staff member's affiliation with a
// team. EndDate == nil means the membership is currently open. At most one
// open interval exists per (team, staff) pair; re-adding a member closes the
// previous interval at the new start date.
type TeamMembership struct {
	ID        uint       `gorm:"primaryKey"`
	TeamID    uint       `gorm:"index:idx_team_staff;not null"`
	StaffID   uint       `gorm:"index:idx_team_staff;not null"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   *time.Time `gorm:"index"`
	CreatedAt time.Time

	// Associations
	Team  Team  `gorm:"constraint:OnDelete:CASCADE"`
	Staff Staff `gorm:"constraint:OnDelete:CASCADE"`
}
