package model

import "time"

// Staff roles.
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Staff represents one employee who can be scheduled onto teams and jobs.
type Staff struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:32"`
	Role      string `gorm:"size:16;not null;default:staff"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// TableName keeps the table singular; "staff" has no natural plural.
func (Staff) TableName() string {
	return "staff"
}

// FullName is the display name used on timesheets.
func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}
