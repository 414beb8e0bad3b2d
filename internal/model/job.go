package model

import (
	"encoding/json"
	"time"
)

// Job statuses.
const (
	JobScheduled  = "scheduled"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
)

// Job is one scheduled or performed cleaning visit. Price is copied from the
// customer at creation so later price changes do not rewrite history.
// CoreTeamJSON and AdditionalStaffJSON snapshot the roster at creation time.
type Job struct {
	ID                  uint   `gorm:"primaryKey"`
	CustomerID          uint   `gorm:"index;not null"`
	TeamID              *uint  `gorm:"index"`
	Status              string `gorm:"size:16;not null;default:scheduled"`
	Price               int    `gorm:"not null"`
	CoreTeamJSON        string `gorm:"column:core_team_json"`
	AdditionalStaffJSON string `gorm:"column:additional_staff_json"`
	CreatedAt           time.Time

	// Associations
	Customer Customer `gorm:"constraint:OnDelete:RESTRICT"`
}

// RosterMember is one entry of a job's snapshotted roster, either a core team
// member or additional staff brought in for the visit.
type RosterMember struct {
	StaffID  uint   `json:"staffId,omitempty"`
	Name     string `json:"name"`
	CoreTeam bool   `json:"coreTeam"`
}

// DecodeRoster parses a snapshotted roster column. Malformed or empty JSON
// degrades to an empty slice; a stored roster must never fail a whole
// response.
func DecodeRoster(raw string, coreTeam bool) []RosterMember {
	if raw == "" {
		return []RosterMember{}
	}
	var members []RosterMember
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		// Older rows store a bare array of names.
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return []RosterMember{}
		}
		members = make([]RosterMember, 0, len(names))
		for _, n := range names {
			members = append(members, RosterMember{Name: n})
		}
	}
	for i := range members {
		members[i].CoreTeam = coreTeam
	}
	return members
}
