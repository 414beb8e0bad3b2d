package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cleanops-backend/internal/model"
)

// AddTeamMember opens a membership interval. Any interval still open for the
// same (team, staff) pair is closed at the new start date first, inside one
// transaction, so at most one open interval ever exists per pair.
func (s *gormStore) AddTeamMember(ctx context.Context, teamID, staffID uint, start time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.TeamMembership{}).
			Where("team_id = ? AND staff_id = ? AND end_date IS NULL", teamID, staffID).
			Update("end_date", start).Error
		if err != nil {
			return fmt.Errorf("failed to close open membership for staff %d on team %d: %w", staffID, teamID, err)
		}

		interval := model.TeamMembership{
			TeamID:    teamID,
			StaffID:   staffID,
			StartDate: start,
		}
		if err := tx.Create(&interval).Error; err != nil {
			return fmt.Errorf("failed to open membership for staff %d on team %d: %w", staffID, teamID, err)
		}
		return nil
	})
}

// RemoveTeamMember closes the currently-open interval at the given end date.
// History is never deleted; past rosters stay reconstructable.
func (s *gormStore) RemoveTeamMember(ctx context.Context, teamID, staffID uint, end time.Time) error {
	result := s.db.WithContext(ctx).Model(&model.TeamMembership{}).
		Where("team_id = ? AND staff_id = ? AND end_date IS NULL", teamID, staffID).
		Update("end_date", end)
	if result.Error != nil {
		return fmt.Errorf("failed to close membership for staff %d on team %d: %w", staffID, teamID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TeamMembersAt resolves the team roster as of an exact date: an interval is
// active at D iff startDate <= D and (endDate is null or endDate >= D).
func (s *gormStore) TeamMembersAt(ctx context.Context, teamID uint, at time.Time) ([]model.Staff, error) {
	var members []model.Staff
	err := s.db.WithContext(ctx).Model(&model.Staff{}).
		Joins("JOIN team_memberships tm ON tm.staff_id = staff.id").
		Where("tm.team_id = ? AND tm.start_date <= ? AND (tm.end_date IS NULL OR tm.end_date >= ?)", teamID, at, at).
		Order("staff.first_name ASC, staff.last_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster for team %d: %w", teamID, err)
	}
	return members, nil
}

// StaffTeamsAt is the inverse lookup: every team the staff member belonged
// to on the given date.
func (s *gormStore) StaffTeamsAt(ctx context.Context, staffID uint, at time.Time) ([]model.Team, error) {
	var teams []model.Team
	err := s.db.WithContext(ctx).Model(&model.Team{}).
		Joins("JOIN team_memberships tm ON tm.team_id = teams.id").
		Where("tm.staff_id = ? AND tm.start_date <= ? AND (tm.end_date IS NULL OR tm.end_date >= ?)", staffID, at, at).
		Order("teams.name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve teams for staff %d: %w", staffID, err)
	}
	return teams, nil
}
