package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// parseDateQuery reads an optional ?at=YYYY-MM-DD query, defaulting to the
// current business-local day.
func (h *Handler) parseDateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		now := h.now().In(h.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc), true
	}
	at, err := time.ParseInLocation("2006-01-02", raw, h.loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' date. Use YYYY-MM-DD."})
		return time.Time{}, false
	}
	return at, true
}

type addMemberRequest struct {
	StaffID   uint   `json:"staffId" binding:"required"`
	StartDate string `json:"startDate"`
}

// AddTeamMember handles POST /api/teams/:team_id/members. Re-adding a
// member closes the previous open interval at the new start date.
func (h *Handler) AddTeamMember(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := h.now().In(h.loc)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, h.loc)
	if req.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.StartDate, h.loc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate. Use YYYY-MM-DD."})
			return
		}
		start = parsed
	}

	if err := h.store.AddTeamMember(c.Request.Context(), teamID, req.StaffID, start); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to add team member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"teamId":    teamID,
		"staffId":   req.StaffID,
		"startDate": start.Format("2006-01-02"),
	}})
}

type removeMemberRequest struct {
	EndDate string `json:"endDate"`
}

// RemoveTeamMember handles DELETE /api/teams/:team_id/members/:staff_id.
// The interval is closed, not deleted; roster history stays intact.
func (h *Handler) RemoveTeamMember(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	staffID, ok := parseID(c, "staff_id")
	if !ok {
		return
	}

	// Body is optional; an absent body means "ended today".
	var req removeMemberRequest
	_ = c.ShouldBindJSON(&req)

	end := h.now().In(h.loc)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, h.loc)
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EndDate, h.loc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate. Use YYYY-MM-DD."})
			return
		}
		end = parsed
	}

	err := h.store.RemoveTeamMember(c.Request.Context(), teamID, staffID, end)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "No open membership for that staff member"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove team member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"teamId":  teamID,
		"staffId": staffID,
		"endDate": end.Format("2006-01-02"),
	}})
}

// GetTeamRoster handles GET /api/teams/:team_id/members?at=YYYY-MM-DD,
// resolving the roster as of an exact date.
func (h *Handler) GetTeamRoster(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	at, ok := h.parseDateQuery(c)
	if !ok {
		return
	}

	members, err := h.engine.ResolveTeamRosterAt(c.Request.Context(), teamID, at)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve team roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"teamId":  teamID,
		"at":      at.Format("2006-01-02"),
		"members": members,
	}})
}

// GetStaffTeams handles GET /api/staff/:staff_id/teams?at=YYYY-MM-DD.
func (h *Handler) GetStaffTeams(c *gin.Context) {
	staffID, ok := parseID(c, "staff_id")
	if !ok {
		return
	}
	at, ok := h.parseDateQuery(c)
	if !ok {
		return
	}

	teams, err := h.engine.ResolveStaffTeamsAt(c.Request.Context(), staffID, at)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve staff teams"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"staffId": staffID,
		"at":      at.Format("2006-01-02"),
		"teams":   teams,
	}})
}
