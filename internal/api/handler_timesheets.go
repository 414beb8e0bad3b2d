package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetTimesheets handles GET /api/timesheets?week=thisWeek|lastWeek.
func (h *Handler) GetTimesheets(c *gin.Context) {
	week := c.DefaultQuery("week", "thisWeek")
	report, err := h.engine.ComputeWeeklyTimesheets(c.Request.Context(), week)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

type lunchBreakOverrideRequest struct {
	StaffID       uint   `json:"staffId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	HasLunchBreak *bool  `json:"hasLunchBreak" binding:"required"`
}

// PutLunchBreakOverride handles POST /api/timesheets/lunch-break, pinning
// the lunch decision for one staff member on one day.
func (h *Handler) PutLunchBreakOverride(c *gin.Context) {
	var req lunchBreakOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	if err := h.store.UpsertLunchOverride(c.Request.Context(), req.StaffID, req.Date, *req.HasLunchBreak); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lunch break override"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
