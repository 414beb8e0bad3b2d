package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cleanops-backend/internal/model"
)

// GetJob handles GET /api/jobs/:job_id, returning the job with its
// snapshotted roster decoded. A malformed roster column degrades to an empty
// member list rather than failing the response.
func (h *Handler) GetJob(c *gin.Context) {
	jobID, ok := parseID(c, "job_id")
	if !ok {
		return
	}

	job, err := h.store.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		}
		return
	}

	members := model.DecodeRoster(job.CoreTeamJSON, true)
	members = append(members, model.DecodeRoster(job.AdditionalStaffJSON, false)...)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"id":         job.ID,
		"customerId": job.CustomerID,
		"teamId":     job.TeamID,
		"status":     job.Status,
		"price":      job.Price,
		"createdAt":  job.CreatedAt,
		"members":    members,
	}})
}
