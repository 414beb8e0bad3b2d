package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard handles GET /api/dashboard?range=&start=&end=.
func (h *Handler) GetDashboard(c *gin.Context) {
	selector := c.DefaultQuery("range", "today")
	summary, err := h.engine.ComputeDashboardSummary(
		c.Request.Context(), selector, c.Query("start"), c.Query("end"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
