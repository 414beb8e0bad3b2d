package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCustomerMetrics handles GET /api/customers/:customer_id/metrics,
// recomputing the customer's efficiency and wage-ratio aggregates on demand.
func (h *Handler) GetCustomerMetrics(c *gin.Context) {
	customerID, ok := parseID(c, "customer_id")
	if !ok {
		return
	}

	metrics, err := h.engine.ComputeCustomerMetrics(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute customer metrics"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": metrics})
}
