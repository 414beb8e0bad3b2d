package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cleanops-backend/internal/engine"
	"cleanops-backend/internal/model"
)

// GetPayRate handles GET /api/settings/pay-rate.
func (h *Handler) GetPayRate(c *gin.Context) {
	values, err := h.store.SettingsValues(c.Request.Context(), []string{engine.KeyPayRatePerHour})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	rate := engine.DefaultPayRatePerHour
	if raw, ok := values[engine.KeyPayRatePerHour]; ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			rate = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"payRatePerHour": rate}})
}

type payRateRequest struct {
	PayRatePerHour float64 `json:"payRatePerHour" binding:"required,gt=0"`
}

// PutPayRate handles PUT /api/settings/pay-rate.
func (h *Handler) PutPayRate(c *gin.Context) {
	var req payRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	value := strconv.FormatFloat(req.PayRatePerHour, 'f', -1, 64)
	if err := h.store.PutSetting(c.Request.Context(), engine.KeyPayRatePerHour, value); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pay rate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetPriceTiers handles GET /api/tiers.
func (h *Handler) GetPriceTiers(c *gin.Context) {
	tiers, err := h.store.ListPriceTiers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load price tiers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tiers})
}

type priceTierRequest struct {
	PriceMin        float64 `json:"priceMin"`
	PriceMax        float64 `json:"priceMax"`
	AllottedMinutes int     `json:"allottedMinutes"`
}

// PutPriceTiers handles PUT /api/tiers, replacing the whole tier
// configuration in one write.
func (h *Handler) PutPriceTiers(c *gin.Context) {
	var req []priceTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tiers := make([]model.PriceTier, len(req))
	for i, t := range req {
		if t.PriceMin > t.PriceMax || t.AllottedMinutes <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid tier configuration"})
			return
		}
		tiers[i] = model.PriceTier{PriceMin: t.PriceMin, PriceMax: t.PriceMax, AllottedMinutes: t.AllottedMinutes}
	}
	if err := h.store.ReplacePriceTiers(c.Request.Context(), tiers); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save price tiers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
