package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"cleanops-backend/internal/mw"
)

// RouterOptions tunes the middleware applied to the API group.
type RouterOptions struct {
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	if opts.RateLimitPerSec <= 0 {
		opts.RateLimitPerSec = 10
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimitPerSec), opts.RateLimitBurst)
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Aggregated reports; cached because they scan whole windows.
		api.GET("/dashboard", caching, handler.GetDashboard)
		api.GET("/timesheets", caching, handler.GetTimesheets)
		api.POST("/timesheets/lunch-break", handler.PutLunchBreakOverride)

		// Temporal team membership.
		api.POST("/teams/:team_id/members", handler.AddTeamMember)
		api.DELETE("/teams/:team_id/members/:staff_id", handler.RemoveTeamMember)
		api.GET("/teams/:team_id/members", handler.GetTeamRoster)
		api.GET("/staff/:staff_id/teams", handler.GetStaffTeams)

		// Clock actions and job views.
		api.POST("/jobs/:job_id/clock-in", handler.ClockIn)
		api.POST("/jobs/:job_id/clock-out", handler.ClockOut)
		api.GET("/jobs/:job_id", handler.GetJob)

		// Customer metrics.
		api.GET("/customers/:customer_id/metrics", handler.GetCustomerMetrics)

		// Configuration.
		api.GET("/settings/pay-rate", handler.GetPayRate)
		api.PUT("/settings/pay-rate", handler.PutPayRate)
		api.GET("/tiers", handler.GetPriceTiers)
		api.PUT("/tiers", handler.PutPriceTiers)

		// Push subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
