package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cleanops-backend/internal/model"
	"cleanops-backend/internal/notify"
)

type clockInRequest struct {
	StaffIDs []uint `json:"staffIds" binding:"required,min=1"`
}

// ClockIn handles POST /api/jobs/:job_id/clock-in, opening a time entry for
// each listed staff member and moving the job to in_progress.
func (h *Handler) ClockIn(c *gin.Context) {
	jobID, ok := parseID(c, "job_id")
	if !ok {
		return
	}
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetJob(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		}
		return
	}

	now := h.now().UTC()
	entries := make([]model.TimeEntry, len(req.StaffIDs))
	for i, staffID := range req.StaffIDs {
		in := now
		entries[i] = model.TimeEntry{StaffID: staffID, JobID: jobID, ClockIn: &in}
	}
	if err := h.store.CreateTimeEntries(ctx, entries); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to clock in"})
		return
	}
	if err := h.store.SetJobStatus(ctx, jobID, model.JobInProgress); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job status"})
		return
	}

	if h.notifier != nil {
		go h.notifier.Broadcast(context.Background(), notify.EventStaffClockedIn, gin.H{
			"jobId":     jobID,
			"members":   len(entries),
			"timestamp": now,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"jobId":       jobID,
		"clockedIn":   len(entries),
		"clockInTime": now,
	}})
}

type clockOutRequest struct {
	StaffIDs   []uint `json:"staffIds"` // empty means everyone still clocked in
	LunchBreak bool   `json:"lunchBreak"`
}

// ClockOut handles POST /api/jobs/:job_id/clock-out. Closing the last open
// entry completes the job, which fires the background metrics recompute for
// the owning customer; the response never waits on it.
func (h *Handler) ClockOut(c *gin.Context) {
	jobID, ok := parseID(c, "job_id")
	if !ok {
		return
	}
	var req clockOutRequest
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		}
		return
	}

	open, err := h.store.OpenEntriesByJob(ctx, jobID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load open entries"})
		return
	}
	selected := selectEntries(open, req.StaffIDs)
	if len(selected) == 0 {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "No open time entries to clock out"})
		return
	}

	now := h.now().UTC()
	for _, entry := range selected {
		auto := !req.LunchBreak && h.spansNoon(entry.ClockIn, now)
		if err := h.store.CloseTimeEntries(ctx, []uint{entry.ID}, now, req.LunchBreak || auto, auto); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to clock out"})
			return
		}
	}

	remaining, err := h.store.CountOpenEntriesByJob(ctx, jobID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check job completion"})
		return
	}

	completed := remaining == 0
	if completed {
		if err := h.store.SetJobStatus(ctx, jobID, model.JobCompleted); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job status"})
			return
		}
		// Fire-and-forget: the clock-out response never waits on metrics.
		if h.queue != nil {
			h.queue.Enqueue(job.CustomerID)
		}
	}

	if h.notifier != nil {
		go h.notifier.Broadcast(context.Background(), notify.EventStaffClockedOut, gin.H{
			"jobId":          jobID,
			"clockedOut":     len(selected),
			"isJobCompleted": completed,
			"timestamp":      now,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"jobId":          jobID,
		"clockedOut":     len(selected),
		"isJobCompleted": completed,
	}})
}

// selectEntries filters open entries to the requested staff; an empty filter
// selects everyone.
func selectEntries(open []model.TimeEntry, staffIDs []uint) []model.TimeEntry {
	if len(staffIDs) == 0 {
		return open
	}
	wanted := make(map[uint]struct{}, len(staffIDs))
	for _, id := range staffIDs {
		wanted[id] = struct{}{}
	}
	var selected []model.TimeEntry
	for _, e := range open {
		if _, ok := wanted[e.StaffID]; ok {
			selected = append(selected, e)
		}
	}
	return selected
}

// spansNoon reports whether an entry crossed local midday, the quick
// heuristic for flagging a likely lunch at clock-out time. The timesheet
// engine applies the full rule set later.
func (h *Handler) spansNoon(clockIn *time.Time, clockOut time.Time) bool {
	if clockIn == nil {
		return false
	}
	return clockIn.In(h.loc).Hour() < 12 && clockOut.In(h.loc).Hour() > 12
}
