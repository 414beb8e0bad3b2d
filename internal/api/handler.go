package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"cleanops-backend/internal/engine"
	"cleanops-backend/internal/notify"
	"cleanops-backend/internal/recompute"
	"cleanops-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	engine   *engine.Engine
	queue    *recompute.Queue
	notifier *notify.Broadcaster
	webpush  *webpush.Options
	loc      *time.Location
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, eng *engine.Engine, queue *recompute.Queue, notifier *notify.Broadcaster, webpushOptions *webpush.Options, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		store:    s,
		engine:   eng,
		queue:    queue,
		notifier: notifier,
		webpush:  webpushOptions,
		loc:      loc,
		now:      time.Now,
	}
}
