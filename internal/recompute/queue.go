package recompute

import (
	"context"
	"log"
	"sync"

	"cleanops-backend/internal/engine"
	"cleanops-backend/internal/notify"
)

// MetricsComputer recomputes and persists one customer's stored metrics.
type MetricsComputer interface {
	ComputeCustomerMetrics(ctx context.Context, customerID uint) (engine.CustomerMetrics, error)
}

// Notifier posts an opaque event to whoever is subscribed.
type Notifier interface {
	Broadcast(ctx context.Context, eventType string, payload any)
}

// Queue runs customer-metrics recomputation in the background. It is
// fire-and-forget for callers: the clock-out request that triggers a
// recompute returns immediately, and a failed recompute is logged, never
// surfaced and never retried. Requests are keyed by customer with
// at-most-one in flight or queued per key, so a burst of clock-outs for the
// same customer coalesces into a single recompute.
type Queue struct {
	size     int
	jobs     chan uint
	computer MetricsComputer
	notifier Notifier

	mu      sync.Mutex
	pending map[uint]struct{}
}

// NewQueue creates a recompute queue with the given worker count and buffer.
func NewQueue(workers, buffer int, computer MetricsComputer, notifier Notifier) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = workers
	}
	return &Queue{
		size:     workers,
		jobs:     make(chan uint, buffer),
		computer: computer,
		notifier: notifier,
		pending:  make(map[uint]struct{}),
	}
}

// Start launches the worker goroutines.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.size; i++ {
		go q.worker(ctx, i)
	}
}

// Enqueue schedules a recompute for the customer. Returns false when the
// request was coalesced with one already pending, or dropped because the
// buffer is full.
func (q *Queue) Enqueue(customerID uint) bool {
	q.mu.Lock()
	if _, inFlight := q.pending[customerID]; inFlight {
		q.mu.Unlock()
		return false
	}
	q.pending[customerID] = struct{}{}
	q.mu.Unlock()

	select {
	case q.jobs <- customerID:
		return true
	default:
		q.clear(customerID)
		log.Printf("recompute queue full, dropping customer %d", customerID)
		return false
	}
}

func (q *Queue) worker(ctx context.Context, id int) {
	log.Printf("recompute worker %d started", id)
	for {
		select {
		case customerID := <-q.jobs:
			q.process(ctx, customerID)
		case <-ctx.Done():
			log.Printf("recompute worker %d shutting down", id)
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, customerID uint) {
	defer q.clear(customerID)

	metrics, err := q.computer.ComputeCustomerMetrics(ctx, customerID)
	if err != nil {
		log.Printf("background metrics recompute failed for customer %d: %v", customerID, err)
		return
	}

	if q.notifier != nil {
		q.notifier.Broadcast(ctx, notify.EventCustomerMetricsUpdated, map[string]any{
			"customerId":       customerID,
			"averageWageRatio": metrics.AverageWageRatio,
			"validJobs":        metrics.ValidJobs,
		})
	}
}

func (q *Queue) clear(customerID uint) {
	q.mu.Lock()
	delete(q.pending, customerID)
	q.mu.Unlock()
}
