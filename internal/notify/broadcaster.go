package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"

	"cleanops-backend/internal/store"
)

// Event types pushed to subscribers.
const (
	EventStaffClockedIn         = "staff_clocked_in"
	EventStaffClockedOut        = "staff_clocked_out"
	EventCustomerMetricsUpdated = "customer_metrics_updated"
)

// Event is the opaque notification shape subscribers receive. The engine
// does not know who is subscribed; it just posts.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Broadcaster fans an event out to every stored push subscription.
type Broadcaster struct {
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewBroadcaster creates a broadcaster using the real webpush sender.
func NewBroadcaster(s store.Store, webpushOptions *webpush.Options) *Broadcaster {
	return &Broadcaster{
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// WithSender swaps the push transport; tests use this to stub delivery.
func (b *Broadcaster) WithSender(sender Sender) *Broadcaster {
	b.sender = sender
	return b
}

// Broadcast sends the event to all subscriptions. Delivery failures are
// logged and swallowed; broadcasting is never allowed to fail a caller.
func (b *Broadcaster) Broadcast(ctx context.Context, eventType string, payload any) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode %s event: %v", eventType, err)
		return
	}

	subscriptions, err := b.store.ListSubscriptions(ctx)
	if err != nil {
		log.Printf("failed to list subscriptions for %s event: %v", eventType, err)
		return
	}
	for _, sub := range subscriptions {
		b.send(ctx, sub.Endpoint, sub.P256DH, sub.Auth, body)
	}
}

func (b *Broadcaster) send(ctx context.Context, endpoint, p256dh, auth string, body []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}

	resp, err := b.sender.Send(body, wpSub, b.webpush)
	if err != nil {
		log.Printf("error sending notification to %s: %v", endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Prune subscriptions the push service reports as gone.
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s is expired, deleting", endpoint)
		if err := b.store.DeleteSubscription(ctx, endpoint); err != nil {
			log.Printf("failed to delete expired subscription %s: %v", endpoint, err)
		}
	}
}
